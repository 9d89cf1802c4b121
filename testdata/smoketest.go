package main

import (
	board "github.com/picojoy/joyboard"
	"tinygo.org/x/drivers"
)

func main() {
	// Verify board name constant.
	var _ string = board.Name

	// Assert that board.Display returns a board.Displayer, which must also be
	// usable as a driver display.
	display, _ := board.Display.Configure()
	checkScreen(display)

	// Assert that Display uses the usual interface.
	var _ interface {
		Size() (int16, int16)
	} = board.Display

	// Assert that the joystick returns two analog inputs.
	var x, y board.AnalogInput
	x, y, _ = board.Joystick.Configure()
	_, _ = x, y

	// Assert that the LEDs return the RGB LED.
	var led board.RGBLED
	led, _ = board.LEDs.Configure()
	_ = led

	// Assert that board.Buttons takes an edge handler.
	var _ interface {
		Configure(board.EdgeHandler) error
	} = board.Buttons

	// Assert that board.Clock uses the usual interface.
	var _ interface {
		Micros() uint32
	} = board.Clock
}

func checkScreen(display drivers.Displayer) {
}

package board

import (
	"image/color"
	"time"
)

// Settings for the simulator. These can be modified at any time, but they are
// only read when the simulated peripherals are configured.
var Simulator = struct {
	WindowTitle string

	// Frontend selects how the simulated board is shown: "window" opens a
	// desktop window, "terminal" draws in the current terminal, and "none"
	// shows nothing.
	Frontend string

	// Size of a display pixel in window pixels.
	WindowScale int

	// How far one arrow key press moves the joystick, in raw ADC units.
	JoystickStep uint16
}{
	WindowTitle:  "joyboard",
	Frontend:     "window",
	WindowScale:  4,
	JoystickStep: 256,
}

// Fixed peripheral parameters shared by all boards.
const (
	// PWMWrap is the PWM counter top. Duty levels range from 0 to twice
	// this value (the high end saturates).
	PWMWrap = 4096

	// AnalogMax is the largest value returned by AnalogInput.Read.
	AnalogMax = 4095

	DisplayWidth  = 128
	DisplayHeight = 64
)

// The display interface shared by all supported displays. It matches
// tinygo.org/x/drivers.Displayer.
type Displayer interface {
	// The display size in pixels.
	Size() (width, height int16)

	// Set a pixel in the display buffer. Any non-black color lights the
	// pixel on monochrome displays.
	SetPixel(x, y int16, c color.RGBA)

	// Send the buffer to the physical display.
	Display() error
}

// AnalogInput is a single ADC channel.
type AnalogInput interface {
	// Read performs a blocking single-shot conversion and returns a 12-bit
	// value (0 to AnalogMax).
	Read() (uint16, error)
}

// PWMOutput is a PWM channel with a counter top of PWMWrap.
type PWMOutput interface {
	SetLevel(level uint32)

	// SetEnabled starts or stops the channel without changing the level.
	SetEnabled(enabled bool)
}

// DigitalOutput is an output pin.
type DigitalOutput interface {
	Set(high bool)
	Get() bool
}

// RGBLED is the RGB LED on the board. Red and blue are dimmable, green is on
// or off.
type RGBLED struct {
	Red, Blue PWMOutput
	Green     DigitalOutput
}

// Button is one of the push buttons on the board.
type Button uint8

const (
	NoButton Button = iota

	// ButtonA is the standalone push button.
	ButtonA

	// ButtonJoystick is the button under the joystick (pressing the stick).
	ButtonJoystick
)

// EdgeHandler is called on every falling edge of a button, with a timestamp in
// microseconds since boot. On hardware it runs in interrupt context.
type EdgeHandler func(button Button, micros uint32)

// Key is a single keyboard key (not to be confused with a single character).
// Only used by the simulator.
type Key uint8

// List of all supported key codes.
const (
	NoKey Key = iota

	// Special keys.
	KeyEscape

	// Navigation keys.
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	// Character keys.
	KeyEnter
	KeySpace
	KeyA
	KeyC
)

// Map a simulator key to the button it stands for.
func keyButton(key Key) Button {
	switch key {
	case KeyA:
		return ButtonA
	case KeySpace, KeyEnter:
		return ButtonJoystick
	default:
		return NoButton
	}
}

var bootTime = time.Now()

type monotonicClock struct{}

// Micros returns the time since boot in microseconds. It wraps around after
// about 71 minutes.
func (c monotonicClock) Micros() uint32 {
	return uint32(time.Since(bootTime) / time.Microsecond)
}

// Convert a 16-bit scaled ADC reading, as returned by machine.ADC.Get, to the
// 12 bits the converter actually has.
func adc12(raw uint16) uint16 {
	return raw >> 4
}

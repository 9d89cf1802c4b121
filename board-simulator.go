//go:build !baremetal

package board

// The simulated board exists for testing locally without running on real
// hardware. This avoids potentially long edit-flash-test cycles.
//
// The display and LEDs are shown by a front end (a desktop window or the
// terminal, see Simulator.Frontend). Keys and the mouse stand in for the
// joystick and buttons.

import (
	"errors"
	"image/color"
	"sync"
	"sync/atomic"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	// This is the special name "simulator" for the simulator.
	Name = "simulator"
)

// List of all devices.
//
// Support varies by board, but all boards have the following peripherals
// defined.
var (
	Display  = mainDisplay{}
	Joystick = simulatedJoystick{}
	LEDs     = simulatedLEDs{}
	Buttons  = simulatedButtons{}
	Clock    = monotonicClock{}
)

var errUnknownFrontend = errors.New("board: unknown simulator front end")

// A front end shows the simulated display and LEDs, and feeds key and mouse
// events back through simulatorKey and simulatorPointer.
type frontend interface {
	drawFrame(width, height int, pixels []bool)
	drawLEDs(red, green, blue color.RGBA)
}

var (
	frontendOnce sync.Once
	frontendErr  error
	activeFront  frontend
)

// Start the front end selected in Simulator.Frontend, once.
func startFrontend() (frontend, error) {
	frontendOnce.Do(func() {
		switch Simulator.Frontend {
		case "window", "":
			activeFront, frontendErr = startWindow()
		case "terminal":
			activeFront, frontendErr = startTerminal()
		case "none":
			activeFront = noFrontend{}
		default:
			frontendErr = errUnknownFrontend
		}
	})
	return activeFront, frontendErr
}

type mainDisplay struct{}

func (d mainDisplay) Size() (width, height int16) {
	return DisplayWidth, DisplayHeight
}

// Configure returns a new display ready to draw on.
func (d mainDisplay) Configure() (Displayer, error) {
	front, err := startFrontend()
	if err != nil {
		return nil, err
	}
	return &simulatedScreen{
		front:  front,
		pixels: make([]bool, DisplayWidth*DisplayHeight),
	}, nil
}

type simulatedScreen struct {
	front  frontend
	pixels []bool
}

func (s *simulatedScreen) Size() (width, height int16) {
	return DisplayWidth, DisplayHeight
}

func (s *simulatedScreen) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return
	}
	s.pixels[int(y)*DisplayWidth+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

func (s *simulatedScreen) Display() error {
	s.front.drawFrame(DisplayWidth, DisplayHeight, s.pixels)
	return nil
}

// Joystick position in raw ADC units, written by the front end event
// goroutine and read by the render loop.
var joystickX, joystickY atomic.Uint32

func init() {
	centerJoystick()
}

func centerJoystick() {
	joystickX.Store((AnalogMax + 1) / 2)
	joystickY.Store((AnalogMax + 1) / 2)
}

// Move the joystick by the given number of ADC units, saturating at the ends.
func nudgeJoystick(axis *atomic.Uint32, delta int) {
	v := int(axis.Load()) + delta
	if v < 0 {
		v = 0
	}
	if v > AnalogMax {
		v = AnalogMax
	}
	axis.Store(uint32(v))
}

type simulatedJoystick struct{}

// Configure returns the two joystick axes. Both start centered.
func (j simulatedJoystick) Configure() (x, y AnalogInput, err error) {
	if _, err := startFrontend(); err != nil {
		return nil, nil, err
	}
	return simulatedAxis{&joystickX}, simulatedAxis{&joystickY}, nil
}

type simulatedAxis struct {
	value *atomic.Uint32
}

func (a simulatedAxis) Read() (uint16, error) {
	return uint16(a.value.Load()), nil
}

type simulatedLEDs struct{}

// Configure returns the simulated RGB LED, all channels off.
func (l simulatedLEDs) Configure() (RGBLED, error) {
	front, err := startFrontend()
	if err != nil {
		return RGBLED{}, err
	}
	led := &simulatedRGB{front: front, redOn: true, blueOn: true}
	led.update()
	return RGBLED{
		Red:   simulatedPWM{led, &led.red, &led.redOn},
		Blue:  simulatedPWM{led, &led.blue, &led.blueOn},
		Green: simulatedPin{led},
	}, nil
}

// State of the RGB LED. The red and blue channels are written by the render
// loop and the green one by the button handler, so it is locked.
type simulatedRGB struct {
	lock          sync.Mutex
	front         frontend
	red, blue     uint32
	redOn, blueOn bool
	green         bool
}

// Send the current LED colors to the front end. Must be called with the lock
// held (or before the LED is shared).
func (l *simulatedRGB) update() {
	l.front.drawLEDs(
		color.RGBA{R: gammaEncodeTable[pwmBrightness(l.red, l.redOn)], A: 255},
		color.RGBA{G: gammaEncodeTable[boolBrightness(l.green)], A: 255},
		color.RGBA{B: gammaEncodeTable[pwmBrightness(l.blue, l.blueOn)], A: 255},
	)
}

// Convert a PWM level to an 8-bit brightness. Levels at or above the wrap
// value are always on.
func pwmBrightness(level uint32, enabled bool) uint8 {
	if !enabled {
		return 0
	}
	if level >= PWMWrap {
		return 255
	}
	return uint8(level * 255 / PWMWrap)
}

func boolBrightness(on bool) uint8 {
	if on {
		return 255
	}
	return 0
}

type simulatedPWM struct {
	led     *simulatedRGB
	level   *uint32
	enabled *bool
}

func (p simulatedPWM) SetLevel(level uint32) {
	p.led.lock.Lock()
	defer p.led.lock.Unlock()
	if *p.level == level {
		return
	}
	*p.level = level
	p.led.update()
}

func (p simulatedPWM) SetEnabled(enabled bool) {
	p.led.lock.Lock()
	defer p.led.lock.Unlock()
	*p.enabled = enabled
	p.led.update()
}

type simulatedPin struct {
	led *simulatedRGB
}

func (p simulatedPin) Set(high bool) {
	p.led.lock.Lock()
	defer p.led.lock.Unlock()
	p.led.green = high
	p.led.update()
}

func (p simulatedPin) Get() bool {
	p.led.lock.Lock()
	defer p.led.lock.Unlock()
	return p.led.green
}

type simulatedButtons struct{}

var buttonHandler atomic.Pointer[EdgeHandler]

// Configure starts delivering button presses to handler. In the simulator the
// handler runs on the front end's event goroutine.
func (b simulatedButtons) Configure(handler EdgeHandler) error {
	if _, err := startFrontend(); err != nil {
		return err
	}
	buttonHandler.Store(&handler)
	return nil
}

// Called by front ends on every key press or release.
func simulatorKey(key Key, pressed bool) {
	if !pressed {
		return
	}
	step := int(Simulator.JoystickStep)
	switch key {
	case KeyUp:
		// The X axis moves the square vertically and is inverted.
		nudgeJoystick(&joystickX, step)
	case KeyDown:
		nudgeJoystick(&joystickX, -step)
	case KeyLeft:
		nudgeJoystick(&joystickY, -step)
	case KeyRight:
		nudgeJoystick(&joystickY, step)
	case KeyC:
		centerJoystick()
	default:
		button := keyButton(key)
		if button == NoButton {
			return
		}
		if handler := buttonHandler.Load(); handler != nil {
			(*handler)(button, Clock.Micros())
		}
	}
}

// Called by front ends when the pointer is held down at display pixel (x, y),
// or released (down is false). While held, the joystick is positioned so that
// the square is drawn under the pointer.
func simulatorPointer(x, y int, down bool) {
	if !down {
		centerJoystick()
		return
	}
	joystickX.Store(uint32(clampSample(AnalogMax - y*64)))
	joystickY.Store(uint32(clampSample(x * 32)))
}

func clampSample(v int) int {
	if v < 0 {
		return 0
	}
	if v > AnalogMax {
		return AnalogMax
	}
	return v
}

// Gamma brightness lookup table:
// https://victornpb.github.io/gamma-table-generator
// gamma = 0.45 steps = 256 range = 0-255
var gammaEncodeTable = [256]uint8{
	0, 21, 28, 34, 39, 43, 46, 50, 53, 56, 59, 61, 64, 66, 68, 70,
	72, 74, 76, 78, 80, 82, 84, 85, 87, 89, 90, 92, 93, 95, 96, 98,
	99, 101, 102, 103, 105, 106, 107, 109, 110, 111, 112, 114, 115, 116, 117, 118,
	119, 120, 122, 123, 124, 125, 126, 127, 128, 129, 130, 131, 132, 133, 134, 135,
	136, 137, 138, 139, 140, 141, 142, 143, 144, 144, 145, 146, 147, 148, 149, 150,
	151, 151, 152, 153, 154, 155, 156, 156, 157, 158, 159, 160, 160, 161, 162, 163,
	164, 164, 165, 166, 167, 167, 168, 169, 170, 170, 171, 172, 173, 173, 174, 175,
	175, 176, 177, 178, 178, 179, 180, 180, 181, 182, 182, 183, 184, 184, 185, 186,
	186, 187, 188, 188, 189, 190, 190, 191, 192, 192, 193, 194, 194, 195, 195, 196,
	197, 197, 198, 199, 199, 200, 200, 201, 202, 202, 203, 203, 204, 205, 205, 206,
	206, 207, 207, 208, 209, 209, 210, 210, 211, 212, 212, 213, 213, 214, 214, 215,
	215, 216, 217, 217, 218, 218, 219, 219, 220, 220, 221, 221, 222, 223, 223, 224,
	224, 225, 225, 226, 226, 227, 227, 228, 228, 229, 229, 230, 230, 231, 231, 232,
	232, 233, 233, 234, 234, 235, 235, 236, 236, 237, 237, 238, 238, 239, 239, 240,
	240, 241, 241, 242, 242, 243, 243, 244, 244, 245, 245, 246, 246, 247, 247, 248,
	248, 249, 249, 249, 250, 250, 251, 251, 252, 252, 253, 253, 254, 254, 255, 255,
}

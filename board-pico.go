//go:build pico

package board

// Raspberry Pi Pico on a BitDogLab carrier: analog joystick on ADC0/ADC1, RGB
// LED, two push buttons and a 128×64 SSD1306 OLED on I2C1.

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

const (
	Name = "pico"
)

const (
	ledGreenPin = machine.GPIO11
	ledBluePin  = machine.GPIO12
	ledRedPin   = machine.GPIO13

	buttonAPin        = machine.GPIO5
	joystickButtonPin = machine.GPIO22

	joystickXPin = machine.ADC0 // GPIO26
	joystickYPin = machine.ADC1 // GPIO27

	i2cSDAPin      = machine.GPIO14
	i2cSCLPin      = machine.GPIO15
	displayAddress = 0x3C
)

var errNoPWM = errors.New("board: pin has no PWM peripheral")

// List of all devices.
var (
	Display  = mainDisplay{}
	Joystick = adcJoystick{}
	LEDs     = rgbLED{}
	Buttons  = gpioButtons{}
	Clock    = monotonicClock{}
)

type mainDisplay struct{}

func (d mainDisplay) Size() (width, height int16) {
	return DisplayWidth, DisplayHeight
}

// Configure the I2C bus and the display, and clear it.
func (d mainDisplay) Configure() (Displayer, error) {
	err := machine.I2C1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       i2cSDAPin,
		SCL:       i2cSCLPin,
	})
	if err != nil {
		return nil, err
	}

	display := ssd1306.NewI2C(machine.I2C1)
	display.Configure(ssd1306.Config{
		Address:  displayAddress,
		Width:    DisplayWidth,
		Height:   DisplayHeight,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	display.ClearDisplay()
	return &display, nil
}

type adcJoystick struct{}

// Configure the ADC and return the two joystick axes.
func (j adcJoystick) Configure() (x, y AnalogInput, err error) {
	machine.InitADC()
	xADC := machine.ADC{Pin: joystickXPin}
	yADC := machine.ADC{Pin: joystickYPin}
	if err := xADC.Configure(machine.ADCConfig{}); err != nil {
		return nil, nil, err
	}
	if err := yADC.Configure(machine.ADCConfig{}); err != nil {
		return nil, nil, err
	}
	return adcAxis{xADC}, adcAxis{yADC}, nil
}

type adcAxis struct {
	adc machine.ADC
}

func (a adcAxis) Read() (uint16, error) {
	return adc12(a.adc.Get()), nil
}

type rgbLED struct{}

// Configure the red and blue LEDs as PWM outputs (enabled, level 0) and the
// green LED as a digital output (off).
func (l rgbLED) Configure() (RGBLED, error) {
	red, err := newPWMPin(ledRedPin)
	if err != nil {
		return RGBLED{}, err
	}
	blue, err := newPWMPin(ledBluePin)
	if err != nil {
		return RGBLED{}, err
	}
	ledGreenPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ledGreenPin.Low()
	return RGBLED{
		Red:   red,
		Blue:  blue,
		Green: gpioOutput{ledGreenPin},
	}, nil
}

// The subset of the RP2040 PWM slice API used here.
type pwmGroup interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

type pwmPin struct {
	pwm     pwmGroup
	channel uint8
}

func newPWMPin(pin machine.Pin) (*pwmPin, error) {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil, errNoPWM
	}
	// About 30kHz: at 125MHz this needs no clock divider for a top of 4096.
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / 30_000}); err != nil {
		return nil, err
	}
	pwm.SetTop(PWMWrap)
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	pwm.Set(ch, 0)
	pwm.Enable(true)
	return &pwmPin{pwm: pwm, channel: ch}, nil
}

func (p *pwmPin) SetLevel(level uint32) {
	p.pwm.Set(p.channel, level)
}

// SetEnabled starts or stops the whole PWM slice. The red and blue LEDs share
// slice 6, so this affects both.
func (p *pwmPin) SetEnabled(enabled bool) {
	p.pwm.Enable(enabled)
}

func pwmForPin(pin machine.Pin) pwmGroup {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

type gpioOutput struct {
	pin machine.Pin
}

func (o gpioOutput) Set(high bool) {
	o.pin.Set(high)
}

func (o gpioOutput) Get() bool {
	return o.pin.Get()
}

type gpioButtons struct{}

// Configure both buttons with pull-ups and call handler on every falling edge
// (button press). The handler runs in interrupt context.
func (b gpioButtons) Configure(handler EdgeHandler) error {
	for _, pin := range []machine.Pin{buttonAPin, joystickButtonPin} {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		err := pin.SetInterrupt(machine.PinFalling, func(p machine.Pin) {
			handler(pinButton(p), Clock.Micros())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func pinButton(pin machine.Pin) Button {
	switch pin {
	case buttonAPin:
		return ButtonA
	case joystickButtonPin:
		return ButtonJoystick
	default:
		return NoButton
	}
}

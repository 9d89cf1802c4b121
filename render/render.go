// Package render runs the main loop: sample the joystick, update the LED
// intensities, and redraw the square and border on the display.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/picojoy/joyboard/mapping"
	"github.com/picojoy/joyboard/state"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// DefaultPeriod is the pause between two iterations, which sets the sample
// rate to about 10Hz.
const DefaultPeriod = 100 * time.Millisecond

var errNoDisplay = errors.New("render: no display configured")

// AnalogInput is a single joystick axis.
type AnalogInput interface {
	// Read returns a 12-bit sample.
	Read() (uint16, error)
}

// PWMOutput is an LED driven by one axis.
type PWMOutput interface {
	SetLevel(level uint32)
}

// Inputs are the peripherals the loop reads and writes. PWM[0] follows the X
// axis, PWM[1] the Y axis.
type Inputs struct {
	X, Y    AnalogInput
	PWM     [2]PWMOutput
	Display drivers.Displayer
}

type Config struct {
	Period time.Duration

	// Side of the square in pixels.
	SquareSize int16

	// Top left corner of the border rectangle.
	BorderX, BorderY int16
}

func DefaultConfig() Config {
	return Config{
		Period:     DefaultPeriod,
		SquareSize: 8,
		BorderX:    3,
		BorderY:    3,
	}
}

type Loop struct {
	config Config
	in     Inputs
	store  *state.Store
	log    *slog.Logger
	frame  *Frame

	pos mapping.Position

	// Last values seen, for logging changes made by the buttons.
	seenPWM    bool
	seenBorder state.BorderMode
}

// New returns a loop drawing into a frame the size of in.Display. A nil logger
// discards all output.
func New(config Config, in Inputs, store *state.Store, logger *slog.Logger) *Loop {
	def := DefaultConfig()
	if config.Period <= 0 {
		config.Period = def.Period
	}
	if config.SquareSize <= 0 {
		config.SquareSize = def.SquareSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	width, height := int16(128), int16(64)
	if in.Display != nil {
		width, height = in.Display.Size()
	}
	return &Loop{
		config:     config,
		in:         in,
		store:      store,
		log:        logger,
		frame:      NewFrame(width, height),
		seenPWM:    store.PWMEnabled(),
		seenBorder: store.Border(),
	}
}

// Frame returns the most recently composed frame. It is overwritten by the
// next Step.
func (l *Loop) Frame() *Frame {
	return l.frame
}

// Position returns the square position computed by the last Step.
func (l *Loop) Position() mapping.Position {
	return l.pos
}

// Step runs one iteration without sleeping. A failed read leaves the LEDs and
// the frame untouched.
func (l *Loop) Step() error {
	if l.in.Display == nil {
		return errNoDisplay
	}
	x, err := l.in.X.Read()
	if err != nil {
		return fmt.Errorf("render: read X axis: %w", err)
	}
	y, err := l.in.Y.Read()
	if err != nil {
		return fmt.Errorf("render: read Y axis: %w", err)
	}

	for i, sample := range [2]uint16{x, y} {
		if l.in.PWM[i] != nil {
			l.in.PWM[i].SetLevel(mapping.Intensity(sample))
		}
	}
	l.pos = mapping.Map(mapping.Sample{X: x, Y: y})
	l.observe()

	if err := l.compose(); err != nil {
		return err
	}
	if err := l.frame.PushTo(l.in.Display); err != nil {
		return fmt.Errorf("render: push frame: %w", err)
	}
	return nil
}

// Run calls Step forever, sleeping Config.Period after each iteration. Errors
// are logged and the loop continues. It only returns when ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("render loop started", "period", l.config.Period, "border", l.store.Border())
	timer := time.NewTimer(l.config.Period)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		if err := l.Step(); err != nil {
			l.log.Warn("render step failed", "err", err)
		}
		// The timer is stopped or drained here.
		timer.Reset(l.config.Period)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// compose redraws the frame: background, square, border.
func (l *Loop) compose() error {
	on := l.store.PixelsOn()
	fg := black
	if on {
		fg = white
	}
	l.frame.Fill(!on)

	size := l.config.SquareSize
	// Position.X is the row and Position.Y the column.
	if err := tinydraw.FilledRectangle(l.frame, l.pos.Y, l.pos.X, size, size, fg); err != nil {
		return fmt.Errorf("render: draw square: %w", err)
	}
	width, height := l.store.Border().Size()
	if err := tinydraw.Rectangle(l.frame, l.config.BorderX, l.config.BorderY, width, height, fg); err != nil {
		return fmt.Errorf("render: draw border: %w", err)
	}
	return nil
}

// observe logs button changes the first time the loop sees them.
func (l *Loop) observe() {
	if enabled := l.store.PWMEnabled(); enabled != l.seenPWM {
		l.seenPWM = enabled
		l.log.Debug("pwm toggled", "enabled", enabled)
	}
	if border := l.store.Border(); border != l.seenBorder {
		l.seenBorder = border
		l.log.Debug("border changed", "mode", border)
	}
}

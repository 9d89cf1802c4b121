// Package mapping converts raw joystick samples to LED intensities and screen
// positions.
package mapping

// Range of a 12-bit analog sample.
const (
	MaxSample = 4095
	MidSample = 2048
)

// Square position limits, in pixels. The square is 8×8 and must stay inside
// the border on a 128×64 display.
const (
	MinX = 8
	MaxX = 50
	MinY = 8
	MaxY = 115
)

// Sample is one reading of both joystick axes.
type Sample struct {
	X, Y uint16
}

// Position is where the square is drawn. X is the display row and Y the
// display column: the joystick is mounted rotated relative to the display, so
// its X axis moves the square up and down.
type Position struct {
	X, Y int16
}

// Intensity maps a sample to a PWM duty level. The response is a V shape
// around the midpoint: 0 at 2048, rising linearly toward both ends. The low
// half reaches 4096 at sample 0, the high half 4094 at sample 4095. Samples
// are not clamped: above 4095 the rising half keeps following the modulo.
func Intensity(sample uint16) uint32 {
	if sample >= MidSample {
		return uint32(sample%MidSample) * 2
	}
	return uint32(MidSample-sample) * 2
}

// PositionX maps the X axis to a display row. The axis is inverted: a low
// sample puts the square near the bottom.
func PositionX(x uint16) int16 {
	if x > MaxSample {
		x = MaxSample
	}
	return Clamp(int16((MaxSample-x)/64), MinX, MaxX)
}

// PositionY maps the Y axis to a display column.
func PositionY(y uint16) int16 {
	if y > MaxSample {
		y = MaxSample
	}
	return Clamp(int16(y/32), MinY, MaxY)
}

// Map returns the clamped square position for a sample.
func Map(s Sample) Position {
	return Position{X: PositionX(s.X), Y: PositionY(s.Y)}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int16) int16 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

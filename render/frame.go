package render

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

var _ drivers.Displayer = (*Frame)(nil)

// Frame is an off-screen monochrome buffer. It implements drivers.Displayer so
// tinydraw can draw into it. Display does nothing, PushTo sends the frame to a
// real display.
type Frame struct {
	pixels        []bool // row major
	width, height int16
}

// NewFrame allocates a frame with all pixels off.
func NewFrame(width, height int16) *Frame {
	return &Frame{
		pixels: make([]bool, int(width)*int(height)),
		width:  width,
		height: height,
	}
}

func (f *Frame) Size() (width, height int16) {
	return f.width, f.height
}

// SetPixel turns the pixel on for any non-black color. Pixels outside the
// frame are ignored.
func (f *Frame) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pixels[int(y)*int(f.width)+int(x)] = isLit(c)
}

// Pixel reports whether the pixel at (x, y) is on.
func (f *Frame) Pixel(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.pixels[int(y)*int(f.width)+int(x)]
}

func (f *Frame) Display() error {
	return nil
}

// Fill sets every pixel to the same value.
func (f *Frame) Fill(on bool) {
	for i := range f.pixels {
		f.pixels[i] = on
	}
}

// PushTo copies the frame to the display and flushes it.
func (f *Frame) PushTo(display drivers.Displayer) error {
	for y := int16(0); y < f.height; y++ {
		for x := int16(0); x < f.width; x++ {
			if f.Pixel(x, y) {
				display.SetPixel(x, y, white)
			} else {
				display.SetPixel(x, y, black)
			}
		}
	}
	return display.Display()
}

func isLit(c color.RGBA) bool {
	return c.R != 0 || c.G != 0 || c.B != 0
}

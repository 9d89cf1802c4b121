package render

import (
	"image/color"
	"testing"
)

func TestFrame(t *testing.T) {
	f := NewFrame(128, 64)
	if w, h := f.Size(); w != 128 || h != 64 {
		t.Fatalf("expected 128x64 frame but got %dx%d", w, h)
	}
	f.SetPixel(0, 0, white)
	f.SetPixel(127, 63, color.RGBA{G: 1, A: 255})
	f.SetPixel(5, 5, black)
	f.SetPixel(128, 0, white) // ignored
	f.SetPixel(0, -1, white)  // ignored
	for _, tc := range []struct {
		x, y int16
		on   bool
	}{
		{0, 0, true},
		{127, 63, true},
		{5, 5, false},
		{1, 0, false},
		{0, 1, false},
		{128, 0, false},
		{-1, -1, false},
	} {
		if on := f.Pixel(tc.x, tc.y); on != tc.on {
			t.Errorf("for pixel (%d, %d), expected %v but got %v", tc.x, tc.y, tc.on, on)
		}
	}

	f.Fill(true)
	if !f.Pixel(5, 5) || !f.Pixel(127, 0) {
		t.Error("expected every pixel on after Fill(true)")
	}
	f.Fill(false)
	if f.Pixel(0, 0) || f.Pixel(127, 63) {
		t.Error("expected every pixel off after Fill(false)")
	}
}

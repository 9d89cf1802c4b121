package board

import (
	"testing"
	"time"
)

func TestADC12(t *testing.T) {
	for _, tc := range []struct {
		raw    uint16
		sample uint16
	}{
		{0x0000, 0},
		{0x0010, 1},
		{0x8000, 2048}, // midpoint
		{0xfff0, 4095}, // highest reading from a 12-bit converter
		{0xffff, 4095}, // the low bits are noise
	} {
		sample := adc12(tc.raw)
		if sample != tc.sample {
			t.Errorf("for raw value %#04x, expected %d but got %d", tc.raw, tc.sample, sample)
		}
	}
}

func TestKeyButton(t *testing.T) {
	for _, tc := range []struct {
		key    Key
		button Button
	}{
		{KeyA, ButtonA},
		{KeySpace, ButtonJoystick},
		{KeyEnter, ButtonJoystick},
		{KeyUp, NoButton},
		{KeyC, NoButton},
		{NoKey, NoButton},
	} {
		if button := keyButton(tc.key); button != tc.button {
			t.Errorf("for key %d, expected button %d but got %d", tc.key, tc.button, button)
		}
	}
}

func TestMonotonicClock(t *testing.T) {
	var clock monotonicClock
	start := clock.Micros()
	time.Sleep(5 * time.Millisecond)
	elapsed := clock.Micros() - start
	if elapsed < 5000 {
		t.Errorf("expected at least 5000µs to pass, got %d", elapsed)
	}
}

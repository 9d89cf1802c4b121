//go:build !baremetal

package board

import "image/color"

// This file contains dummy devices, for running the simulator without showing
// anything (Simulator.Frontend set to "none"), for example in tests or CI.

// Dummy front end that discards the display and LED output. Input can still
// be injected with simulatorKey and simulatorPointer.
type noFrontend struct{}

func (noFrontend) drawFrame(width, height int, pixels []bool) {
}

func (noFrontend) drawLEDs(red, green, blue color.RGBA) {
}

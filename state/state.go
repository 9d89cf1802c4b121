// Package state holds the values shared between the button interrupt and the
// render loop.
//
// Every field is a separate atomic word. No operation spans two fields, so
// there is no lock: the interrupt handler must never wait on the render loop.
// All fields are written only from the interrupt domain, so a load followed by
// a store of the same field cannot lose an update.
package state

import "sync/atomic"

// BorderMode selects the size of the border rectangle drawn around the screen.
type BorderMode uint32

const (
	BorderWide   BorderMode = iota // 125×60, the startup default
	BorderNarrow                   // 120×55
)

// Size returns the width and height of the border rectangle in pixels.
func (m BorderMode) Size() (width, height int16) {
	if m == BorderNarrow {
		return 120, 55
	}
	return 125, 60
}

// Toggle returns the other border mode.
func (m BorderMode) Toggle() BorderMode {
	if m == BorderNarrow {
		return BorderWide
	}
	return BorderNarrow
}

func (m BorderMode) String() string {
	if m == BorderNarrow {
		return "narrow"
	}
	return "wide"
}

// Store is the shared state. Create it with New; the zero value does not have
// the right defaults.
type Store struct {
	pwmEnabled atomic.Bool
	border     atomic.Uint32
	lastEdge   atomic.Uint32
	pixelsOn   atomic.Bool
}

// New returns a store with the startup defaults: PWM enabled, wide border,
// lit pixels on a dark background.
func New() *Store {
	s := &Store{}
	s.pwmEnabled.Store(true)
	s.border.Store(uint32(BorderWide))
	s.pixelsOn.Store(true)
	return s
}

// PWMEnabled reports whether the PWM outputs are active.
func (s *Store) PWMEnabled() bool {
	return s.pwmEnabled.Load()
}

func (s *Store) SetPWMEnabled(enabled bool) {
	s.pwmEnabled.Store(enabled)
}

// Border returns the current border mode.
func (s *Store) Border() BorderMode {
	return BorderMode(s.border.Load())
}

func (s *Store) SetBorder(mode BorderMode) {
	s.border.Store(uint32(mode))
}

// LastEdge returns the timestamp, in microseconds since boot, of the last
// accepted button edge.
func (s *Store) LastEdge() uint32 {
	return s.lastEdge.Load()
}

func (s *Store) SetLastEdge(micros uint32) {
	s.lastEdge.Store(micros)
}

// PixelsOn is the drawing polarity: when true, shapes are lit on a dark
// background, when false the frame is inverted. Nothing flips it at runtime.
func (s *Store) PixelsOn() bool {
	return s.pixelsOn.Load()
}

func (s *Store) SetPixelsOn(on bool) {
	s.pixelsOn.Store(on)
}

// Package edge implements the button interrupt handler: it debounces falling
// edges and toggles the shared state.
//
// HandleEdge is called from interrupt context on the hardware. It must not
// block, allocate, log, or touch the display.
package edge

import (
	"sync/atomic"
	"time"

	"github.com/picojoy/joyboard/state"
)

// Source identifies the pin that produced an edge.
type Source uint8

const (
	NoSource     Source = iota
	ModeButton          // toggles the PWM outputs on and off
	BorderButton        // toggles the indicator LED and the border size
)

// DefaultWindow is the minimum time between two accepted edges.
const DefaultWindow = 200 * time.Millisecond

// PWMOutput is the part of a PWM channel the handler needs.
type PWMOutput interface {
	SetEnabled(enabled bool)
}

// DigitalOutput is an output pin whose level can be read back.
type DigitalOutput interface {
	Set(high bool)
	Get() bool
}

// Outputs are the peripherals changed directly from interrupt context.
type Outputs struct {
	PWM       [2]PWMOutput
	Indicator DigitalOutput
}

type Config struct {
	// Edges closer than this to the last accepted edge are dropped.
	Window time.Duration

	// PerButton gives each button its own debounce timestamp. By default a
	// single timestamp is shared by both buttons, so a press of one button
	// shortly after the other is dropped.
	PerButton bool
}

func DefaultConfig() Config {
	return Config{Window: DefaultWindow}
}

// Stats counts edges seen by the handler.
type Stats struct {
	Accepted uint32
	Rejected uint32
}

type Handler struct {
	store   *state.Store
	outputs Outputs
	window  uint32 // microseconds
	// Per-button timestamps, only used with Config.PerButton. The shared
	// timestamp lives in the store.
	perButton  bool
	lastMode   atomic.Uint32
	lastBorder atomic.Uint32

	accepted atomic.Uint32
	rejected atomic.Uint32
}

// New returns a handler that toggles the given store and outputs. Nil outputs
// are skipped.
func New(store *state.Store, outputs Outputs, config Config) *Handler {
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}
	return &Handler{
		store:     store,
		outputs:   outputs,
		window:    uint32(config.Window / time.Microsecond),
		perButton: config.PerButton,
	}
}

// HandleEdge processes a falling edge from src that happened at now
// (microseconds since boot, wrapping).
func (h *Handler) HandleEdge(src Source, now uint32) {
	last := h.lastEdge(src)
	if last == nil {
		return
	}
	// Unsigned subtraction keeps working across the 32-bit wraparound
	// (about every 71 minutes).
	if now-last.Load() <= h.window {
		h.rejected.Add(1)
		return
	}
	last.Store(now)
	if h.perButton {
		h.store.SetLastEdge(now)
	}
	h.accepted.Add(1)

	switch src {
	case ModeButton:
		enabled := !h.store.PWMEnabled()
		h.store.SetPWMEnabled(enabled)
		for _, pwm := range h.outputs.PWM {
			if pwm != nil {
				pwm.SetEnabled(enabled)
			}
		}
	case BorderButton:
		if h.outputs.Indicator != nil {
			h.outputs.Indicator.Set(!h.outputs.Indicator.Get())
		}
		h.store.SetBorder(h.store.Border().Toggle())
	}
}

// Stats returns the number of accepted and rejected edges so far.
func (h *Handler) Stats() Stats {
	return Stats{
		Accepted: h.accepted.Load(),
		Rejected: h.rejected.Load(),
	}
}

// edgeClock is the subset of an atomic word used for timestamps.
type edgeClock interface {
	Load() uint32
	Store(uint32)
}

type storeClock struct{ s *state.Store }

func (c storeClock) Load() uint32 { return c.s.LastEdge() }

func (c storeClock) Store(micros uint32) { c.s.SetLastEdge(micros) }

// lastEdge returns the timestamp that debounces src, or nil for unknown
// sources.
func (h *Handler) lastEdge(src Source) edgeClock {
	switch src {
	case ModeButton:
		if h.perButton {
			return &h.lastMode
		}
	case BorderButton:
		if h.perButton {
			return &h.lastBorder
		}
	default:
		return nil
	}
	return storeClock{h.store}
}

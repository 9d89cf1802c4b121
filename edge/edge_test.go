package edge

import (
	"testing"
	"time"

	"github.com/picojoy/joyboard/state"
)

type fakePWM struct {
	enabled bool
	calls   int
}

func (p *fakePWM) SetEnabled(enabled bool) {
	p.enabled = enabled
	p.calls++
}

type fakePin struct {
	level bool
	sets  int
}

func (p *fakePin) Set(high bool) {
	p.level = high
	p.sets++
}

func (p *fakePin) Get() bool {
	return p.level
}

type fixture struct {
	store     *state.Store
	blue, red *fakePWM
	green     *fakePin
	handler   *Handler
}

func newFixture(config Config) *fixture {
	f := &fixture{
		store: state.New(),
		blue:  &fakePWM{enabled: true},
		red:   &fakePWM{enabled: true},
		green: &fakePin{},
	}
	f.handler = New(f.store, Outputs{
		PWM:       [2]PWMOutput{f.blue, f.red},
		Indicator: f.green,
	}, config)
	return f
}

const ms = 1000 // microseconds

func TestModeButtonDebounce(t *testing.T) {
	for _, tc := range []struct {
		name    string
		delta   uint32 // microseconds between the two edges
		enabled bool   // expected PWM state afterwards
		toggles int
	}{
		{"bounce", 50 * ms, false, 1},
		{"exactly at window", 200_000, false, 1},
		{"just past window", 200_001, true, 2},
		{"well apart", 1000 * ms, true, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(DefaultConfig())
			start := uint32(1_000_000)
			f.handler.HandleEdge(ModeButton, start)
			f.handler.HandleEdge(ModeButton, start+tc.delta)

			if f.store.PWMEnabled() != tc.enabled {
				t.Errorf("expected pwm enabled=%v but got %v", tc.enabled, f.store.PWMEnabled())
			}
			if f.blue.calls != tc.toggles || f.red.calls != tc.toggles {
				t.Errorf("expected %d SetEnabled calls per channel, got blue=%d red=%d", tc.toggles, f.blue.calls, f.red.calls)
			}
			if f.blue.enabled != tc.enabled || f.red.enabled != tc.enabled {
				t.Errorf("channels out of sync with state: blue=%v red=%v", f.blue.enabled, f.red.enabled)
			}
			if f.store.Border() != state.BorderWide || f.green.sets != 0 {
				t.Error("mode button must not touch the border or indicator")
			}
		})
	}
}

func TestSharedTimestamp(t *testing.T) {
	f := newFixture(DefaultConfig())
	start := uint32(1_000_000)
	for i, tc := range []struct {
		now      uint32
		accepted bool
	}{
		{start, true},
		{start + 1, false},
		{start + 199_999, false},
		{start + 200_000, false},
		{start + 200_001, true},
		{start + 200_001 + 1<<31, true},
	} {
		before := f.handler.Stats().Accepted
		f.handler.HandleEdge(BorderButton, tc.now)
		accepted := f.handler.Stats().Accepted != before
		if accepted != tc.accepted {
			t.Errorf("edge %d at %dµs: expected accepted=%v but got %v", i, tc.now, tc.accepted, accepted)
		}
		if accepted && f.store.LastEdge() != tc.now {
			t.Errorf("edge %d: expected last edge %d in the store, got %d", i, tc.now, f.store.LastEdge())
		}
	}
	// Three accepted presses: narrow, wide, narrow.
	if f.store.Border() != state.BorderNarrow {
		t.Errorf("expected narrow border, got %v", f.store.Border())
	}
	if s := f.handler.Stats(); s.Accepted != 3 || s.Rejected != 3 {
		t.Errorf("expected 3 accepted and 3 rejected edges, got %+v", s)
	}
}

func TestBorderButtonToggle(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.handler.HandleEdge(BorderButton, 300*ms)
	if f.store.Border() != state.BorderNarrow {
		t.Errorf("expected narrow border after one press, got %v", f.store.Border())
	}
	if !f.green.level {
		t.Error("expected indicator on after one press")
	}
	if f.blue.calls != 0 || !f.store.PWMEnabled() {
		t.Error("border button must not touch PWM")
	}

	// Second press, outside the window: back to the original state.
	f.handler.HandleEdge(BorderButton, 600*ms)
	if f.store.Border() != state.BorderWide {
		t.Errorf("expected wide border after two presses, got %v", f.store.Border())
	}
	if f.green.level {
		t.Error("expected indicator off after two presses")
	}
}

func TestBootWindow(t *testing.T) {
	// The last edge starts at zero, so anything within the first 200ms after
	// boot is dropped.
	f := newFixture(DefaultConfig())
	f.handler.HandleEdge(ModeButton, 150*ms)
	if !f.store.PWMEnabled() {
		t.Error("edge during boot window should be dropped")
	}
	f.handler.HandleEdge(ModeButton, 250*ms)
	if f.store.PWMEnabled() {
		t.Error("edge after boot window should be accepted")
	}
}

func TestWraparound(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.store.SetLastEdge(0xFFFF_0000)

	f.handler.HandleEdge(ModeButton, 0x0002_0000) // 196608µs later
	if !f.store.PWMEnabled() {
		t.Error("edge 196.6ms after the last one (across wraparound) should be dropped")
	}
	f.handler.HandleEdge(ModeButton, 0x0004_0000) // 327680µs after 0xFFFF0000
	if f.store.PWMEnabled() {
		t.Error("edge 327.7ms after the last one (across wraparound) should be accepted")
	}
	if f.store.LastEdge() != 0x0004_0000 {
		t.Errorf("expected last edge 0x40000 but got %#x", f.store.LastEdge())
	}
}

func TestSharedWindow(t *testing.T) {
	// A border press 100ms after a mode press is swallowed by the mode press.
	f := newFixture(DefaultConfig())
	f.handler.HandleEdge(ModeButton, 1000*ms)
	f.handler.HandleEdge(BorderButton, 1100*ms)
	if f.store.PWMEnabled() {
		t.Error("expected mode press to be accepted")
	}
	if f.store.Border() != state.BorderWide {
		t.Error("expected border press to be dropped by the shared window")
	}
	stats := f.handler.Stats()
	if stats.Accepted != 1 || stats.Rejected != 1 {
		t.Errorf("expected 1 accepted and 1 rejected, got %+v", stats)
	}
}

func TestPerButtonWindow(t *testing.T) {
	f := newFixture(Config{Window: DefaultWindow, PerButton: true})
	f.handler.HandleEdge(ModeButton, 1000*ms)
	f.handler.HandleEdge(BorderButton, 1100*ms)
	if f.store.PWMEnabled() {
		t.Error("expected mode press to be accepted")
	}
	if f.store.Border() != state.BorderNarrow {
		t.Error("expected border press to be accepted with per-button windows")
	}
	// Still debounced per button.
	f.handler.HandleEdge(BorderButton, 1150*ms)
	if f.store.Border() != state.BorderNarrow {
		t.Error("expected border bounce to be dropped")
	}
	if f.store.LastEdge() != 1100*ms {
		t.Errorf("expected shared timestamp to track the last accepted edge, got %d", f.store.LastEdge())
	}
}

func TestUnknownSource(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.handler.HandleEdge(NoSource, 1000*ms)
	f.handler.HandleEdge(Source(42), 2000*ms)
	if f.store.LastEdge() != 0 {
		t.Errorf("unknown source consumed the debounce window: last edge %d", f.store.LastEdge())
	}
	if !f.store.PWMEnabled() || f.store.Border() != state.BorderWide || f.green.sets != 0 {
		t.Error("unknown source changed state")
	}
	if stats := f.handler.Stats(); stats != (Stats{}) {
		t.Errorf("unknown source was counted: %+v", stats)
	}
}

func TestCustomWindow(t *testing.T) {
	f := newFixture(Config{Window: 50 * time.Millisecond})
	f.handler.HandleEdge(ModeButton, 1000*ms)
	f.handler.HandleEdge(ModeButton, 1060*ms)
	if !f.store.PWMEnabled() {
		t.Error("expected both edges to be accepted with a 50ms window")
	}
}

func TestNilOutputs(t *testing.T) {
	store := state.New()
	h := New(store, Outputs{}, Config{})
	h.HandleEdge(ModeButton, 1000*ms)
	h.HandleEdge(BorderButton, 2000*ms)
	if store.PWMEnabled() || store.Border() != state.BorderNarrow {
		t.Error("state should change even without outputs")
	}
}

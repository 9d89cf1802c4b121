//go:build !baremetal

package main

import (
	"io"
	"log/slog"
	"testing"

	board "github.com/picojoy/joyboard"
	"github.com/picojoy/joyboard/edge"
	"github.com/picojoy/joyboard/mapping"
)

func TestEdgeSource(t *testing.T) {
	for _, tc := range []struct {
		button board.Button
		source edge.Source
	}{
		{board.ButtonA, edge.ModeButton},
		{board.ButtonJoystick, edge.BorderButton},
		{board.NoButton, edge.NoSource},
	} {
		if source := edgeSource(tc.button); source != tc.source {
			t.Errorf("for button %d, expected source %d but got %d", tc.button, tc.source, source)
		}
	}
}

func TestSetup(t *testing.T) {
	board.Simulator.Frontend = "none"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := setup(logger, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := a.loop.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// The simulated joystick starts centered.
	expected := mapping.Position{X: 31, Y: 64}
	if pos := a.loop.Position(); pos != expected {
		t.Errorf("expected position %v but got %v", expected, pos)
	}
	if !a.store.PWMEnabled() {
		t.Error("expected PWM to start enabled")
	}
}

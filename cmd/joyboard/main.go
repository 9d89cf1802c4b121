// Command joyboard moves a square around an OLED display with an analog
// joystick, dims two LEDs with the stick deflection, and uses the two buttons
// to switch the LEDs off and change the border.
package main

import (
	"fmt"
	"log/slog"

	board "github.com/picojoy/joyboard"
	"github.com/picojoy/joyboard/edge"
	"github.com/picojoy/joyboard/render"
	"github.com/picojoy/joyboard/state"
)

type app struct {
	store *state.Store
	edges *edge.Handler
	loop  *render.Loop
}

// Bring up every peripheral and connect them. Any error here is fatal.
func setup(logger *slog.Logger, perButton bool) (*app, error) {
	display, err := board.Display.Configure()
	if err != nil {
		return nil, fmt.Errorf("configure display: %w", err)
	}
	x, y, err := board.Joystick.Configure()
	if err != nil {
		return nil, fmt.Errorf("configure joystick: %w", err)
	}
	led, err := board.LEDs.Configure()
	if err != nil {
		return nil, fmt.Errorf("configure LEDs: %w", err)
	}

	store := state.New()

	edgeConfig := edge.DefaultConfig()
	edgeConfig.PerButton = perButton
	edges := edge.New(store, edge.Outputs{
		PWM:       [2]edge.PWMOutput{led.Blue, led.Red},
		Indicator: led.Green,
	}, edgeConfig)

	// Runs in interrupt context on hardware.
	err = board.Buttons.Configure(func(button board.Button, micros uint32) {
		edges.HandleEdge(edgeSource(button), micros)
	})
	if err != nil {
		return nil, fmt.Errorf("configure buttons: %w", err)
	}

	loop := render.New(render.DefaultConfig(), render.Inputs{
		X:       x,
		Y:       y,
		PWM:     [2]render.PWMOutput{led.Blue, led.Red},
		Display: display,
	}, store, logger)

	logger.Info("board ready", "board", board.Name, "perButton", perButton)
	return &app{store: store, edges: edges, loop: loop}, nil
}

func edgeSource(button board.Button) edge.Source {
	switch button {
	case board.ButtonA:
		return edge.ModeButton
	case board.ButtonJoystick:
		return edge.BorderButton
	default:
		return edge.NoSource
	}
}

//go:build !baremetal

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	board "github.com/picojoy/joyboard"
)

func main() {
	frontend := flag.String("frontend", board.Simulator.Frontend, "simulator front end: window, terminal or none")
	scale := flag.Int("scale", board.Simulator.WindowScale, "window pixels per display pixel")
	debug := flag.Bool("debug", false, "enable debug logging")
	perButton := flag.Bool("per-button", false, "debounce each button separately")
	logPath := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	board.Simulator.Frontend = *frontend
	board.Simulator.WindowScale = *scale

	var out io.Writer = os.Stderr
	switch {
	case *logPath != "":
		f, err := os.Create(*logPath)
		if err != nil {
			slog.Error("could not open log file", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	case *frontend == "terminal":
		// The terminal is taken over by the front end.
		out = io.Discard
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	a, err := setup(logger, *perButton)
	if err != nil {
		logger.Error("bring-up failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.loop.Run(ctx)
	stats := a.edges.Stats()
	logger.Info("stopped", "accepted", stats.Accepted, "rejected", stats.Rejected, "border", a.store.Border())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("render loop failed", "err", err)
		os.Exit(1)
	}
}

//go:build baremetal

package main

import (
	"context"
	"log/slog"
	"os"
	"time"
)

func main() {
	// Logs go to the USB serial console.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	a, err := setup(logger, false)
	if err != nil {
		logger.Error("bring-up failed", "err", err)
		halt()
	}

	// Runs until power-down.
	a.loop.Run(context.Background())
}

// There is nothing to return to.
func halt() {
	for {
		time.Sleep(time.Hour)
	}
}

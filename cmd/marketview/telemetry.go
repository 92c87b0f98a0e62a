package main

import (
	"context"
	"log/slog"
	"os"

	"marketview-backend/lib/telemetry"
)

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	_, err := telemetry.SetupFromEnv(ctx, "marketview")
	if os.IsNotExist(err) {
		// no telemetry.json5 around, run without exporters
		return
	}
	if err != nil {
		slog.Error("failed to setup telemetry", "err", err)
		os.Exit(1)
	}
	telemetry.InstrumentPerfStats(ctx)
}

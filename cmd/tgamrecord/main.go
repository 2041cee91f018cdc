// Command tgamrecord connects to a ThinkGear-compatible headset over a
// serial port and records decoded samples to a row log until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openeeg/tgam-edf/config"
	"github.com/openeeg/tgam-edf/recording"
	"github.com/openeeg/tgam-edf/rowlog"
	"github.com/openeeg/tgam-edf/serialsource"
	"github.com/openeeg/tgam-edf/thinkgear"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	port := flag.String("port", "/dev/ttyUSB0", "serial port the headset is attached to")
	dataDir := flag.String("data-dir", ".", "directory row logs are written to")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("falling back to default configuration", "err", err)
		cfg = config.Default()
	}

	session := recording.New()
	slog.Info("starting recording session", "session", session.String())

	outputPath := cfg.ResolveOutputPath(*dataDir, session.StartedAt)
	f, err := os.Create(outputPath)
	if err != nil {
		slog.Error("failed to create row log", "path", outputPath, "err", err)
		os.Exit(1)
	}
	defer f.Close()

	writer, err := rowlog.NewWriter(f)
	if err != nil {
		slog.Error("failed to write row log header", "err", err)
		os.Exit(1)
	}

	transport, err := serialsource.Open(*port, cfg.Serial.BaudRate)
	if err != nil {
		slog.Error("failed to open serial port", "port", *port, "err", err)
		os.Exit(1)
	}
	defer transport.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	device := thinkgear.NewDevice(writer)
	slog.Info("recording", "port", *port, "baud", cfg.Serial.BaudRate, "output", outputPath)

	if err := device.Run(ctx, transport); err != nil && ctx.Err() == nil {
		slog.Error("device run ended unexpectedly", "err", err)
		os.Exit(1)
	}

	slog.Info("recording stopped", "session", session.String(), "output", outputPath)
}

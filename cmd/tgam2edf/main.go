// Command tgam2edf converts a recorded row log into a standards-compliant
// EDF biosignal file.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/openeeg/tgam-edf/config"
	"github.com/openeeg/tgam-edf/edf"
	"github.com/openeeg/tgam-edf/rowlog"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	inputPath := flag.String("in", "", "path to the row log (.csv) to convert")
	outputPath := flag.String("out", "", "path to write the .edf file to")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		slog.Error("both -in and -out are required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("falling back to default configuration", "err", err)
		cfg = config.Default()
	}

	in, err := os.Open(*inputPath)
	if err != nil {
		slog.Error("failed to open row log", "path", *inputPath, "err", err)
		os.Exit(1)
	}
	defer in.Close()

	rows, err := rowlog.ReadAll(in)
	if err != nil {
		slog.Error("failed to read row log", "err", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		slog.Error("row log contains no usable rows", "path", *inputPath)
		os.Exit(1)
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		slog.Error("failed to create output file", "path", *outputPath, "err", err)
		os.Exit(1)
	}
	defer out.Close()

	start := time.Now()
	err = edf.Convert(out, rows, edf.ConvertOptions{
		DataRecordDuration: cfg.DataRecordDuration(),
		RawRateHz:          cfg.EDF.RawRateHz,
	})
	if err != nil {
		slog.Error("conversion failed", "err", err)
		os.Exit(1)
	}

	slog.Info("wrote EDF file", "path", *outputPath, "rows", len(rows), "elapsed", time.Since(start))
}

// jobcsv validates and cleans a raw job postings extract from the command
// line. It runs the same pipeline as the web server, writes the cleaned
// rows to a CSV file and prints load statistics plus a salary summary as
// JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"sgpulse/internal/analytics"
	"sgpulse/internal/config"
	"sgpulse/internal/dataprocessing"
	"sgpulse/internal/exporter"
	"sgpulse/internal/infrastructure"
	"sgpulse/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input csv file (defaults to the configured source)")
	out := flag.String("out", "", "output csv file for cleaned rows (omit to skip writing)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *in == "" {
		*in = cfg.Data.SourceCSV
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting dataset validation",
		slog.String("input", *in),
		slog.String("output", *out))

	pipeline := dataprocessing.NewPipeline(logger)
	table, err := pipeline.Load(context.Background(), *in)
	if err != nil {
		logger.Error("Dataset validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *out != "" {
		if err := exporter.WriteFile(*out, table.Postings(), exporter.WriteOptions{BOMPrefix: true}); err != nil {
			logger.Error("Failed to write cleaned dataset", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Cleaned dataset written",
			slog.String("output", *out),
			slog.Int("rows", table.Len()))
	}

	report := struct {
		LoadStats domain.LoadStats  `json:"load_stats"`
		Salary    analytics.Summary `json:"salary"`
	}{
		LoadStats: table.Stats(),
		Salary:    describeSalaries(table.Postings()),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("Failed to encode report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func describeSalaries(postings []domain.JobPosting) analytics.Summary {
	values := make([]float64, len(postings))
	for i, p := range postings {
		values[i] = p.SalaryAverage
	}
	return analytics.Describe(values)
}

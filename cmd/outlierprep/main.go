package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"outlierprep/pkg/config"
	"outlierprep/pkg/data"
	"outlierprep/pkg/dataprep"
	"outlierprep/pkg/logger"
	"outlierprep/pkg/report"
	"outlierprep/pkg/stats"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --config          : YAML file; flags given on the command line override it
// --input, -i       : CSV with a header row ("-" = stdin, the default)
// --output, -o      : where to write kept rows (default stdout)
// --plot            : optional chart of kept vs. outlier rows (.png/.svg/.pdf)
// --label-col       : 0-based label column, carried through but not filtered on
// --impute          : fill missing cells with the column median first
// --dedupe          : drop exact duplicate rows first
// --threshold       : modified z-score cutoff (default 3.5)
// --window-fraction : window length as a fraction of the row count (default 0.05)
// --workers         : windows scored concurrently
// --log-level, --dev: logging
//
// Example:
//   outlierprep -i sensors.csv -o clean.csv --label-col 4 --impute --plot mask.png
//
// -------------------------------------------------------
//

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Log.Errorw("outlierprep failed", "error", err)
		logger.Sync()
		fmt.Fprintln(os.Stderr, "outlierprep:", err)
		os.Exit(1)
	}
	logger.Sync()
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("outlierprep", flag.ContinueOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}
	log := logger.Log

	in := stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tbl, err := data.ReadCSV(in, cfg.LabelCol)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}
	log.Infow("loaded table", "input", cfg.Input, "rows", tbl.X.R, "columns", tbl.X.C)

	if cfg.Impute {
		var n int
		tbl.X, n = dataprep.ImputeMedian(tbl.X)
		log.Infow("imputed missing cells", "cells", n)
	}
	if cfg.Dedupe {
		before := tbl.X.R
		tbl = tbl.Drop(dataprep.DuplicateMask(tbl.X))
		log.Infow("dropped duplicate rows", "rows", before-tbl.X.R)
	}

	res, err := stats.RemoveOutliers(tbl.X, cfg.OutlierOptions())
	if err != nil {
		return err
	}
	kept := tbl.Drop(res.Mask)
	summarize(tbl, kept)

	if cfg.Plot != "" {
		if err := report.PlotMask(tbl.X, tbl.Headers, res.Mask, cfg.Plot); err != nil {
			return err
		}
		log.Infow("saved plot", "path", cfg.Plot)
	}

	if cfg.Output == "" {
		if err := data.WriteCSV(stdout, kept); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	return writeFile(cfg.Output, kept)
}

// writeFile writes t to path, reporting close errors so a short write
// never exits 0.
func writeFile(path string, t *data.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := data.WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// summarize logs row counts and per-column mean/std before and after.
func summarize(before, after *data.Table) {
	logger.Log.Infow("filtered outliers",
		"rowsIn", before.X.R, "rowsOut", after.X.R, "outliers", before.X.R-after.X.R)
	for j, h := range before.Headers {
		b, a := before.X.Col(j), after.X.Col(j)
		logger.Log.Debugw("column summary", "column", h,
			"meanBefore", stats.Mean(b), "stdBefore", stats.Std(b),
			"meanAfter", stats.Mean(a), "stdAfter", stats.Std(a))
	}
}

// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package export writes aggregate tables to files for use outside of the dashboard.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/gnuplot"
)

const (
	xlsxFile   = "mortalidad.xlsx"
	sqliteFile = "mortalidad.db"
)

// Options configures Write.
type Options struct {
	Dir     string          // output directory, created if missing
	SQLite  bool            // also write a SQLite database
	Gnuplot *gnuplot.Runner // if non-nil, also plot some tables to PNG files
	Logger  *zap.Logger     // may be nil
}

// Write writes set's tables to files in opts.Dir and returns the paths that were written.
// Each table is written to its own CSV file and all tables are written to a single
// XLSX workbook.
func Write(ctx context.Context, set *aggregate.Set, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	tables := set.Tables()
	for _, t := range tables {
		p := filepath.Join(opts.Dir, t.Name+".csv")
		if err := WriteCSVFile(p, t); err != nil {
			return paths, fmt.Errorf("failed writing %v: %w", p, err)
		}
		logger.Debug("Wrote CSV", zap.String("path", p), zap.Int("rows", len(t.Rows)))
		paths = append(paths, p)
	}

	p := filepath.Join(opts.Dir, xlsxFile)
	if err := WriteXLSXFile(p, tables); err != nil {
		return paths, fmt.Errorf("failed writing %v: %w", p, err)
	}
	paths = append(paths, p)

	if opts.SQLite {
		p := filepath.Join(opts.Dir, sqliteFile)
		if err := WriteSQLiteFile(ctx, p, tables); err != nil {
			return paths, fmt.Errorf("failed writing %v: %w", p, err)
		}
		paths = append(paths, p)
	}

	if opts.Gnuplot != nil {
		if err := opts.Gnuplot.Available(); err != nil {
			return paths, err
		}
		pp, err := WritePlots(ctx, opts.Gnuplot, opts.Dir, set)
		paths = append(paths, pp...)
		if err != nil {
			return paths, err
		}
	}

	logger.Info("Exported tables", zap.String("dir", opts.Dir), zap.Int("files", len(paths)))
	return paths, nil
}

// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/config"
	"github.com/derat/mortalidad/deaths"
	"github.com/derat/mortalidad/figure"
	"github.com/derat/mortalidad/geo"
	"github.com/derat/mortalidad/layout"
)

// loadSet loads the dataset named by cfg and aggregates its records for cfg.Year.
func loadSet(cfg *config.Config, logger *zap.Logger) (*aggregate.Set, error) {
	start := time.Now()
	rs, err := deaths.LoadFile(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed loading %v: %w", cfg.DataPath, err)
	}
	logger.Info("Loaded records", zap.String("path", cfg.DataPath), zap.Int("records", len(rs)),
		zap.Duration("elapsed", time.Since(start)))

	rs = deaths.FilterYear(rs, cfg.Year)
	if len(rs) == 0 {
		logger.Warn("No records for year", zap.Int("year", cfg.Year))
	} else {
		logger.Info("Filtered records", zap.Int("year", cfg.Year), zap.Int("records", len(rs)))
	}
	return aggregate.Build(rs, cfg.Year), nil
}

// buildPage renders set's figures into a complete HTML page.
func buildPage(cfg *config.Config, set *aggregate.Set, logger *zap.Logger) ([]byte, error) {
	bs, err := geo.LoadFile(cfg.GeoJSONPath, cfg.GeoKey)
	if err != nil {
		return nil, fmt.Errorf("failed loading %v: %w", cfg.GeoJSONPath, err)
	}
	logger.Info("Loaded boundaries", zap.String("path", cfg.GeoJSONPath), zap.Int("features", len(bs.Features)))

	var unmatched []string
	for _, r := range set.Departments.Rows {
		if _, ok := bs.Lookup(r.Keys[0]); !ok {
			unmatched = append(unmatched, r.Keys[0])
		}
	}
	if len(unmatched) > 0 {
		logger.Debug("Departments without boundaries", zap.Strings("names", unmatched))
	}

	figs, err := figure.Build(set, bs)
	if err != nil {
		return nil, err
	}
	page, err := layout.Compose(cfg.PageTitle(), figs...).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed rendering page: %w", err)
	}
	logger.Info("Rendered page", zap.Int("figures", len(figs)), zap.Int("bytes", len(page)))
	return page, nil
}

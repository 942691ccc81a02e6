// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package config loads the dashboard's configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DefaultDotEnv is the optional file that's loaded into the environment before parsing.
const DefaultDotEnv = ".env"

// Config holds settings shared by all commands.
type Config struct {
	DataPath    string `env:"MORTALIDAD_DATA"      envDefault:"final_dataframe.parquet"`
	GeoJSONPath string `env:"MORTALIDAD_GEOJSON"   envDefault:"colombia_departamentos.geojson"`
	GeoKey      string `env:"MORTALIDAD_GEO_KEY"   envDefault:"NOMBRE_DPT"`
	Year        int    `env:"MORTALIDAD_YEAR"      envDefault:"2019"`
	HTTPAddr    string `env:"MORTALIDAD_HTTP_ADDR" envDefault:"localhost:8050"`
	Title       string `env:"MORTALIDAD_TITLE"` // derived from Year if empty
	Debug       bool   `env:"MORTALIDAD_DEBUG"`
}

// Load reads the dotenv file at p (if it exists) and parses the environment into a Config.
// Variables that are already set take precedence over the file.
func Load(p string) (Config, error) {
	if p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				return Config{}, fmt.Errorf("load %v: %w", p, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags adds flags to fs that override cfg's fields.
// cfg's current values are used as the flags' defaults.
func (cfg *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "Dataset of death records (.parquet, .csv or .csv.gz)")
	fs.StringVar(&cfg.GeoJSONPath, "geojson", cfg.GeoJSONPath, "GeoJSON file with department boundaries")
	fs.StringVar(&cfg.GeoKey, "geo-key", cfg.GeoKey, "GeoJSON feature property holding the department name")
	fs.IntVar(&cfg.Year, "year", cfg.Year, "Year of records to show")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Address to serve the dashboard on")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Page title (derived from the year if empty)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
}

// PageTitle returns the dashboard's heading.
func (cfg *Config) PageTitle() string {
	if t := strings.TrimSpace(cfg.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Dashboard Mortalidad %d – Colombia", cfg.Year)
}

// Validate returns an error if cfg is unusable.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.DataPath == "" {
		errs = append(errs, errors.New("data path is required"))
	}
	if cfg.GeoJSONPath == "" {
		errs = append(errs, errors.New("GeoJSON path is required"))
	}
	if cfg.GeoKey == "" {
		errs = append(errs, errors.New("GeoJSON key property is required"))
	}
	if cfg.Year <= 0 {
		errs = append(errs, fmt.Errorf("bad year %d", cfg.Year))
	}
	return errors.Join(errs...)
}

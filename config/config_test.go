// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

var allVars = []string{
	"MORTALIDAD_DATA",
	"MORTALIDAD_GEOJSON",
	"MORTALIDAD_GEO_KEY",
	"MORTALIDAD_YEAR",
	"MORTALIDAD_HTTP_ADDR",
	"MORTALIDAD_TITLE",
	"MORTALIDAD_DEBUG",
}

// clearEnv unsets all of the package's variables for the duration of the test.
func clearEnv(t *testing.T) {
	for _, v := range allVars {
		t.Setenv(v, "") // restores the original value after the test
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	want := Config{
		DataPath:    "final_dataframe.parquet",
		GeoJSONPath: "colombia_departamentos.geojson",
		GeoKey:      "NOMBRE_DPT",
		Year:        2019,
		HTTPAddr:    "localhost:8050",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Error("Load returned bad config:\n" + diff)
	}
	if got, want := cfg.PageTitle(), "Dashboard Mortalidad 2019 – Colombia"; got != want {
		t.Errorf("PageTitle() = %q; want %q", got, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Error("Validate failed for defaults: ", err)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte("MORTALIDAD_YEAR=2018\nMORTALIDAD_DATA=from-file.csv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MORTALIDAD_DATA", "from-env.csv")

	cfg, err := Load(p)
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	if cfg.Year != 2018 {
		t.Errorf("Year = %d; want 2018", cfg.Year)
	}
	if cfg.DataPath != "from-env.csv" {
		t.Errorf("DataPath = %q; want env value", cfg.DataPath)
	}
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Error("Load failed for missing dotenv file: ", err)
	}
}

func TestLoad_BadYear(t *testing.T) {
	clearEnv(t)
	t.Setenv("MORTALIDAD_YEAR", "dos mil")
	if _, err := Load(""); err == nil {
		t.Error("Load unexpectedly succeeded with non-numeric year")
	}
}

func TestRegisterFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("MORTALIDAD_HTTP_ADDR", ":9000")
	t.Setenv("MORTALIDAD_YEAR", "2018")
	cfg, err := Load("")
	if err != nil {
		t.Fatal("Load failed: ", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"--year=2020", "--title", "Mortalidad", "--debug"}); err != nil {
		t.Fatal("Parse failed: ", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q; want env value", cfg.HTTPAddr)
	}
	if cfg.Year != 2020 {
		t.Errorf("Year = %d; want flag value", cfg.Year)
	}
	if !cfg.Debug {
		t.Error("Debug not set by flag")
	}
	if got := cfg.PageTitle(); got != "Mortalidad" {
		t.Errorf("PageTitle() = %q; want %q", got, "Mortalidad")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{GeoKey: "NOMBRE_DPT", Year: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate unexpectedly succeeded")
	}
}

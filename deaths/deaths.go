// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package deaths loads individual death records and selects the ones for a given year.
package deaths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Names of the dataset columns that are read. Other columns are ignored.
const (
	ColYear         = "AÑO"
	ColMonth        = "MES"
	ColDepartment   = "DEPARTAMENTO"
	ColMunicipality = "MUNICIPIO"
	ColManner       = "MANERA_MUERTE"
	ColCauseCode    = "COD_MUERTE"
	ColCauseDesc    = "Descripción CIE-10"
	ColAgeGroup     = "GRUPO_EDAD1"
	ColSex          = "SEXO"
)

// columns lists all required columns in a fixed order.
var columns = []string{
	ColYear, ColMonth, ColDepartment, ColMunicipality, ColManner,
	ColCauseCode, ColCauseDesc, ColAgeGroup, ColSex,
}

// ErrMissingColumn is wrapped by errors returned when the dataset lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Record describes a single death.
type Record struct {
	Year         int
	Month        int    // 1-12
	Department   string // e.g. "ANTIOQUIA"
	Municipality string // e.g. "MEDELLÍN"
	Manner       string // manner of death, e.g. "Homicidio"
	CauseCode    string // ICD-10 code, e.g. "I219"
	CauseDesc    string
	AgeGroup     int // five-year age group code, 1-18
	Sex          string
}

// LoadFile reads all records from the dataset at p.
// The format is chosen by extension: ".parquet", ".csv" or ".csv.gz".
func LoadFile(p string) ([]Record, error) {
	base := strings.ToLower(filepath.Base(p))
	switch {
	case strings.HasSuffix(base, ".parquet"):
		return readParquetFile(p)
	case strings.HasSuffix(base, ".csv"), strings.HasSuffix(base, ".csv.gz"):
		return readCSVFile(p)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(p))
	}
}

// FilterYear returns the records from rs whose year is equal to year.
// The returned slice is newly allocated and preserves the order of rs.
func FilterYear(rs []Record, year int) []Record {
	out := make([]Record, 0, len(rs)/4)
	for _, r := range rs {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

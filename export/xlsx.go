// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package export

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/filewriter"
)

const defaultSheet = "Sheet1" // created by excelize.NewFile

// WriteXLSX writes an XLSX workbook with one sheet per table to w.
// Sheets are named after the tables and start with a bold header row.
func WriteXLSX(w io.Writer, tables []*aggregate.Table) error {
	if len(tables) == 0 {
		return errors.New("no tables")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	})
	if err != nil {
		return err
	}

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet)
		} else {
			_, err = f.NewSheet(sheet)
		}
		if err != nil {
			return err
		}

		for col, name := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, name); err != nil {
				return err
			}
		}
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
			return err
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 24); err != nil {
			return err
		}

		for ri, r := range t.Rows {
			for col, key := range r.Keys {
				cell, err := excelize.CoordinatesToCellName(col+1, ri+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, key); err != nil {
					return err
				}
			}
			cell, err := excelize.CoordinatesToCellName(len(r.Keys)+1, ri+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, r.Count); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

// WriteXLSXFile atomically writes an XLSX workbook containing tables to p.
func WriteXLSXFile(p string, tables []*aggregate.Table) error {
	fw, err := filewriter.New(p)
	if err != nil {
		return err
	}
	fw.Fail(WriteXLSX(fw, tables))
	return fw.Close()
}

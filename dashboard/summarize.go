// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/derat/mortalidad/aggregate"
)

// writeSummary prints each of set's tables to w, preceded by its title.
func writeSummary(w io.Writer, set *aggregate.Set) error {
	for i, t := range set.Tables() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "%s (total %d)\n", t.Title, t.Total()); err != nil {
			return err
		}

		tw := tablewriter.NewWriter(w)
		tw.SetAutoFormatHeaders(false)
		tw.SetHeader(t.Columns)
		align := make([]int, len(t.Columns))
		for j := range align {
			align[j] = tablewriter.ALIGN_LEFT
		}
		align[len(align)-1] = tablewriter.ALIGN_RIGHT
		tw.SetColumnAlignment(align)
		for j := range t.Rows {
			tw.Append(t.Record(j))
		}
		tw.Render()
	}
	return nil
}

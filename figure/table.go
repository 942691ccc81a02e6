// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package figure

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/derat/mortalidad/aggregate"
)

var tableTmpl = template.Must(template.New("").Parse(`<table class="data">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .Keys}}<td>{{.}}</td>{{end}}<td class="num">{{.Count}}</td></tr>
{{- end}}
</tbody>
</table>`))

type tableRow struct {
	Keys  []string
	Count string
}

// Table renders t as an HTML table with a header row. Counts are right-aligned.
func Table(t *aggregate.Table) (Figure, error) {
	rows := make([]tableRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = tableRow{Keys: r.Keys, Count: formatCount(r.Count)}
	}
	var b bytes.Buffer
	if err := tableTmpl.Execute(&b, struct {
		Columns []string
		Rows    []tableRow
	}{t.Columns, rows}); err != nil {
		return Figure{}, fmt.Errorf("failed rendering %v: %w", t.Name, err)
	}
	return newFigure(t, b.String()), nil
}

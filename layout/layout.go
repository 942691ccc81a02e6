// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package layout arranges rendered figures into a single static HTML page.
package layout

import (
	"bytes"
	"html/template"
	"io"

	"github.com/derat/mortalidad/figure"
)

// DefaultMaxWidth is the maximum width of the page's content.
const DefaultMaxWidth = "1200px"

// Page describes the dashboard: a heading followed by figures in order.
type Page struct {
	Title    string
	MaxWidth string
	Figures  []figure.Figure
}

// Compose returns a Page with the supplied title and figures.
// Figures appear in the order in which they're passed.
func Compose(title string, figs ...figure.Figure) *Page {
	return &Page{Title: title, MaxWidth: DefaultMaxWidth, Figures: figs}
}

var pageTmpl = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: "Open Sans", Verdana, Arial, sans-serif; color: #2a3f5f; background: #fff; }
main { max-width: {{.MaxWidth}}; margin: auto; }
h1 { text-align: center; }
h2 { font-size: 1.1em; font-weight: normal; margin: 2em 0 0.5em; }
section.figure { overflow-x: auto; }
section.figure svg { max-width: 100%; height: auto; }
table.data { border-collapse: collapse; width: 100%; }
table.data th { background: lightgrey; text-align: left; }
table.data th, table.data td { border: 1px solid #c8d4e3; padding: 4px 8px; }
table.data td.num { text-align: right; }
ul.legend { list-style: none; padding: 0; }
ul.legend li { display: inline-block; margin-right: 1.5em; }
ul.legend .swatch { display: inline-block; width: 12px; height: 12px; margin-right: 4px; }
p.empty { color: #888; font-style: italic; }
</style>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
{{- range .Figures}}
<section class="figure" id="{{.Name}}">
<h2>{{.Title}}</h2>
{{.Body}}
</section>
{{- end}}
</main>
</body>
</html>
`))

// Render writes p as a complete HTML document to w.
func (p *Page) Render(w io.Writer) error {
	return pageTmpl.Execute(w, p)
}

// Bytes returns the rendered HTML document.
func (p *Page) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := p.Render(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

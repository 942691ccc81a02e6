// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package export

const (
	// Data files hold a label column followed by a count column, separated by tabs.
	plotHeaderTmpl = `
set title {{.Title}}
set term pngcairo size {{.Width}},{{.Height}} font ',10'
set output {{.OutPath}}
set datafile separator tab
set key off
set grid ytics
set xlabel {{.XLabel}}
set ylabel {{.YLabel}}
set yrange [0:*]
set bmargin 6
`

	linePlotTmpl = plotHeaderTmpl + `
set xtics 1
plot {{.DataPath}} using 1:2 with linespoints lc rgb '#c0392b' lw 2 pt 7
`

	barPlotTmpl = plotHeaderTmpl + `
set style fill solid 0.9 border -1
set boxwidth 0.6
set xtics scale 0 rotate by 45 right
plot {{.DataPath}} using 0:2:xtic(1) with boxes lc rgb '#c0392b'
`
)

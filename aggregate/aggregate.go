// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package aggregate computes the small count tables that are charted on the dashboard.
//
// Every table is ordered deterministically: ranked tables sort by count and
// then by their key columns in ascending byte order, so rerunning on the same
// records always produces identical tables.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/derat/mortalidad/deaths"
)

// MannerHomicide is the manner-of-death value used for homicides.
const MannerHomicide = "Homicidio"

// Default sizes of the ranked tables.
const (
	TopHomicideCount  = 5
	BottomDeathsCount = 10
	TopCausesCount    = 10
)

// Row is a single row of a Table.
type Row struct {
	Keys  []string // grouping values, one per key column
	Count int
}

// Table holds the result of a group-and-count operation.
type Table struct {
	Name    string   // short identifier, e.g. "departamentos"
	Title   string   // human-readable title
	Columns []string // key column headers followed by the count header
	Rows    []Row
}

// Total returns the sum of t's counts.
func (t *Table) Total() int {
	n := 0
	for _, r := range t.Rows {
		n += r.Count
	}
	return n
}

// Record returns row i as strings in column order, i.e. keys followed by the count.
func (t *Table) Record(i int) []string {
	r := t.Rows[i]
	rec := make([]string, 0, len(r.Keys)+1)
	rec = append(rec, r.Keys...)
	return append(rec, strconv.Itoa(r.Count))
}

// counter counts occurrences of key tuples.
type counter struct {
	counts map[string]int
	keys   map[string][]string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int), keys: make(map[string][]string)}
}

func (c *counter) inc(keys ...string) {
	id := strings.Join(keys, "\x00")
	if _, ok := c.keys[id]; !ok {
		c.keys[id] = keys
	}
	c.counts[id]++
}

// rows returns c's contents sorted by key tuple.
func (c *counter) rows() []Row {
	rows := make([]Row, 0, len(c.counts))
	for id, n := range c.counts {
		rows = append(rows, Row{Keys: c.keys[id], Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return lessKeys(rows[i].Keys, rows[j].Keys) })
	return rows
}

func lessKeys(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// rank sorts rows by count (descending if desc is true), breaking ties by
// key tuple, and returns at most the first n.
func rank(rows []Row, desc bool, n int) []Row {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			if desc {
				return rows[i].Count > rows[j].Count
			}
			return rows[i].Count < rows[j].Count
		}
		return lessKeys(rows[i].Keys, rows[j].Keys)
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// countInts counts the values returned by f and returns rows in ascending numeric order.
func countInts(rs []deaths.Record, f func(r *deaths.Record) int) []Row {
	m := make(map[int]int)
	for i := range rs {
		m[f(&rs[i])]++
	}
	vals := make([]int, 0, len(m))
	for v := range m {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	rows := make([]Row, len(vals))
	for i, v := range vals {
		rows[i] = Row{Keys: []string{strconv.Itoa(v)}, Count: m[v]}
	}
	return rows
}

// ByDepartment counts records per department, ordered by department name.
// The counts sum to len(rs).
func ByDepartment(rs []deaths.Record, year int) *Table {
	c := newCounter()
	for i := range rs {
		c.inc(rs[i].Department)
	}
	return &Table{
		Name:    "departamentos",
		Title:   fmt.Sprintf("Muertes Totales por Departamento (%d)", year),
		Columns: []string{"Departamento", "Muertes"},
		Rows:    c.rows(),
	}
}

// ByMonth counts records per month, ordered by month.
func ByMonth(rs []deaths.Record, year int) *Table {
	return &Table{
		Name:    "meses",
		Title:   fmt.Sprintf("Muertes por Mes (%d)", year),
		Columns: []string{"Mes", "Muertes"},
		Rows:    countInts(rs, func(r *deaths.Record) int { return r.Month }),
	}
}

// TopHomicideMunicipalities returns the n municipalities with the most homicides.
func TopHomicideMunicipalities(rs []deaths.Record, n int) *Table {
	c := newCounter()
	for i := range rs {
		if rs[i].Manner == MannerHomicide {
			c.inc(rs[i].Municipality)
		}
	}
	return &Table{
		Name:    "homicidios",
		Title:   fmt.Sprintf("Top %d Ciudades Más Violentas (Homicidio)", n),
		Columns: []string{"Ciudad", "Homicidios"},
		Rows:    rank(c.rows(), true, n),
	}
}

// BottomMunicipalities returns the n municipalities with the fewest deaths.
// Municipalities without any records can't appear.
func BottomMunicipalities(rs []deaths.Record, n int) *Table {
	c := newCounter()
	for i := range rs {
		c.inc(rs[i].Municipality)
	}
	return &Table{
		Name:    "menor_mortalidad",
		Title:   fmt.Sprintf("%d Ciudades con Menor Mortalidad", n),
		Columns: []string{"Ciudad", "Muertes"},
		Rows:    rank(c.rows(), false, n),
	}
}

// TopCauses returns the n most frequent (cause code, description) pairs.
func TopCauses(rs []deaths.Record, n int) *Table {
	c := newCounter()
	for i := range rs {
		c.inc(rs[i].CauseCode, rs[i].CauseDesc)
	}
	return &Table{
		Name:    "causas",
		Title:   fmt.Sprintf("Top %d Causas de Muerte", n),
		Columns: []string{"Código CIE-10", "Descripción CIE-10", "Total"},
		Rows:    rank(c.rows(), true, n),
	}
}

// ByAgeGroup counts records per five-year age group, ordered by group code.
// Each row's keys are the code and its label from AgeLabel.
func ByAgeGroup(rs []deaths.Record) *Table {
	rows := countInts(rs, func(r *deaths.Record) int { return r.AgeGroup })
	for i := range rows {
		code, _ := strconv.Atoi(rows[i].Keys[0])
		rows[i].Keys = append(rows[i].Keys, AgeLabel(code))
	}
	return &Table{
		Name:    "edades",
		Title:   "Distribución de Muertes por Edad Quinquenal",
		Columns: []string{"Grupo", "Rango de Edad", "Muertes"},
		Rows:    rows,
	}
}

// BySexAndDepartment counts records per (department, sex) pair.
// Pairs that don't occur are omitted rather than reported as zero.
func BySexAndDepartment(rs []deaths.Record) *Table {
	c := newCounter()
	for i := range rs {
		c.inc(rs[i].Department, rs[i].Sex)
	}
	return &Table{
		Name:    "sexo_departamento",
		Title:   "Muertes por Sexo y Departamento",
		Columns: []string{"Departamento", "Sexo", "Muertes"},
		Rows:    c.rows(),
	}
}

// Set holds the tables shown on the dashboard.
type Set struct {
	Departments     *Table
	Months          *Table
	Homicides       *Table
	LeastDeaths     *Table
	Causes          *Table
	AgeGroups       *Table
	SexByDepartment *Table
}

// Build computes all tables from rs, which should already be limited to year.
func Build(rs []deaths.Record, year int) *Set {
	return &Set{
		Departments:     ByDepartment(rs, year),
		Months:          ByMonth(rs, year),
		Homicides:       TopHomicideMunicipalities(rs, TopHomicideCount),
		LeastDeaths:     BottomMunicipalities(rs, BottomDeathsCount),
		Causes:          TopCauses(rs, TopCausesCount),
		AgeGroups:       ByAgeGroup(rs),
		SexByDepartment: BySexAndDepartment(rs),
	}
}

// Tables returns s's tables in dashboard order.
func (s *Set) Tables() []*Table {
	return []*Table{
		s.Departments,
		s.Months,
		s.Homicides,
		s.LeastDeaths,
		s.Causes,
		s.AgeGroups,
		s.SexByDepartment,
	}
}

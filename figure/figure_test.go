// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package figure

import (
	"strings"
	"testing"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/deaths"
	"github.com/derat/mortalidad/geo"
)

const testGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","properties":{"NOMBRE_DPT":"ANTIOQUIA"},
   "geometry":{"type":"Polygon","coordinates":[[[-77,5],[-74,5],[-74,8],[-77,8],[-77,5]]]}},
  {"type":"Feature","properties":{"NOMBRE_DPT":"CALDAS"},
   "geometry":{"type":"Polygon","coordinates":[[[-76,4.5],[-74.5,4.5],[-74.5,5.5],[-76,5.5],[-76,4.5]]]}},
  {"type":"Feature","properties":{"NOMBRE_DPT":"AMAZONAS"},
   "geometry":{"type":"Polygon","coordinates":[[[-72,-4],[-69,-4],[-69,0],[-72,0],[-72,-4]]]}}
]}`

func testRecords() []deaths.Record {
	mk := func(month int, dept, city, manner, sex string, age int) deaths.Record {
		return deaths.Record{
			Year: 2019, Month: month, Department: dept, Municipality: city, Manner: manner,
			CauseCode: "X954", CauseDesc: "Agresión <disparo>", AgeGroup: age, Sex: sex,
		}
	}
	return []deaths.Record{
		mk(1, "ANTIOQUIA", "MEDELLÍN", "Homicidio", "Masculino", 6),
		mk(1, "ANTIOQUIA", "BELLO", "Homicidio", "Femenino", 7),
		mk(2, "CALDAS", "MANIZALES", "Natural", "Masculino", 18),
		mk(3, "SAN ANDRÉS", "PROVIDENCIA", "Accidente", "Indeterminado", 18),
	}
}

func testBoundaries(t *testing.T) *geo.Boundaries {
	bs, err := geo.Parse([]byte(testGeoJSON), geo.DefaultKeyProperty)
	if err != nil {
		t.Fatal("Failed parsing GeoJSON: ", err)
	}
	return bs
}

func TestBuild(t *testing.T) {
	set := aggregate.Build(testRecords(), 2019)
	figs, err := Build(set, testBoundaries(t))
	if err != nil {
		t.Fatal("Build failed: ", err)
	}

	var names []string
	for _, f := range figs {
		names = append(names, f.Name)
		if f.Title == "" {
			t.Errorf("Figure %v has no title", f.Name)
		}
	}
	if got, want := strings.Join(names, ","),
		"departamentos,meses,homicidios,menor_mortalidad,causas,edades,sexo_departamento"; got != want {
		t.Errorf("Build returned figures %v; want %v", got, want)
	}

	for i, f := range figs {
		if i == 4 { // table
			continue
		}
		if !strings.Contains(string(f.Body), "<svg") {
			t.Errorf("Figure %v doesn't contain an SVG", f.Name)
		}
	}
}

func TestChoropleth(t *testing.T) {
	set := aggregate.Build(testRecords(), 2019)
	fig, err := Choropleth(set.Departments, testBoundaries(t))
	if err != nil {
		t.Fatal("Choropleth failed: ", err)
	}
	body := string(fig.Body)

	// SAN ANDRÉS has no boundary and AMAZONAS has no data, so only two regions are drawn.
	if n := strings.Count(body, "<path "); n != 2 {
		t.Errorf("Choropleth drew %d regions; want 2", n)
	}
	for _, s := range []string{"ANTIOQUIA: 2", "CALDAS: 1"} {
		if !strings.Contains(body, s) {
			t.Errorf("Choropleth output lacks %q", s)
		}
	}
	if strings.Contains(body, "AMAZONAS") || strings.Contains(body, "SAN ANDR") {
		t.Error("Choropleth output includes a region without data")
	}

	// Hole rings must stay unfilled whatever their winding order.
	if n := strings.Count(body, `fill-rule="evenodd"`); n != 2 {
		t.Errorf("Choropleth output has %d evenodd regions; want 2", n)
	}

	// The largest count gets the darkest color.
	if !strings.Contains(body, `fill="`+hexColor(redScale[len(redScale)-1])+`"`) {
		t.Error("Choropleth output lacks darkest color")
	}
}

func TestChoropleth_NoMatches(t *testing.T) {
	tab := &aggregate.Table{
		Name:    "departamentos",
		Columns: []string{"Departamento", "Muertes"},
		Rows:    []aggregate.Row{{Keys: []string{"ATLÁNTIDA"}, Count: 3}},
	}
	fig, err := Choropleth(tab, testBoundaries(t))
	if err != nil {
		t.Fatal("Choropleth failed: ", err)
	}
	if strings.Contains(string(fig.Body), "<path") {
		t.Error("Choropleth drew regions for unmatched names")
	}
}

func TestTable(t *testing.T) {
	tab := &aggregate.Table{
		Name:    "causas",
		Title:   "Top 10 Causas de Muerte",
		Columns: []string{"Código CIE-10", "Descripción CIE-10", "Total"},
		Rows:    []aggregate.Row{{Keys: []string{"X954", "Agresión <disparo>"}, Count: 12345}},
	}
	fig, err := Table(tab)
	if err != nil {
		t.Fatal("Table failed: ", err)
	}
	body := string(fig.Body)
	for _, s := range []string{
		"<th>Código CIE-10</th>",
		"<th>Total</th>",
		"<td>X954</td>",
		"Agresión &lt;disparo&gt;",
		`<td class="num">12.345</td>`,
	} {
		if !strings.Contains(body, s) {
			t.Errorf("Table output lacks %q:\n%s", s, body)
		}
	}
}

func TestEmptyTables(t *testing.T) {
	set := aggregate.Build(nil, 2019)
	figs, err := Build(set, testBoundaries(t))
	if err != nil {
		t.Fatal("Build failed for empty set: ", err)
	}
	for i, f := range figs {
		if i == 4 {
			continue
		}
		if !strings.Contains(string(f.Body), "Sin datos") {
			t.Errorf("Empty figure %v lacks placeholder", f.Name)
		}
	}
}

func TestLine_OneMonth(t *testing.T) {
	tab := &aggregate.Table{
		Name:    "meses",
		Columns: []string{"Mes", "Muertes"},
		Rows:    []aggregate.Row{{Keys: []string{"3"}, Count: 7}},
	}
	fig, err := Line(tab)
	if err != nil {
		t.Fatal("Line failed for a single month: ", err)
	}
	if !strings.Contains(string(fig.Body), "<svg") {
		t.Error("Line output for a single month doesn't contain an SVG")
	}
}

func TestLine_BadMonth(t *testing.T) {
	tab := &aggregate.Table{
		Name:    "meses",
		Columns: []string{"Mes", "Muertes"},
		Rows:    []aggregate.Row{{Keys: []string{"enero"}, Count: 1}},
	}
	if _, err := Line(tab); err == nil {
		t.Error("Line unexpectedly succeeded with non-numeric month")
	}
}

func TestScaleColor(t *testing.T) {
	for _, tc := range []struct {
		f    float64
		want string
	}{
		{-1, "#fff5f0"},
		{0, "#fff5f0"},
		{0.5, "#fb6a4a"},
		{1, "#67000d"},
		{2, "#67000d"},
	} {
		if got := hexColor(scaleColor(tc.f)); got != tc.want {
			t.Errorf("scaleColor(%v) = %v; want %v", tc.f, got, tc.want)
		}
	}
}

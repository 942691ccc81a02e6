// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package gnuplot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"text/template"
)

func TestQuote(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", "''"},
		{"Muertes por Mes", "'Muertes por Mes'"},
		{"O'Brien", "'O''Brien'"},
	} {
		if got := Quote(tc.in); got != tc.want {
			t.Errorf("Quote(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestRunner_NotFound(t *testing.T) {
	r := Runner{Path: filepath.Join(t.TempDir(), "missing-gnuplot")}
	if err := r.Available(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Available() = %v; want %v", err, ErrNotFound)
	}
}

func TestRunner_ExecTemplate(t *testing.T) {
	var r Runner
	if err := r.Available(); err != nil {
		t.Skip(err)
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	tmpl := template.Must(template.New("").Parse("set print {{.}}\nprint 'hola'\n"))
	if err := r.ExecTemplate(context.Background(), tmpl, Quote(out)); err != nil {
		t.Fatal("ExecTemplate failed: ", err)
	}
	if b, err := os.ReadFile(out); err != nil {
		t.Error(err)
	} else if got := strings.TrimSpace(string(b)); got != "hola" {
		t.Errorf("gnuplot wrote %q; want %q", got, "hola")
	}

	bad := template.Must(template.New("").Parse("this is not gnuplot\n"))
	if err := r.ExecTemplate(context.Background(), bad, nil); err == nil {
		t.Error("ExecTemplate unexpectedly succeeded for bad script")
	}
}

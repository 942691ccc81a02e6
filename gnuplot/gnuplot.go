// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package gnuplot makes it slightly easier to generate plots using gnuplot.
package gnuplot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// DefaultPath is the gnuplot executable that's used if Runner.Path is empty.
const DefaultPath = "gnuplot"

// ErrNotFound is returned if the gnuplot executable can't be found.
var ErrNotFound = errors.New("gnuplot not found")

// Runner runs gnuplot scripts.
type Runner struct {
	// Path is the gnuplot executable, looked up in $PATH if it has no slashes.
	Path string
}

func (r *Runner) path() string {
	if r.Path == "" {
		return DefaultPath
	}
	return r.Path
}

// Available returns ErrNotFound if r's executable can't be located.
func (r *Runner) Available() error {
	if _, err := exec.LookPath(r.path()); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return nil
}

// ExecTemplate executes the supplied Go template and data to write a .gnuplot file,
// which it then passes to gnuplot.
func (r *Runner) ExecTemplate(ctx context.Context, tmpl *template.Template, data interface{}) error {
	// Execute the template to write the .gnuplot file.
	gf, err := os.CreateTemp("", "gnuplot.")
	if err != nil {
		return err
	}
	defer os.Remove(gf.Name())

	terr := tmpl.Execute(gf, data)
	cerr := gf.Close()
	if terr != nil {
		return terr
	}
	if cerr != nil {
		return cerr
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path(), gf.Name())
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %q", err, msg)
		}
		return err
	}
	return nil
}

// Quote returns s as a single-quoted gnuplot string.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

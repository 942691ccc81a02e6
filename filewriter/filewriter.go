// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package filewriter safely writes files.
package filewriter

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mode is applied to files before they're renamed into place.
// os.CreateTemp creates files that are only readable by their owner.
const Mode = 0644

// FileWriter writes to a temp file and later atomically renames it.
// If a write error occurs, it is saved internally and future writes become no-ops.
// FileWriter implements io.Writer, so it can be handed to encoders.
type FileWriter struct {
	p    string   // target filename
	f    *os.File // temp file
	werr error    // first error encountered while writing
}

// New returns a new FileWriter that will write to the supplied path.
func New(p string) (*FileWriter, error) {
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*")
	if err != nil {
		return nil, err
	}
	return &FileWriter{p, f, nil}, nil
}

// TempPath returns the path of the temp file that's being written.
// It's useful for tools that need to write the file themselves.
func (fw *FileWriter) TempPath() string { return fw.f.Name() }

// Write writes b to the temp file.
// After the first error, nothing is written and the error is returned again.
func (fw *FileWriter) Write(b []byte) (int, error) {
	if fw.werr != nil {
		return 0, fw.werr
	}
	var n int
	n, fw.werr = fw.f.Write(b)
	return n, fw.werr
}

// Printf writes the supplied formatted data and returns the number of bytes written.
func (fw *FileWriter) Printf(format string, args ...interface{}) int {
	var n int
	if fw.werr == nil {
		n, fw.werr = fmt.Fprintf(fw.f, format, args...)
	}
	return n
}

// Fail records err so that Close discards the temp file instead of renaming it.
// It's a no-op if an error was already recorded.
func (fw *FileWriter) Fail(err error) {
	if fw.werr == nil && err != nil {
		fw.werr = err
	}
}

// Close renames the temp file to the path originally supplied to New.
// If a write error occurred earlier, it is returned and no other action is taken.
func (fw *FileWriter) Close() error {
	defer os.Remove(fw.f.Name()) // no-op on success
	cerr := fw.f.Close()
	if fw.werr != nil {
		return fw.werr
	}
	if cerr != nil {
		return cerr
	}
	if err := os.Chmod(fw.f.Name(), Mode); err != nil {
		return err
	}
	return os.Rename(fw.f.Name(), fw.p)
}

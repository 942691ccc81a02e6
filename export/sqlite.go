// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/filewriter"
)

const sqliteSchema = `
CREATE TABLE aggregate_tables (
  name    TEXT PRIMARY KEY,
  title   TEXT NOT NULL,
  columns TEXT NOT NULL
);
CREATE TABLE aggregate_rows (
  table_name TEXT NOT NULL REFERENCES aggregate_tables(name),
  position   INTEGER NOT NULL,
  key1       TEXT NOT NULL,
  key2       TEXT,
  count      INTEGER NOT NULL,
  PRIMARY KEY (table_name, position)
);
`

// WriteSQLite creates the export schema in db and inserts tables.
// Rows keep their table order in the position column, starting at 1.
func WriteSQLite(ctx context.Context, db *sql.DB, tables []*aggregate.Table) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after commit

	tstmt, err := tx.PrepareContext(ctx,
		`INSERT INTO aggregate_tables (name, title, columns) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tstmt.Close()
	rstmt, err := tx.PrepareContext(ctx,
		`INSERT INTO aggregate_rows (table_name, position, key1, key2, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer rstmt.Close()

	for _, t := range tables {
		if n := len(t.Columns) - 1; n < 1 || n > 2 {
			return fmt.Errorf("%v has %d key columns", t.Name, n)
		}
		if _, err := tstmt.ExecContext(ctx, t.Name, t.Title, strings.Join(t.Columns, "\t")); err != nil {
			return fmt.Errorf("insert %v: %w", t.Name, err)
		}
		for i, r := range t.Rows {
			var key2 sql.NullString
			if len(r.Keys) > 1 {
				key2 = sql.NullString{String: r.Keys[1], Valid: true}
			}
			if _, err := rstmt.ExecContext(ctx, t.Name, i+1, r.Keys[0], key2, r.Count); err != nil {
				return fmt.Errorf("insert %v row %d: %w", t.Name, i+1, err)
			}
		}
	}
	return tx.Commit()
}

// WriteSQLiteFile atomically writes a new SQLite database containing tables to p.
func WriteSQLiteFile(ctx context.Context, p string, tables []*aggregate.Table) error {
	fw, err := filewriter.New(p)
	if err != nil {
		return err
	}
	// SQLite treats the empty temp file as a new database.
	db, err := sql.Open("sqlite", fw.TempPath())
	if err != nil {
		fw.Fail(err)
		return fw.Close()
	}
	fw.Fail(WriteSQLite(ctx, db, tables))
	fw.Fail(db.Close())
	return fw.Close()
}

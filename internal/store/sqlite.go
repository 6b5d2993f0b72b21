// Package store writes annotated emoji catalogs to SQLite snapshot files.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/f3rmion/emo/internal/emoji"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE emoji (
	key         TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	codepoints  TEXT NOT NULL,
	status      TEXT NOT NULL,
	grp         TEXT NOT NULL,
	subgroup    TEXT NOT NULL,
	name        TEXT NOT NULL,
	spoken_text TEXT NOT NULL
);
CREATE TABLE keyword (
	key   TEXT NOT NULL REFERENCES emoji(key),
	token TEXT NOT NULL
);
CREATE INDEX keyword_token ON keyword(token);
`

// Export writes cat to a new SQLite database at path, replacing any file
// already there. The catalog must be annotated. It returns the number of
// entries written.
func Export(ctx context.Context, path string, cat *emoji.Catalog, locale string) (int, error) {
	switch {
	case cat == nil || cat.Phase() == emoji.PhaseEmpty:
		return 0, emoji.ErrNotBuilt
	case cat.Phase() == emoji.PhaseBuilt:
		return 0, emoji.ErrNotAnnotated
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("removing old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('locale', ?)`, locale); err != nil {
		return 0, fmt.Errorf("writing meta: %w", err)
	}

	n, err := writeEntries(ctx, tx, cat.Entries())
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return n, nil
}

func writeEntries(ctx context.Context, tx *sql.Tx, entries []emoji.Entry) (int, error) {
	insertEntry, err := tx.PrepareContext(ctx, `
		INSERT INTO emoji (key, position, codepoints, status, grp, subgroup, name, spoken_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing emoji insert: %w", err)
	}
	defer insertEntry.Close()

	insertKeyword, err := tx.PrepareContext(ctx, `INSERT INTO keyword (key, token) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing keyword insert: %w", err)
	}
	defer insertKeyword.Close()

	for i, e := range entries {
		_, err := insertEntry.ExecContext(ctx,
			e.Key, i, e.CodepointString(), e.Status.String(),
			e.Label.Group, e.Label.Subgroup, e.Name, e.SpokenText)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", e.CodepointString(), err)
		}
		for _, token := range e.Names() {
			if _, err := insertKeyword.ExecContext(ctx, e.Key, token); err != nil {
				return 0, fmt.Errorf("inserting keyword %q: %w", token, err)
			}
		}
	}
	return len(entries), nil
}

// Package store persists named query trees in a SQLite catalog. Trees are
// stored as their deduplicated JSON serialization, so a loaded tree carries
// the same effective definition at every label as the one saved.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/querytree/document"
	"github.com/agentic-research/querytree/query"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trees (
	name       TEXT PRIMARY KEY,
	definition TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store is a catalog of named query trees backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates the catalog file (and its parent directory) if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the tree's deduplicated serialization under the given name.
func (s *Store) Save(name string, t *query.Tree) error {
	data, err := document.Encode(t.Serialize(true))
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO trees (name, definition) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			definition = excluded.definition,
			updated_at = CURRENT_TIMESTAMP`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("save tree %q: %w", name, err)
	}
	return nil
}

// Load rebuilds the named tree from its stored definition.
func (s *Store) Load(name string) (*query.Tree, error) {
	var definition string
	err := s.db.QueryRow(`SELECT definition FROM trees WHERE name = ?`, name).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load tree %q: %w", name, query.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load tree %q: %w", name, err)
	}
	return query.FromString(definition)
}

// List returns the catalog's tree names, sorted.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM trees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list trees: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the named tree. A missing name is ErrNotFound.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM trees WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete tree %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tree %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete tree %q: %w", name, query.ErrNotFound)
	}
	return nil
}

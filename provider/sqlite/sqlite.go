// Package sqlite persists a registry subtree in a SQLite table,
// keeping enumeration order across load/save cycles. Paths are stored
// relative to the prefix so the subtree can be remounted elsewhere.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/regtree/regtree/provider"
	"github.com/regtree/regtree/tree"
	"github.com/regtree/regtree/treepath"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	pos   INTEGER PRIMARY KEY,
	path  TEXT NOT NULL UNIQUE,
	value TEXT NOT NULL
)`

type Provider struct {
	name   string
	file   string
	prefix string
	db     *sql.DB
}

var _ provider.Provider = (*Provider)(nil)

func New(name, file, prefix string) *Provider {
	return &Provider{name: name, file: file, prefix: treepath.Trim(prefix)}
}

func (p *Provider) Name() string { return p.name }

// Init opens the database, applies pragmas and creates the schema.
// Further calls reuse the open handle.
func (p *Provider) Init(*tree.Tree) error {
	if p.db != nil {
		return nil
	}
	if p.file == "" {
		return errors.New("no file")
	}
	if p.prefix == "" || p.prefix[0] != treepath.Sep {
		return fmt.Errorf("prefix %q is not absolute", p.prefix)
	}
	db, err := sql.Open("sqlite", p.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.file, err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	p.db = db
	return nil
}

func (p *Provider) Load(t *tree.Tree) error {
	if p.db == nil {
		return errors.New("not initialized")
	}
	rows, err := p.db.Query("SELECT path, value FROM entries ORDER BY pos")
	if err != nil {
		return fmt.Errorf("query %s: %w", p.file, err)
	}
	defer rows.Close()
	for rows.Next() {
		var rel, value string
		if err := rows.Scan(&rel, &value); err != nil {
			return err
		}
		t.Set(p.prefix+"/"+rel, value)
	}
	return rows.Err()
}

// Save rewrites the table from the value-bearing nodes under the
// prefix, in enumeration order, in one transaction.
func (p *Provider) Save(t *tree.Tree) error {
	if p.db == nil {
		return errors.New("not initialized")
	}
	paths, _ := t.Match(nil, p.prefix+"/*", -1)
	l := treepath.Len(p.prefix)
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}
	ins, err := tx.Prepare("INSERT INTO entries (pos, path, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer ins.Close()
	pos := 0
	for _, path := range paths {
		v, ok := t.Get(path)
		if !ok {
			continue
		}
		pos++
		if _, err := ins.Exec(pos, path[l+1:], v); err != nil {
			return fmt.Errorf("insert %s: %w", path, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (p *Provider) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

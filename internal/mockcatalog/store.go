package mockcatalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed pokemon.json
var fixtureJSON []byte

// ErrNotFound is returned when no entry matches an id or name.
var ErrNotFound = errors.New("entry not found")

// Entry is one creature in the fixture catalog.
type Entry struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Abilities []string `json:"abilities"`
	Types     []string `json:"types"`
}

// Store handles fixture database operations.
type Store struct {
	db *sql.DB
}

// Open creates a Store backed by SQLite at dsn. An empty dsn or ":memory:"
// keeps the catalog in memory.
func Open(dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" || dsn == ":memory:" {
		dsn = ":memory:"
	} else {
		dsn += "?_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each in-memory connection is its own database; keep exactly one open.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pokemon (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			height INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			abilities TEXT NOT NULL,
			types TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pokemon_name ON pokemon(name)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Fixtures decodes the embedded catalog.
func Fixtures() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(fixtureJSON, &entries); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return entries, nil
}

// Seed inserts entries, replacing any with the same id.
func (s *Store) Seed(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO pokemon (id, name, height, weight, abilities, types)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		abilities, _ := json.Marshal(nonNil(e.Abilities))
		types, _ := json.Marshal(nonNil(e.Types))
		if _, err := stmt.ExecContext(ctx, e.ID, strings.ToLower(e.Name), e.Height, e.Weight,
			string(abilities), string(types)); err != nil {
			return fmt.Errorf("seed %s: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// Count returns how many entries match search.
func (s *Store) Count(ctx context.Context, search string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pokemon WHERE instr(name, ?) > 0`,
		normalizeSearch(search),
	).Scan(&n)
	return n, err
}

// List returns one window of entries matching search, ordered by id.
func (s *Store) List(ctx context.Context, search string, offset, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, height, weight, abilities, types
		FROM pokemon WHERE instr(name, ?) > 0
		ORDER BY id LIMIT ? OFFSET ?
	`, normalizeSearch(search), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get looks an entry up by numeric id or by name.
func (s *Store) Get(ctx context.Context, ref string) (Entry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	query := `SELECT id, name, height, weight, abilities, types FROM pokemon WHERE name = ?`
	var arg any = ref
	if id, err := strconv.Atoi(ref); err == nil {
		query = `SELECT id, name, height, weight, abilities, types FROM pokemon WHERE id = ?`
		arg = id
	}
	e, err := scanEntry(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var abilities, types string
	if err := row.Scan(&e.ID, &e.Name, &e.Height, &e.Weight, &abilities, &types); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(abilities), &e.Abilities); err != nil {
		return Entry{}, fmt.Errorf("decode abilities of %s: %w", e.Name, err)
	}
	if err := json.Unmarshal([]byte(types), &e.Types); err != nil {
		return Entry{}, fmt.Errorf("decode types of %s: %w", e.Name, err)
	}
	return e, nil
}

func normalizeSearch(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

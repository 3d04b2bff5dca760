// Package store persists saved exercises in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coop-budget/internal/exercise"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

var ErrNotFound = errors.New("exercise not found")

// Fixed-width so that created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides SQLite-backed exercise storage.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath. ":memory:" is accepted for tests.
func Open(dbPath string) (*Store, error) {
	dsn := ":memory:"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces ex. A missing ID or CreatedAt is filled in and the
// stored exercise is returned.
func (s *Store) Save(ctx context.Context, ex exercise.Exercise) (exercise.Exercise, error) {
	payload, err := ex.Payload()
	if err != nil {
		return exercise.Exercise{}, err
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO exercises
		(id, name, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, string(ex.Kind), string(payload), ex.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("saving exercise %s: %w", ex.ID, err)
	}
	return ex, nil
}

func (s *Store) Get(ctx context.Context, id string) (exercise.Exercise, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, kind, payload, created_at FROM exercises WHERE id = ?", id)
	ex, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return exercise.Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ex, err
}

// List returns exercises oldest first, optionally restricted to one kind.
func (s *Store) List(ctx context.Context, kind exercise.Kind) ([]exercise.Exercise, error) {
	query := "SELECT id, name, kind, payload, created_at FROM exercises"
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []exercise.Exercise{}
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(sc scanner) (exercise.Exercise, error) {
	var id, name, kind, payload, created string
	if err := sc.Scan(&id, &name, &kind, &payload, &created); err != nil {
		return exercise.Exercise{}, err
	}
	ex, err := exercise.FromPayload(name, exercise.Kind(kind), []byte(payload))
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("decoding stored exercise %s: %w", id, err)
	}
	ex.ID = id
	ex.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("parsing created_at of %s: %w", id, err)
	}
	return ex, nil
}

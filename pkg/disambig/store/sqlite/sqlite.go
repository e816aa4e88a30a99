package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS sentences (
	source_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	tokens TEXT NOT NULL,
	token_count INTEGER NOT NULL,
	PRIMARY KEY(source_id, seq),
	FOREIGN KEY(source_id) REFERENCES sources(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	variant TEXT NOT NULL,
	set_name TEXT NOT NULL,
	members TEXT NOT NULL,
	default_guess TEXT NOT NULL,
	correct INTEGER NOT NULL,
	total INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	train_size INTEGER NOT NULL,
	test_size INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddSentences appends sentences to a source, creating it if needed.
// It returns the number of sentences stored.
func (s *sqliteStore) AddSentences(ctx context.Context, source string, sentences [][]string) (int, error) {
	if strings.TrimSpace(source) == "" {
		return 0, fmt.Errorf("empty source name: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var sourceID int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO sources (name) VALUES (?)
ON CONFLICT(name) DO UPDATE SET name=excluded.name
RETURNING id;
`, source).Scan(&sourceID)
	if err != nil {
		return 0, err
	}

	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM sentences WHERE source_id = ?`, sourceID,
	).Scan(&next); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sentences (source_id, seq, tokens, token_count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	stored := 0
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		data, err := json.Marshal(sentence)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, sourceID, next, string(data), len(sentence)); err != nil {
			return 0, err
		}
		next++
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return stored, nil
}

// Sentences returns every sentence of a source in insertion order.
func (s *sqliteStore) Sentences(ctx context.Context, source string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT se.tokens FROM sentences se
JOIN sources so ON so.id = se.source_id
WHERE so.name = ?
ORDER BY se.seq;
`, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var tokens []string
		if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
			return nil, fmt.Errorf("decode sentence of %s: %w", source, err)
		}
		out = append(out, tokens)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("source %q: %w", source, internalerr.ErrNotFound)
	}
	return out, nil
}

// Sources lists imported sources with their sizes.
func (s *sqliteStore) Sources(ctx context.Context) ([]store.SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT so.name, COUNT(se.seq), COALESCE(SUM(se.token_count), 0)
FROM sources so
LEFT JOIN sentences se ON se.source_id = so.id
GROUP BY so.id
ORDER BY so.name;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.SourceInfo
	for rows.Next() {
		var info store.SourceInfo
		if err := rows.Scan(&info.Name, &info.Sentences, &info.Tokens); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSource removes a source and its sentences.
// The foreign_keys pragma is per connection, so sentences are removed explicitly.
func (s *sqliteStore) DeleteSource(ctx context.Context, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sentences WHERE source_id IN (SELECT id FROM sources WHERE name = ?)`, source); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE name = ?`, source); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveRun inserts or replaces an evaluation run.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}
	members, err := json.Marshal(r.Members)
	if err != nil {
		return err
	}

	const stmt = `
INSERT INTO runs (id, variant, set_name, members, default_guess, correct, total, accuracy, train_size, test_size, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	variant=excluded.variant,
	set_name=excluded.set_name,
	members=excluded.members,
	default_guess=excluded.default_guess,
	correct=excluded.correct,
	total=excluded.total,
	accuracy=excluded.accuracy,
	train_size=excluded.train_size,
	test_size=excluded.test_size,
	created_at=excluded.created_at;
`
	_, err = s.db.ExecContext(ctx, stmt,
		r.ID, r.Variant, r.SetName, string(members), r.Default,
		r.Correct, r.Total, r.Accuracy, r.TrainSize, r.TestSize,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

const runColumns = `id, variant, set_name, members, default_guess, correct, total, accuracy, train_size, test_size, created_at`

// GetRun returns a run by id.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// Runs returns the most recent runs first. limit <= 0 returns all.
func (s *sqliteStore) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r       store.Run
		members string
		created string
	)
	if err := sc.Scan(&r.ID, &r.Variant, &r.SetName, &members, &r.Default,
		&r.Correct, &r.Total, &r.Accuracy, &r.TrainSize, &r.TestSize, &created); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(members), &r.Members); err != nil {
		return store.Run{}, fmt.Errorf("decode members of run %s: %w", r.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse created_at of run %s: %w", r.ID, err)
	}
	r.CreatedAt = t
	return r, nil
}

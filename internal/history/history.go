// Package history persists measurement runs in a local SQLite database so
// past runs can be listed, re-compared, and pruned.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"rexbench/internal/schema"
)

// Run identifies one stored measurement run.
type Run struct {
	ID        int64  `json:"id"`
	Engine    string `json:"engine"`
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
}

// Store archives result sets in SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		engine TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives a result set and returns its run id.
func (s *Store) Save(rs *schema.ResultSet) (int64, error) {
	payload, err := json.Marshal(rs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode result set: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (engine, timestamp, payload) VALUES (?, ?, ?)`,
		rs.Engine, rs.Timestamp, string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return res.LastInsertId()
}

// List returns stored runs, newest first.
func (s *Store) List() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, engine, timestamp, payload FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var payload string
		if err := rows.Scan(&r.ID, &r.Engine, &r.Timestamp, &payload); err != nil {
			return nil, err
		}
		var rs schema.ResultSet
		if err := json.Unmarshal([]byte(payload), &rs); err != nil {
			return nil, fmt.Errorf("corrupt payload for run %d: %w", r.ID, err)
		}
		r.Count = len(rs.Results)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Latest returns the most recent run for the given engine, or an error when
// the engine has no stored runs.
func (s *Store) Latest(engine string) (*schema.ResultSet, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM runs WHERE engine = ? ORDER BY id DESC LIMIT 1`,
		engine,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stored runs for engine %q", engine)
	}
	if err != nil {
		return nil, err
	}

	var rs schema.ResultSet
	if err := json.Unmarshal([]byte(payload), &rs); err != nil {
		return nil, fmt.Errorf("corrupt payload for engine %q: %w", engine, err)
	}
	return &rs, nil
}

// Get returns the run with the given id.
func (s *Store) Get(id int64) (*schema.ResultSet, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stored run with id %d", id)
	}
	if err != nil {
		return nil, err
	}

	var rs schema.ResultSet
	if err := json.Unmarshal([]byte(payload), &rs); err != nil {
		return nil, fmt.Errorf("corrupt payload for run %d: %w", id, err)
	}
	return &rs, nil
}

// Prune deletes all but the newest keep runs per engine. It returns the
// number of deleted rows.
func (s *Store) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY engine ORDER BY id DESC) AS rank
				FROM runs
			) WHERE rank <= ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

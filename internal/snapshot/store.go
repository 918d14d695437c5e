// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists an offline copy of the backend collections in
// SQLite, so the console can browse and export records without a network.
// Implements: prd014-offline-snapshot;
//
//	docs/ARCHITECTURE § Snapshot.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lab-console/internal/client"
	"github.com/pdiddy/lab-console/internal/stats"
	"github.com/pdiddy/lab-console/pkg/types"
)

const dbFile = "console.db"

// Store manages the snapshot SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the snapshot database at dir/console.db,
// creating the schema when missing.
func NewStore(cfg types.SnapshotConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT,
			description TEXT,
			created_at TEXT,
			payload TEXT NOT NULL,
			PRIMARY KEY (type, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_type ON records(type)`,
		`CREATE TABLE IF NOT EXISTS captures (
			type TEXT PRIMARY KEY,
			taken_at TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record is one snapshotted entity: the projected display fields plus the
// backend's full JSON payload.
type Record struct {
	ID          string           `json:"id" yaml:"id"`
	Type        types.EntityType `json:"type" yaml:"type"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string           `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Payload     json.RawMessage  `json:"payload" yaml:"-"`
}

// CaptureSummary holds per-collection counts from a snapshot run.
type CaptureSummary struct {
	Captured map[types.EntityType]int
	Failed   []string
}

// Total returns the number of records captured.
func (c CaptureSummary) Total() int {
	n := 0
	for _, v := range c.Captured {
		n += v
	}
	return n
}

// Capture fetches every collection and replaces its snapshot. A failed
// collection keeps its previous snapshot and is reported, not fatal.
func (s *Store) Capture(ctx context.Context, cfg types.ConsoleConfig, creds client.CredentialProvider, w io.Writer) (CaptureSummary, error) {
	summary := CaptureSummary{Captured: make(map[types.EntityType]int)}

	pubs := client.NewPublications(cfg, creds)
	research := client.NewResearch(cfg, creds)
	programs := client.NewPrograms(cfg, creds)
	events := client.NewEvents(cfg, creds)

	capture := func(entity types.EntityType, fetch func() ([]Record, error)) {
		records, err := fetch()
		if err != nil {
			summary.Failed = append(summary.Failed, fmt.Sprintf("%s: %v", entity, err))
			fmt.Fprintf(w, "failed   %s: %v\n", entity, err)
			return
		}
		if err := s.replaceCollection(ctx, entity, records); err != nil {
			summary.Failed = append(summary.Failed, fmt.Sprintf("%s: %v", entity, err))
			fmt.Fprintf(w, "failed   %s: %v\n", entity, err)
			return
		}
		summary.Captured[entity] = len(records)
		fmt.Fprintf(w, "captured %s (%d records)\n", entity, len(records))
	}

	capture(types.TypePublication, func() ([]Record, error) {
		items, err := pubs.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(items))
		for _, it := range items {
			out = append(out, newRecord(it.ID, types.TypePublication, it.Title,
				firstNonEmpty(it.Description, it.Summary, it.Abstract),
				firstNonEmpty(it.CreatedAt, it.PublishedDate), it))
		}
		return out, nil
	})
	capture(types.TypeResearch, func() ([]Record, error) {
		items, err := research.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(items))
		for _, it := range items {
			out = append(out, newRecord(it.ID, types.TypeResearch, it.Title,
				firstNonEmpty(it.Description, it.Abstract),
				firstNonEmpty(it.CreatedAt, it.PublishedDate), it))
		}
		return out, nil
	})
	capture(types.TypeProgram, func() ([]Record, error) {
		items, err := programs.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(items))
		for _, it := range items {
			out = append(out, newRecord(it.ID, types.TypeProgram, it.Title,
				it.Description, firstNonEmpty(it.CreatedAt, it.StartDate), it))
		}
		return out, nil
	})
	capture(types.TypeEvent, func() ([]Record, error) {
		items, err := events.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(items))
		for _, it := range items {
			out = append(out, newRecord(it.ID, types.TypeEvent, it.Title,
				it.Description, firstNonEmpty(it.CreatedAt, it.StartDate), it))
		}
		return out, nil
	})

	fmt.Fprintf(w, "\ncaptured: %d records, failed collections: %d\n",
		summary.Total(), len(summary.Failed))
	return summary, nil
}

func newRecord(id string, entity types.EntityType, title, description, createdAt string, payload any) Record {
	data, _ := json.Marshal(payload)
	return Record{
		ID:          id,
		Type:        entity,
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
		Payload:     data,
	}
}

// replaceCollection swaps one collection's snapshot atomically.
func (s *Store) replaceCollection(ctx context.Context, entity types.EntityType, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE type = ?`, string(entity)); err != nil {
		return fmt.Errorf("clearing old snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (id, type, title, description, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, r.ID, string(r.Type), r.Title,
			r.Description, r.CreatedAt, string(r.Payload)); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO captures (type, taken_at, count) VALUES (?, ?, ?)
		 ON CONFLICT(type) DO UPDATE SET taken_at=excluded.taken_at, count=excluded.count`,
		string(entity), time.Now().UTC().Format(time.RFC3339), len(records)); err != nil {
		return fmt.Errorf("recording capture: %w", err)
	}

	return tx.Commit()
}

// Records returns the snapshotted records for one collection, newest
// first. An empty entity returns every collection.
func (s *Store) Records(ctx context.Context, entity types.EntityType) ([]Record, error) {
	query := `SELECT id, type, title, description, created_at, payload FROM records`
	args := []any{}
	if entity != "" {
		query += ` WHERE type = ?`
		args = append(args, string(entity))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var entity, payload string
		if err := rows.Scan(&r.ID, &entity, &r.Title, &r.Description, &r.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Type = types.EntityType(entity)
		r.Payload = json.RawMessage(payload)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TakenAt returns when a collection was last captured, or the zero time if
// it never was.
func (s *Store) TakenAt(ctx context.Context, entity types.EntityType) (time.Time, error) {
	var taken string
	err := s.db.QueryRowContext(ctx,
		`SELECT taken_at FROM captures WHERE type = ?`, string(entity)).Scan(&taken)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying capture time: %w", err)
	}
	return stats.ResolveTime(taken), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

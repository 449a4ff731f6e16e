// ABOUTME: SQLite-backed coordination journal implementing ownership.Tracer
// ABOUTME: Opt-in diagnostics; the coordinator itself persists nothing

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/2389/urimux/ownership"
)

// ErrInvalidLimit is returned when a read is requested with a non-positive limit.
var ErrInvalidLimit = errors.New("limit must be positive")

// RecordKind categorizes a journal record.
type RecordKind string

const (
	KindPeerRegistered   RecordKind = "peer_registered"
	KindProjection       RecordKind = "projection"
	KindReleaseRequested RecordKind = "release_requested"
)

// Record is one journaled coordination event.
type Record struct {
	ID         int64
	RecordedAt time.Time
	Kind       RecordKind

	// peer_registered fields
	PeerID   string
	PeerName string

	// projection fields
	ContextKey   string
	FocusedURI   string
	OwnedByOther bool
	OwnedBySelf  bool
	OwningPeer   string

	// release_requested field
	ReleasedURI string
}

// Journal records coordination activity to SQLite for offline inspection.
// Write paths are best-effort: insert failures are logged and swallowed so a
// broken journal can never disturb coordination.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens a journal database at the given path. Parent
// directories are created if needed.
func Open(path string) (*Journal, error) {
	logger := slog.Default().With("component", "journal")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	// One connection keeps :memory: databases coherent across the pool; the
	// journal's write rate never needs more.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	j := &Journal{db: db, logger: logger}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("coordination journal opened", "path", path)
	return j, nil
}

func (j *Journal) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS coordination_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at TEXT NOT NULL,
		kind TEXT NOT NULL,
		peer_id TEXT NOT NULL DEFAULT '',
		peer_name TEXT NOT NULL DEFAULT '',
		context_key TEXT NOT NULL DEFAULT '',
		focused_uri TEXT NOT NULL DEFAULT '',
		owned_by_other INTEGER NOT NULL DEFAULT 0,
		owned_by_self INTEGER NOT NULL DEFAULT 0,
		owning_peer TEXT NOT NULL DEFAULT '',
		released_uri TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_coordination_records_kind
		ON coordination_records(kind, recorded_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// PeerRegistered implements ownership.Tracer.
func (j *Journal) PeerRegistered(id, name string) {
	j.insert(Record{
		Kind:     KindPeerRegistered,
		PeerID:   id,
		PeerName: name,
	})
}

// ProjectionComputed implements ownership.Tracer.
func (j *Journal) ProjectionComputed(p ownership.Projection) {
	j.insert(Record{
		Kind:         KindProjection,
		ContextKey:   p.ContextKey,
		FocusedURI:   p.FocusedURI,
		OwnedByOther: p.OwnedByOther,
		OwnedBySelf:  p.OwnedBySelf,
		OwningPeer:   p.OwningPeer,
		RecordedAt:   p.At,
	})
}

// ReleaseRequested implements ownership.Tracer.
func (j *Journal) ReleaseRequested(uri string) {
	j.insert(Record{
		Kind:        KindReleaseRequested,
		ReleasedURI: uri,
	})
}

func (j *Journal) insert(r Record) {
	recordedAt := r.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	query := `
		INSERT INTO coordination_records (
			recorded_at, kind, peer_id, peer_name, context_key, focused_uri,
			owned_by_other, owned_by_self, owning_peer, released_uri
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.Exec(query,
		recordedAt.UTC().Format(time.RFC3339Nano),
		string(r.Kind),
		r.PeerID,
		r.PeerName,
		r.ContextKey,
		r.FocusedURI,
		boolToInt(r.OwnedByOther),
		boolToInt(r.OwnedBySelf),
		r.OwningPeer,
		r.ReleasedURI,
	)
	if err != nil {
		j.logger.Warn("journal insert failed", "kind", r.Kind, "error", err)
	}
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	query := `
		SELECT id, recorded_at, kind, peer_id, peer_name, context_key,
		       focused_uri, owned_by_other, owned_by_self, owning_peer, released_uri
		FROM coordination_records
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := j.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var recordedAt string
		var kind string
		var ownedByOther, ownedBySelf int
		if err := rows.Scan(
			&r.ID, &recordedAt, &kind, &r.PeerID, &r.PeerName, &r.ContextKey,
			&r.FocusedURI, &ownedByOther, &ownedBySelf, &r.OwningPeer, &r.ReleasedURI,
		); err != nil {
			return nil, fmt.Errorf("scanning journal record: %w", err)
		}
		r.Kind = RecordKind(kind)
		r.OwnedByOther = ownedByOther != 0
		r.OwnedBySelf = ownedBySelf != 0
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			r.RecordedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ownership.Tracer = (*Journal)(nil)

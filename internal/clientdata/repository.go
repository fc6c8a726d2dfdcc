// Package clientdata provides persistent caching of upstream API responses.
// The startup listing is stored as a last-known-good snapshot per source:
// no TTL, no expiry - a snapshot is only ever replaced by the next
// successful fetch, and stale data is better than no data.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/venturelens/venturelens/internal/domain"
)

// SourceStartupListing is the snapshot source key for the analysis
// backend's startup listing endpoint.
const SourceStartupListing = "startup_listing"

// Snapshot is a stored last-known-good upstream response.
type Snapshot struct {
	ID        string
	Source    string
	Records   []domain.StartupRecord
	FetchedAt time.Time
}

// Repository provides snapshot storage over cache.db.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new snapshot repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Replace stores records as the new snapshot for source, overwriting any
// previous one. Records are msgpack-encoded; the blob is opaque to SQL.
func (r *Repository) Replace(source string, records []domain.StartupRecord) (*Snapshot, error) {
	data, err := msgpack.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	snap := &Snapshot{
		ID:        uuid.New().String(),
		Source:    source,
		Records:   records,
		FetchedAt: time.Now().UTC(),
	}

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO snapshots (source, id, data, fetched_at) VALUES (?, ?, ?, ?)",
		source, snap.ID, data, snap.FetchedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store snapshot for %s: %w", source, err)
	}

	return snap, nil
}

// Latest returns the stored snapshot for source regardless of age.
// Returns nil, nil when no snapshot has ever been stored.
func (r *Repository) Latest(source string) (*Snapshot, error) {
	var (
		id        string
		data      []byte
		fetchedAt int64
	)

	err := r.db.QueryRow(
		"SELECT id, data, fetched_at FROM snapshots WHERE source = ?",
		source,
	).Scan(&id, &data, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", source, err)
	}

	var records []domain.StartupRecord
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", source, err)
	}

	return &Snapshot{
		ID:        id,
		Source:    source,
		Records:   records,
		FetchedAt: time.Unix(fetchedAt, 0).UTC(),
	}, nil
}

// Delete removes the snapshot for a source.
func (r *Repository) Delete(source string) error {
	_, err := r.db.Exec("DELETE FROM snapshots WHERE source = ?", source)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", source, err)
	}
	return nil
}

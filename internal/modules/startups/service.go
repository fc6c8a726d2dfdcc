package startups

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/venturelens/venturelens/internal/clientdata"
	"github.com/venturelens/venturelens/internal/domain"
)

// ListingClient defines the contract for fetching the upstream startup listing
type ListingClient interface {
	ListStartups(ctx context.Context) ([]domain.StartupRecord, error)
}

// RefreshNotifier is notified after a successful sync so connected
// dashboards can re-render without polling
type RefreshNotifier interface {
	NotifyRecordsRefreshed(count int)
}

// SyncService orchestrates record acquisition: live fetch from the
// analysis backend, persistence to records.db, and maintenance of the
// last-known-good snapshot used as the offline/error fallback.
type SyncService struct {
	client    ListingClient
	repo      *Repository
	snapshots *clientdata.Repository
	notifier  RefreshNotifier
	log       zerolog.Logger
}

// NewSyncService creates a new sync service.
// notifier is optional - pass nil to disable refresh notifications.
func NewSyncService(
	client ListingClient,
	repo *Repository,
	snapshots *clientdata.Repository,
	notifier RefreshNotifier,
	log zerolog.Logger,
) *SyncService {
	return &SyncService{
		client:    client,
		repo:      repo,
		snapshots: snapshots,
		notifier:  notifier,
		log:       log.With().Str("service", "startup_sync").Logger(),
	}
}

// Refresh fetches the live listing, persists it, and replaces the
// snapshot. The snapshot is only touched on success, so a failed refresh
// leaves the last-known-good data intact.
func (s *SyncService) Refresh(ctx context.Context) ([]domain.StartupRecord, error) {
	records, err := s.client.ListStartups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch startup listing: %w", err)
	}

	if err := s.repo.ReplaceAll(records); err != nil {
		return nil, fmt.Errorf("failed to persist records: %w", err)
	}

	if _, err := s.snapshots.Replace(clientdata.SourceStartupListing, records); err != nil {
		// Snapshot failure is not fatal - the live data was persisted
		s.log.Warn().Err(err).Msg("Failed to update snapshot")
	}

	s.log.Info().Int("count", len(records)).Msg("Records refreshed")

	if s.notifier != nil {
		s.notifier.NotifyRecordsRefreshed(len(records))
	}

	return records, nil
}

// Records returns the best available record set: the live fetch when it
// succeeds, otherwise the stale snapshot (stale data is better than no
// data). Returns an empty slice when neither is available.
func (s *SyncService) Records(ctx context.Context) ([]domain.StartupRecord, error) {
	records, err := s.Refresh(ctx)
	if err == nil {
		return records, nil
	}

	s.log.Warn().Err(err).Msg("Live fetch failed, falling back to snapshot")

	snap, snapErr := s.snapshots.Latest(clientdata.SourceStartupListing)
	if snapErr != nil {
		return nil, fmt.Errorf("fetch failed and snapshot unavailable: %w", snapErr)
	}
	if snap == nil {
		// No snapshot has ever been stored; an empty dashboard beats an error
		return []domain.StartupRecord{}, nil
	}

	s.log.Info().
		Time("fetched_at", snap.FetchedAt).
		Int("count", len(snap.Records)).
		Msg("Using stale snapshot")

	return snap.Records, nil
}

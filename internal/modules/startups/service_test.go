package startups

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/venturelens/internal/clientdata"
	"github.com/venturelens/venturelens/internal/domain"
)

// MockListingClient is a mock analysis API client for testing
type MockListingClient struct {
	mock.Mock
}

func (m *MockListingClient) ListStartups(ctx context.Context) ([]domain.StartupRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StartupRecord), args.Error(1)
}

// MockNotifier records refresh notifications
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRecordsRefreshed(count int) {
	m.Called(count)
}

// newTestService shares one test DB between the record repo and the
// snapshot repo; the production layout splits them across records.db and
// cache.db but the SQL is identical.
func newTestService(t *testing.T, client ListingClient, notifier RefreshNotifier) (*SyncService, *Repository, *clientdata.Repository) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := db.Exec(`
		CREATE TABLE snapshots (
			source     TEXT PRIMARY KEY,
			id         TEXT NOT NULL,
			data       BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)`)
	require.NoError(t, err)
	snapshots := clientdata.NewRepository(db)

	svc := NewSyncService(client, repo, snapshots, notifier, zerolog.Nop())
	return svc, repo, snapshots
}

func TestRefreshPersistsAndSnapshots(t *testing.T) {
	client := new(MockListingClient)
	notifier := new(MockNotifier)
	client.On("ListStartups", mock.Anything).Return(sampleRecords(), nil)
	notifier.On("NotifyRecordsRefreshed", 2).Once()

	svc, repo, snapshots := newTestService(t, client, notifier)

	records, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	snap, err := snapshots.Latest(clientdata.SourceStartupListing)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Records, 2)

	notifier.AssertExpectations(t)
}

func TestRefreshFailureLeavesSnapshotIntact(t *testing.T) {
	client := new(MockListingClient)
	client.On("ListStartups", mock.Anything).Return(sampleRecords(), nil).Once()
	client.On("ListStartups", mock.Anything).Return(nil, errors.New("upstream down"))

	svc, _, snapshots := newTestService(t, client, nil)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	before, err := snapshots.Latest(clientdata.SourceStartupListing)
	require.NoError(t, err)
	require.NotNil(t, before)

	_, err = svc.Refresh(context.Background())
	require.Error(t, err)

	after, err := snapshots.Latest(clientdata.SourceStartupListing)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.ID, after.ID, "failed refresh must not touch the snapshot")
}

func TestRecordsFallsBackToSnapshot(t *testing.T) {
	client := new(MockListingClient)
	client.On("ListStartups", mock.Anything).Return(sampleRecords(), nil).Once()
	client.On("ListStartups", mock.Anything).Return(nil, errors.New("upstream down"))

	svc, _, _ := newTestService(t, client, nil)

	// First call succeeds and seeds the snapshot
	records, err := svc.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Second call fails upstream but serves the stale snapshot
	records, err = svc.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), records[0].CreatedAt)
}

func TestRecordsNoSnapshotReturnsEmpty(t *testing.T) {
	client := new(MockListingClient)
	client.On("ListStartups", mock.Anything).Return(nil, errors.New("upstream down"))

	svc, _, _ := newTestService(t, client, nil)

	records, err := svc.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

package file_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filestore "github.com/smoralesv/itinera/internal/adapters/storage/file"
	"github.com/smoralesv/itinera/internal/domain"
)

func testRecord(id string) *domain.TripRecord {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.TripRecord{
		ID: domain.TripID(id),
		Data: domain.TripSlots{
			Origin:      "Boston",
			Destination: "Paris",
			StartDate:   "2025-06-01",
			EndDate:     "2025-06-10",
			IsComplete:  true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")

	store, err := filestore.NewTripStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Create(testRecord("t1")))

	reopened, err := filestore.NewTripStore(path)
	require.NoError(t, err)

	rec, err := reopened.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, testRecord("t1").Data, rec.Data)
	assert.True(t, rec.CreatedAt.Equal(testRecord("t1").CreatedAt))
}

func TestDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")

	store, err := filestore.NewTripStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Create(testRecord("t1")))
	require.NoError(t, store.Create(testRecord("t2")))
	require.NoError(t, store.Delete("t1"))

	reopened, err := filestore.NewTripStore(path)
	require.NoError(t, err)

	_, err = reopened.Get("t1")
	assert.ErrorIs(t, err, domain.ErrTripNotFound)

	all, err := reopened.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateDuplicateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")

	store, err := filestore.NewTripStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Create(testRecord("t1")))
	assert.Error(t, store.Create(testRecord("t1")))
}

func TestCorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := filestore.NewTripStore(path)
	assert.Error(t, err)
}

func TestMissingFileStartsEmpty(t *testing.T) {
	store, err := filestore.NewTripStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	all, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

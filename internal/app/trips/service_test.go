package trips_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/smoralesv/itinera/internal/adapters/storage/memory"
	"github.com/smoralesv/itinera/internal/app/trips"
	"github.com/smoralesv/itinera/internal/domain"
)

func sampleSlots() domain.TripSlots {
	return domain.TripSlots{
		Origin:      "Boston",
		Destination: "Paris",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-10",
		IsComplete:  true,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	id, err := svc.Create(sampleSlots())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, sampleSlots(), rec.Data)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	id, err := svc.Create(sampleSlots())
	require.NoError(t, err)

	before, err := svc.Get(id)
	require.NoError(t, err)

	newOrigin := "Lisbon"
	require.NoError(t, svc.Update(id, domain.TripPatch{Origin: &newOrigin}))

	after, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", after.Data.Origin)
	assert.Equal(t, before.Data.Destination, after.Data.Destination)
	assert.Equal(t, before.Data.StartDate, after.Data.StartDate)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Equal(before.UpdatedAt))
}

func TestUpdateRederivesCompleteness(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	id, err := svc.Create(sampleSlots())
	require.NoError(t, err)

	empty := ""
	require.NoError(t, svc.Update(id, domain.TripPatch{Destination: &empty}))

	rec, err := svc.Get(id)
	require.NoError(t, err)
	assert.False(t, rec.Data.IsComplete, "clearing a required slot must clear completeness")
}

func TestUnknownTripOperations(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, domain.ErrTripNotFound)

	v := "x"
	assert.ErrorIs(t, svc.Update("missing", domain.TripPatch{Origin: &v}), domain.ErrTripNotFound)
	assert.ErrorIs(t, svc.Delete("missing"), domain.ErrTripNotFound)
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	id, err := svc.Create(sampleSlots())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(id))

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestSaveSnapshotCreatesThenUpdates(t *testing.T) {
	svc := trips.NewService(memstore.NewTripStore())

	id := domain.TripID("stable-handle")

	partial := domain.TripSlots{Origin: "Boston", FollowUp: "Where to?"}
	require.NoError(t, svc.SaveSnapshot(id, partial))

	rec, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, partial, rec.Data)

	require.NoError(t, svc.SaveSnapshot(id, sampleSlots()))

	rec, err = svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, sampleSlots(), rec.Data)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

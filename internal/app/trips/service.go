package trips

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smoralesv/itinera/internal/domain"
)

// Service owns the trip record lifecycle on top of a TripStore. The
// store confirms every write before the service reports success.
type Service struct {
	store domain.TripStore
	now   func() time.Time
}

func NewService(store domain.TripStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Create allocates a fresh trip id and stores the snapshot.
func (s *Service) Create(data domain.TripSlots) (domain.TripID, error) {
	now := s.now()

	rec := &domain.TripRecord{
		ID:        domain.TripID(uuid.NewString()),
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(rec); err != nil {
		return "", fmt.Errorf("create trip: %w", err)
	}
	return rec.ID, nil
}

func (s *Service) Get(id domain.TripID) (*domain.TripRecord, error) {
	return s.store.Get(id)
}

// Update applies an explicit field-level edit. Unlike slot merging,
// provided fields overwrite unconditionally, empty strings included.
func (s *Service) Update(id domain.TripID, patch domain.TripPatch) error {
	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}

	rec.Data.Apply(patch)
	rec.UpdatedAt = s.now()

	if err := s.store.Save(rec); err != nil {
		return fmt.Errorf("update trip %s: %w", id, err)
	}
	return nil
}

func (s *Service) Delete(id domain.TripID) error {
	return s.store.Delete(id)
}

func (s *Service) List() (map[domain.TripID]*domain.TripRecord, error) {
	return s.store.List()
}

// SaveSnapshot writes a slot snapshot under a caller-supplied trip id,
// creating the record on first use and replacing its data thereafter.
// This is the checkpoint path for in-progress conversations; it never
// allocates a second id for a trip the caller is already tracking.
func (s *Service) SaveSnapshot(id domain.TripID, data domain.TripSlots) error {
	now := s.now()

	rec, err := s.store.Get(id)
	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		rec = &domain.TripRecord{
			ID:        id,
			Data:      data,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Create(rec); err != nil {
			return fmt.Errorf("checkpoint trip %s: %w", id, err)
		}
		return nil
	case err != nil:
		return err
	}

	rec.Data = data
	rec.UpdatedAt = now
	if err := s.store.Save(rec); err != nil {
		return fmt.Errorf("checkpoint trip %s: %w", id, err)
	}
	return nil
}

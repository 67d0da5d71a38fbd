package memory

import (
	"fmt"
	"sync"

	"github.com/smoralesv/itinera/internal/domain"
)

// TripStore is a non-persistent domain.TripStore for development and
// tests. The store owns its copies: callers never share record memory
// with it.
type TripStore struct {
	mu      sync.RWMutex
	records map[domain.TripID]*domain.TripRecord
}

func NewTripStore() *TripStore {
	return &TripStore{
		records: make(map[domain.TripID]*domain.TripRecord),
	}
}

func (s *TripStore) Create(rec *domain.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("trip %s already exists", rec.ID)
	}

	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

func (s *TripStore) Get(id domain.TripID) (*domain.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrTripNotFound
	}

	cp := *rec
	return &cp, nil
}

func (s *TripStore) Save(rec *domain.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

func (s *TripStore) Delete(id domain.TripID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrTripNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *TripStore) List() (map[domain.TripID]*domain.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.TripID]*domain.TripRecord, len(s.records))
	for id, rec := range s.records {
		cp := *rec
		out[id] = &cp
	}
	return out, nil
}

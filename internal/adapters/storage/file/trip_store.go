package file

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/smoralesv/itinera/internal/domain"
)

// TripStore keeps all trip records in one JSON file. Mutations write
// the whole map to a temp file and rename it over the old one; the
// in-memory view only changes after the rename succeeds, so a failed
// write leaves both file and memory as they were.
type TripStore struct {
	mu      sync.RWMutex
	path    string
	records map[domain.TripID]*domain.TripRecord
}

func NewTripStore(path string) (*TripStore, error) {
	s := &TripStore{
		path:    path,
		records: make(map[domain.TripID]*domain.TripRecord),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading trip store %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &s.records); err != nil {
		return nil, fmt.Errorf("decoding trip store %s: %w", path, err)
	}
	return s, nil
}

func (s *TripStore) Create(rec *domain.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("trip %s already exists", rec.ID)
	}
	return s.put(rec)
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
	return s.put(rec)
}

func (s *TripStore) Delete(id domain.TripID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrTripNotFound
	}

	next := s.clone()
	delete(next, id)
	return s.flush(next)
}

func (s *TripStore) List() (map[domain.TripID]*domain.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(), nil
}

// put stages one record into a cloned map and flushes it. Caller holds
// the write lock.
func (s *TripStore) put(rec *domain.TripRecord) error {
	cp := *rec
	next := s.clone()
	next[rec.ID] = &cp
	return s.flush(next)
}

func (s *TripStore) clone() map[domain.TripID]*domain.TripRecord {
	out := make(map[domain.TripID]*domain.TripRecord, len(s.records))
	for id, rec := range s.records {
		cp := *rec
		out[id] = &cp
	}
	return out
}

// flush persists next and, only on success, makes it the live view.
func (s *TripStore) flush(next map[domain.TripID]*domain.TripRecord) error {
	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trip store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("writing trip store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing trip store: %w", err)
	}

	s.records = next
	return nil
}

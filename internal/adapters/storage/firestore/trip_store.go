package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/smoralesv/itinera/internal/domain"
)

// TripStore persists trip records in a Firestore "trips" collection,
// one document per trip id.
type TripStore struct {
	client *firestore.Client
}

func NewTripStore(ctx context.Context, projectID string) (*TripStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &TripStore{client: client}, nil
}

func (s *TripStore) tripsCol() *firestore.CollectionRef {
	return s.client.Collection("trips")
}

func (s *TripStore) tripDoc(id domain.TripID) *firestore.DocumentRef {
	return s.tripsCol().Doc(string(id))
}

type tripDoc struct {
	Origin      string    `firestore:"origin"`
	Destination string    `firestore:"destination"`
	StartDate   string    `firestore:"start_date"`
	EndDate     string    `firestore:"end_date"`
	FollowUp    string    `firestore:"follow_up"`
	IsComplete  bool      `firestore:"is_complete"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func toDoc(rec *domain.TripRecord) tripDoc {
	return tripDoc{
		Origin:      rec.Data.Origin,
		Destination: rec.Data.Destination,
		StartDate:   rec.Data.StartDate,
		EndDate:     rec.Data.EndDate,
		FollowUp:    rec.Data.FollowUp,
		IsComplete:  rec.Data.IsComplete,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func fromDoc(id domain.TripID, doc tripDoc) *domain.TripRecord {
	return &domain.TripRecord{
		ID: id,
		Data: domain.TripSlots{
			Origin:      doc.Origin,
			Destination: doc.Destination,
			StartDate:   doc.StartDate,
			EndDate:     doc.EndDate,
			FollowUp:    doc.FollowUp,
			IsComplete:  doc.IsComplete,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (s *TripStore) Create(rec *domain.TripRecord) error {
	ctx := context.Background()

	if _, err := s.tripDoc(rec.ID).Create(ctx, toDoc(rec)); err != nil {
		return fmt.Errorf("firestore Create: %w", err)
	}
	return nil
}

func (s *TripStore) Get(id domain.TripID) (*domain.TripRecord, error) {
	ctx := context.Background()

	snap, err := s.tripDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc tripDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}
	return fromDoc(id, doc), nil
}

func (s *TripStore) Save(rec *domain.TripRecord) error {
	ctx := context.Background()

	if _, err := s.tripDoc(rec.ID).Set(ctx, toDoc(rec)); err != nil {
		return fmt.Errorf("firestore Save: %w", err)
	}
	return nil
}

func (s *TripStore) Delete(id domain.TripID) error {
	ctx := context.Background()

	// Firestore deletes are idempotent; check existence first so
	// unknown ids surface as not-found.
	if _, err := s.Get(id); err != nil {
		return err
	}
	if _, err := s.tripDoc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore Delete: %w", err)
	}
	return nil
}

func (s *TripStore) List() (map[domain.TripID]*domain.TripRecord, error) {
	ctx := context.Background()

	iter := s.tripsCol().Documents(ctx)
	defer iter.Stop()

	out := make(map[domain.TripID]*domain.TripRecord)
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List: %w", err)
		}

		var doc tripDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode tripDoc: %w", err)
		}

		id := domain.TripID(snap.Ref.ID)
		out[id] = fromDoc(id, doc)
	}
	return out, nil
}

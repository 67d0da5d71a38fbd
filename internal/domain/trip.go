package domain

import "time"

// TripID identifies a durable trip record
type TripID string

// SessionKey scopes an in-progress extraction conversation.
// It is a separate identifier space from TripID, although callers may
// reuse a trip id as a session key when they want a stable handle.
type SessionKey string

// TripSlots is the trip profile under construction: the four required
// slots plus the next follow-up question for the user. IsComplete is
// always derived from the required slots, never set on its own.
type TripSlots struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	FollowUp    string `json:"follow_up"`
	IsComplete  bool   `json:"is_complete"`
}

// Extraction is one parsed extractor response. Empty fields mean the
// model learned nothing new for that slot on this turn.
type Extraction struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	FollowUp    string `json:"follow_up"`
}

// Complete reports whether every required slot holds a value.
func (s TripSlots) Complete() bool {
	return s.Origin != "" && s.Destination != "" && s.StartDate != "" && s.EndDate != ""
}

// Merge folds an extraction into the slots. Known values are never
// overwritten by empty ones; FollowUp always reflects the latest turn.
func (s *TripSlots) Merge(e Extraction) {
	if e.Origin != "" {
		s.Origin = e.Origin
	}
	if e.Destination != "" {
		s.Destination = e.Destination
	}
	if e.StartDate != "" {
		s.StartDate = e.StartDate
	}
	if e.EndDate != "" {
		s.EndDate = e.EndDate
	}
	s.FollowUp = e.FollowUp
	s.IsComplete = s.Complete()
}

// TripPatch is an explicit edit to a stored record. Nil fields are left
// untouched; non-nil fields overwrite, including with empty strings.
type TripPatch struct {
	Origin      *string `json:"origin"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	FollowUp    *string `json:"follow_up"`
}

// Apply overwrites the provided fields and re-derives IsComplete.
func (s *TripSlots) Apply(p TripPatch) {
	if p.Origin != nil {
		s.Origin = *p.Origin
	}
	if p.Destination != nil {
		s.Destination = *p.Destination
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.FollowUp != nil {
		s.FollowUp = *p.FollowUp
	}
	s.IsComplete = s.Complete()
}

// TripRecord is a durable snapshot of a trip profile.
type TripRecord struct {
	ID        TripID    `json:"id"`
	Data      TripSlots `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

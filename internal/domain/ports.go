package domain

import (
	"context"
	"time"
)

// Extractor opens stateful model conversations for slot extraction.
type Extractor interface {
	NewSession(ctx context.Context) (ExtractorSession, error)
}

// ExtractorSession is one model conversation. The handle keeps the
// model-side context across calls and is owned by exactly one
// ConversationState; Close releases whatever the model holds.
type ExtractorSession interface {
	Send(ctx context.Context, prompt string) (string, error)
	Close() error
}

// ItineraryGenerator produces free-text travel content in one shot.
type ItineraryGenerator interface {
	Itinerary(ctx context.Context, origin, destination string, start, end time.Time, interests []string) (string, error)
	RouteSummary(ctx context.Context, origin, destination string) (string, error)
}

// TripStore defines trip record persistence. Every mutating call must
// be durably written before it returns without error.
type TripStore interface {
	Create(rec *TripRecord) error
	Get(id TripID) (*TripRecord, error)
	Save(rec *TripRecord) error
	Delete(id TripID) error
	List() (map[TripID]*TripRecord, error)
}

// FlightSearcher finds round-trip flight offers.
type FlightSearcher interface {
	SearchOffers(ctx context.Context, origin, destination, departureDate, returnDate string) (*FlightResults, error)
}

// WeatherProvider reports weather for a city over a trip's date range.
type WeatherProvider interface {
	TripWeather(ctx context.Context, city, startDate, endDate string) (*WeatherReport, error)
}

// PlacesProvider searches points of interest near a city.
type PlacesProvider interface {
	Search(ctx context.Context, city, category string, limit int) ([]Place, error)
}

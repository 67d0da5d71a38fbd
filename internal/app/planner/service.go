package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/smoralesv/itinera/internal/domain"
	"github.com/smoralesv/itinera/internal/observability"
)

// Service assembles travel content for completed trip profiles. It is
// stateless: every method is one pass over the external providers.
type Service struct {
	generator domain.ItineraryGenerator
	weather   domain.WeatherProvider
}

func NewService(generator domain.ItineraryGenerator, weather domain.WeatherProvider) *Service {
	return &Service{
		generator: generator,
		weather:   weather,
	}
}

type PlanInput struct {
	Origin      string
	Destination string
	StartDate   string
	EndDate     string
	Interests   []string
}

// PlanTrip generates a day-by-day itinerary for the given profile.
func (s *Service) PlanTrip(ctx context.Context, in PlanInput) (string, error) {
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", in.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return "", fmt.Errorf("invalid end date %q: %w", in.EndDate, err)
	}
	if end.Before(start) {
		return "", fmt.Errorf("end date %s is before start date %s", in.EndDate, in.StartDate)
	}

	log := observability.LoggerFromContext(ctx).With(
		"origin", in.Origin,
		"destination", in.Destination,
	)
	log.Info("generating itinerary")

	text, err := s.generator.Itinerary(ctx, in.Origin, in.Destination, start, end, in.Interests)
	if err != nil {
		log.Error("itinerary generation failed", "error", err)
		return "", err
	}
	return text, nil
}

func (s *Service) RouteSummary(ctx context.Context, origin, destination string) (string, error) {
	return s.generator.RouteSummary(ctx, origin, destination)
}

type TripDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type WeatherSummary struct {
	OriginWeather      *domain.WeatherReport `json:"origin_weather"`
	DestinationWeather *domain.WeatherReport `json:"destination_weather"`
	TripDates          TripDates             `json:"trip_dates"`
}

// SmartWeather reports weather at both ends of a stored trip.
func (s *Service) SmartWeather(ctx context.Context, rec *domain.TripRecord) (*WeatherSummary, error) {
	data := rec.Data
	if data.Origin == "" || data.Destination == "" || data.StartDate == "" || data.EndDate == "" {
		return nil, fmt.Errorf("trip %s is missing origin, destination or dates", rec.ID)
	}

	originWeather, err := s.weather.TripWeather(ctx, data.Origin, data.StartDate, data.EndDate)
	if err != nil {
		return nil, fmt.Errorf("origin weather: %w", err)
	}
	destWeather, err := s.weather.TripWeather(ctx, data.Destination, data.StartDate, data.EndDate)
	if err != nil {
		return nil, fmt.Errorf("destination weather: %w", err)
	}

	return &WeatherSummary{
		OriginWeather:      originWeather,
		DestinationWeather: destWeather,
		TripDates: TripDates{
			Start: data.StartDate,
			End:   data.EndDate,
		},
	}, nil
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smoralesv/itinera/internal/app/extraction"
	"github.com/smoralesv/itinera/internal/app/planner"
	"github.com/smoralesv/itinera/internal/app/trips"
	"github.com/smoralesv/itinera/internal/domain"
)

type Server struct {
	extractSvc *extraction.Service
	tripSvc    *trips.Service
	plannerSvc *planner.Service
	flights    domain.FlightSearcher
	places     domain.PlacesProvider
}

func NewServer(
	extractSvc *extraction.Service,
	tripSvc *trips.Service,
	plannerSvc *planner.Service,
	flights domain.FlightSearcher,
	places domain.PlacesProvider,
) http.Handler {
	s := &Server{
		extractSvc: extractSvc,
		tripSvc:    tripSvc,
		plannerSvc: plannerSvc,
		flights:    flights,
		places:     places,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)

	mux.HandleFunc("/conversation", s.handleConversation)
	mux.HandleFunc("/conversation/reset", s.handleReset)

	// /trips        → POST: create, GET: list
	// /trips/{id}   → GET / PATCH / DELETE
	mux.HandleFunc("/trips", s.handleTrips)
	mux.HandleFunc("/trips/", s.handleTripWithID)

	mux.HandleFunc("/flights", s.handleFlights)
	mux.HandleFunc("/smart-weather", s.handleSmartWeather)
	mux.HandleFunc("/top-places", s.handleTopPlaces)
	mux.HandleFunc("/restaurants", s.handleRestaurants)
	mux.HandleFunc("/plan-trip", s.handlePlanTrip)
	mux.HandleFunc("/route-summary", s.handleRouteSummary)

	return chainMiddlewares(mux, withCORS, withLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type conversationRequest struct {
	Prompt     string `json:"prompt"`
	SessionKey string `json:"session_key,omitempty"`
	TripID     string `json:"trip_id,omitempty"`
}

type conversationResponse struct {
	domain.TripSlots
	TripID string `json:"trip_id,omitempty"`
}

type resetRequest struct {
	SessionKey string `json:"session_key,omitempty"`
}

type createTripResponse struct {
	TripID string            `json:"trip_id"`
	Trip   domain.TripRecord `json:"trip"`
}

type planTripRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Interests   []string `json:"interests,omitempty"`
}

type planTripResponse struct {
	Itinerary string `json:"itinerary"`
}

type routeSummaryResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Summary     string `json:"summary"`
}

type placesResponse struct {
	City   string         `json:"city"`
	Places []domain.Place `json:"places_to_visit,omitempty"`
	Food   []domain.Place `json:"restaurants,omitempty"`
}

// ─────────────────────────────────────────────
// Conversation
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req conversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(w, "prompt is required")
		return
	}

	slots, err := s.extractSvc.ProcessTurn(r.Context(), extraction.TurnInput{
		SessionKey: domain.SessionKey(req.SessionKey),
		TripID:     domain.TripID(req.TripID),
		Text:       req.Prompt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBadExtraction) {
			badRequest(w, domain.ErrBadExtraction.Error())
			return
		}
		internalError(w, err)
		return
	}

	tripID := req.TripID
	if slots.IsComplete && tripID == "" {
		// Implicit path: completion hands the snapshot off to storage.
		id, err := s.tripSvc.Create(slots)
		if err != nil {
			internalError(w, err)
			return
		}
		tripID = string(id)
	}

	writeJSON(w, http.StatusOK, conversationResponse{
		TripSlots: slots,
		TripID:    tripID,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	s.extractSvc.Reset(domain.SessionKey(req.SessionKey))
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ─────────────────────────────────────────────
// Trips
// ─────────────────────────────────────────────

func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTrip(w, r)
	case http.MethodGet:
		s.handleListTrips(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var data domain.TripSlots
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	data.IsComplete = data.Complete()

	id, err := s.tripSvc.Create(data)
	if err != nil {
		internalError(w, err)
		return
	}

	rec, err := s.tripSvc.Get(id)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createTripResponse{
		TripID: string(id),
		Trip:   *rec,
	})
}

func (s *Server) handleListTrips(w http.ResponseWriter, _ *http.Request) {
	all, err := s.tripSvc.List()
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleTripWithID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/trips/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	tripID := domain.TripID(id)

	switch r.Method {
	case http.MethodGet:
		rec, err := s.tripSvc.Get(tripID)
		if err != nil {
			tripError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodPatch:
		var patch domain.TripPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
		if err := s.tripSvc.Update(tripID, patch); err != nil {
			tripError(w, r, err)
			return
		}
		rec, err := s.tripSvc.Get(tripID)
		if err != nil {
			tripError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		if err := s.tripSvc.Delete(tripID); err != nil {
			tripError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

func tripError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrTripNotFound) {
		http.NotFound(w, r)
		return
	}
	internalError(w, err)
}

// ─────────────────────────────────────────────
// Travel data
// ─────────────────────────────────────────────

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	departureDate := q.Get("departure_date")
	returnDate := q.Get("return_date")
	if origin == "" || destination == "" || departureDate == "" || returnDate == "" {
		badRequest(w, "origin, destination, departure_date and return_date are required")
		return
	}

	results, err := s.flights.SearchOffers(r.Context(), origin, destination, departureDate, returnDate)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleSmartWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	tripID := r.URL.Query().Get("trip_id")
	if tripID == "" {
		badRequest(w, "trip_id is required")
		return
	}

	rec, err := s.tripSvc.Get(domain.TripID(tripID))
	if err != nil {
		tripError(w, r, err)
		return
	}

	summary, err := s.plannerSvc.SmartWeather(r.Context(), rec)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTopPlaces(w http.ResponseWriter, r *http.Request) {
	s.handlePlaces(w, r, "attractions")
}

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	s.handlePlaces(w, r, "restaurants")
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request, category string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		badRequest(w, "city is required")
		return
	}

	places, err := s.places.Search(r.Context(), city, category, 5)
	if err != nil {
		internalError(w, err)
		return
	}

	resp := placesResponse{City: city}
	if category == "restaurants" {
		resp.Food = places
	} else {
		resp.Places = places
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlanTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req planTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		badRequest(w, "destination, start_date and end_date are required")
		return
	}

	itinerary, err := s.plannerSvc.PlanTrip(r.Context(), planner.PlanInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Interests:   req.Interests,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planTripResponse{Itinerary: itinerary})
}

func (s *Server) handleRouteSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	if origin == "" || destination == "" {
		badRequest(w, "origin and destination are required")
		return
	}

	summary, err := s.plannerSvc.RouteSummary(r.Context(), origin, destination)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routeSummaryResponse{
		Origin:      origin,
		Destination: destination,
		Summary:     summary,
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

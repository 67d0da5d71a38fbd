package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/smoralesv/itinera/internal/domain"
	"github.com/smoralesv/itinera/internal/observability"
)

const (
	defaultAmadeusBaseURL = "https://test.api.amadeus.com"

	// Amadeus test tokens live ~30 minutes; refresh a little early.
	tokenCacheTTL   = 25 * time.Minute
	airportCacheTTL = cache.NoExpiration

	// The test flight search only serves dates within this window.
	maxSearchMonths = 11

	maxFlightOffers = 5
)

// fallback codes for common US cities when the location lookup comes
// back empty or fails.
var commonAirports = map[string]string{
	"new york":        "JFK",
	"los angeles":     "LAX",
	"chicago":         "ORD",
	"san francisco":   "SFO",
	"miami":           "MIA",
	"dallas":          "DFW",
	"houston":         "IAH",
	"atlanta":         "ATL",
	"washington d.c.": "DCA",
	"boston":          "BOS",
}

// AmadeusClient implements domain.FlightSearcher against the Amadeus
// self-service API: OAuth client-credentials token, city-to-IATA
// lookup, then flight-offers search.
type AmadeusClient struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewAmadeusClient(apiKey, apiSecret string) *AmadeusClient {
	return &AmadeusClient{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    defaultAmadeusBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache.New(tokenCacheTTL, 10*time.Minute),
	}
}

func (c *AmadeusClient) SearchOffers(
	ctx context.Context,
	origin, destination, departureDate, returnDate string,
) (*domain.FlightResults, error) {
	log := observability.WithComponent("amadeus")

	originCode, err := c.airportCode(ctx, origin)
	if err != nil {
		return nil, err
	}
	destinationCode, err := c.airportCode(ctx, destination)
	if err != nil {
		return nil, err
	}

	departure, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", departureDate, err)
	}
	if _, err := time.Parse("2006-01-02", returnDate); err != nil {
		return nil, fmt.Errorf("invalid return date %q: %w", returnDate, err)
	}

	today := time.Now()
	monthsAhead := (departure.Year()-today.Year())*12 + int(departure.Month()) - int(today.Month())
	if monthsAhead > maxSearchMonths {
		return &domain.FlightResults{
			Message:    "Flight search is currently available for dates within the next 11 months.",
			Suggestion: "Please check back closer to your travel date for available flights.",
		}, nil
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := offersRequest{
		CurrencyCode: "USD",
		OriginDestinations: []originDestination{
			{ID: "1", OriginLocationCode: originCode, DestinationLocationCode: destinationCode,
				DepartureDateTimeRange: dateRange{Date: departureDate}},
			{ID: "2", OriginLocationCode: destinationCode, DestinationLocationCode: originCode,
				DepartureDateTimeRange: dateRange{Date: returnDate}},
		},
		Travelers: []traveler{{ID: "1", TravelerType: "ADULT"}},
		Sources:   []string{"GDS"},
		SearchCriteria: searchCriteria{
			MaxFlightOffers: maxFlightOffers,
			FlightFilters: flightFilters{
				CabinRestrictions: []cabinRestriction{
					{Cabin: "ECONOMY", Coverage: "MOST_SEGMENTS", OriginDestinationIds: []string{"1", "2"}},
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding offers request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/shopping/flight-offers", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight offers: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("amadeus flight offers: status %d: %s", res.StatusCode, detail)
	}

	var offers offersResponse
	if err := json.NewDecoder(res.Body).Decode(&offers); err != nil {
		return nil, fmt.Errorf("decoding flight offers: %w", err)
	}

	if len(offers.Data) == 0 {
		log.Info("no flight offers", "origin", originCode, "destination", destinationCode)
		return &domain.FlightResults{
			Message: "No flights found for the selected dates.",
		}, nil
	}

	sort.Slice(offers.Data, func(i, j int) bool {
		pi, _ := strconv.ParseFloat(offers.Data[i].Price.Total, 64)
		pj, _ := strconv.ParseFloat(offers.Data[j].Price.Total, 64)
		return pi < pj
	})

	return simplifyOffers(offers), nil
}

// accessToken fetches (or reuses) a client-credentials token.
func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	if v, ok := c.cache.Get("token"); ok {
		return v.(string), nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.apiKey},
		"client_secret": {c.apiSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("amadeus token: status %d", res.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	c.cache.Set("token", body.AccessToken, tokenCacheTTL)
	return body.AccessToken, nil
}

// airportCode resolves a city name to its most relevant IATA code.
// Lookup failures degrade through a common-airports table and finally
// the first three letters of the city name.
func (c *AmadeusClient) airportCode(ctx context.Context, city string) (string, error) {
	clean := strings.TrimSpace(strings.Split(city, ",")[0])
	cacheKey := "iata:" + strings.ToLower(clean)

	if v, ok := c.cache.Get(cacheKey); ok {
		return v.(string), nil
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	params := url.Values{
		"keyword":     {clean},
		"subType":     {"CITY,AIRPORT"},
		"countryCode": {"US"},
		"page[limit]": {"10"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/reference-data/locations?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		observability.WithComponent("amadeus").Error("airport lookup failed", "city", clean, "error", err)
		return fallbackAirportCode(clean), nil
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		observability.WithComponent("amadeus").Error("airport lookup failed",
			"city", clean, "status", res.StatusCode)
		return fallbackAirportCode(clean), nil
	}

	var body struct {
		Data []wireLocation `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding locations response: %w", err)
	}

	code := ""
	if airport, ok := lo.Find(body.Data, func(l wireLocation) bool {
		return l.SubType == "AIRPORT" && l.IataCode != ""
	}); ok {
		code = airport.IataCode
	} else if len(body.Data) > 0 && body.Data[0].IataCode != "" {
		code = body.Data[0].IataCode
	} else {
		code = fallbackAirportCode(clean)
	}

	c.cache.Set(cacheKey, code, airportCacheTTL)
	return code, nil
}

func fallbackAirportCode(city string) string {
	lower := strings.ToLower(city)
	for name, code := range commonAirports {
		if strings.Contains(lower, name) {
			return code
		}
	}
	if len(city) >= 3 {
		return strings.ToUpper(city[:3])
	}
	return strings.ToUpper(city)
}

// Amadeus wire types, request side.

type offersRequest struct {
	CurrencyCode       string              `json:"currencyCode"`
	OriginDestinations []originDestination `json:"originDestinations"`
	Travelers          []traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     searchCriteria      `json:"searchCriteria"`
}

type originDestination struct {
	ID                      string    `json:"id"`
	OriginLocationCode      string    `json:"originLocationCode"`
	DestinationLocationCode string    `json:"destinationLocationCode"`
	DepartureDateTimeRange  dateRange `json:"departureDateTimeRange"`
}

type dateRange struct {
	Date string `json:"date"`
}

type traveler struct {
	ID           string `json:"id"`
	TravelerType string `json:"travelerType"`
}

type searchCriteria struct {
	MaxFlightOffers int           `json:"maxFlightOffers"`
	FlightFilters   flightFilters `json:"flightFilters"`
}

type flightFilters struct {
	CabinRestrictions []cabinRestriction `json:"cabinRestrictions"`
}

type cabinRestriction struct {
	Cabin                string   `json:"cabin"`
	Coverage             string   `json:"coverage"`
	OriginDestinationIds []string `json:"originDestinationIds"`
}

// Amadeus wire types, response side.

type offersResponse struct {
	Data []offerData `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

type offerData struct {
	Itineraries []struct {
		Duration string        `json:"duration"`
		Segments []wireSegment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

type wireSegment struct {
	Departure   wireEndpoint `json:"departure"`
	Arrival     wireEndpoint `json:"arrival"`
	Duration    string       `json:"duration"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

type wireEndpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
	Terminal string `json:"terminal"`
}

type wireLocation struct {
	SubType  string `json:"subType"`
	IataCode string `json:"iataCode"`
}

// simplifyOffers trims offers down to the essentials while keeping
// every connection of both legs.
func simplifyOffers(res offersResponse) *domain.FlightResults {
	var flights []domain.FlightOffer

	for _, offer := range res.Data {
		if len(offer.Itineraries) < 2 {
			continue
		}

		airline := ""
		if len(offer.ValidatingAirlineCodes) > 0 {
			airline = offer.ValidatingAirlineCodes[0]
		}

		flights = append(flights, domain.FlightOffer{
			Price: domain.FlightPrice{
				Total:    offer.Price.Total,
				Currency: "USD",
			},
			Outbound: toLeg(offer.Itineraries[0].Segments, offer.Itineraries[0].Duration, airline),
			Return:   toLeg(offer.Itineraries[1].Segments, offer.Itineraries[1].Duration, airline),
		})
	}

	total := res.Meta.Count
	if total == 0 {
		total = len(flights)
	}

	return &domain.FlightResults{
		Flights:     flights,
		TotalOffers: total,
	}
}

func toLeg(segments []wireSegment, duration, defaultAirline string) domain.FlightLeg {
	out := lo.Map(segments, func(seg wireSegment, _ int) domain.FlightSegment {
		airline := seg.CarrierCode
		if airline == "" {
			airline = defaultAirline
		}
		return domain.FlightSegment{
			Departure: domain.FlightStop{
				Airport:  seg.Departure.IataCode,
				Time:     seg.Departure.At,
				Terminal: seg.Departure.Terminal,
			},
			Arrival: domain.FlightStop{
				Airport:  seg.Arrival.IataCode,
				Time:     seg.Arrival.At,
				Terminal: seg.Arrival.Terminal,
			},
			Duration:     seg.Duration,
			Airline:      airline,
			FlightNumber: seg.Number,
		}
	})

	return domain.FlightLeg{
		Segments:      out,
		TotalDuration: duration,
		Stops:         len(out) - 1,
	}
}

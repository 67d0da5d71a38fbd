package domain

// Travel-data shapes returned by the external adapters. These carry
// JSON tags because the API layer serves them as-is.

type FlightStop struct {
	Airport  string `json:"airport"`
	Time     string `json:"time"`
	Terminal string `json:"terminal"`
}

type FlightSegment struct {
	Departure    FlightStop `json:"departure"`
	Arrival      FlightStop `json:"arrival"`
	Duration     string     `json:"duration"`
	Airline      string     `json:"airline"`
	FlightNumber string     `json:"flight_number"`
}

// FlightLeg keeps every connection of one direction of the journey.
type FlightLeg struct {
	Segments      []FlightSegment `json:"segments"`
	TotalDuration string          `json:"total_duration"`
	Stops         int             `json:"stops"`
}

type FlightPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type FlightOffer struct {
	Price    FlightPrice `json:"price"`
	Outbound FlightLeg   `json:"outbound"`
	Return   FlightLeg   `json:"return"`
}

// FlightResults is either a list of offers or an advisory message when
// the search window cannot be served (dates too far out, no offers).
type FlightResults struct {
	Flights     []FlightOffer `json:"flights,omitempty"`
	TotalOffers int           `json:"total_offers,omitempty"`
	Message     string        `json:"message,omitempty"`
	Suggestion  string        `json:"suggestion,omitempty"`
}

type DayWeather struct {
	AvgTempC   *float64 `json:"avg_temp_c"`
	Condition  string   `json:"condition"`
	MaxWindKPH *float64 `json:"max_wind_kph"`
	Humidity   *float64 `json:"humidity"`
}

// WeatherReport maps trip dates to conditions. Type is "forecast" for
// near trips and "historical" (same dates last year) for far ones.
type WeatherReport struct {
	City     string                `json:"city"`
	Type     string                `json:"type,omitempty"`
	Note     string                `json:"note,omitempty"`
	Forecast map[string]DayWeather `json:"forecast,omitempty"`
	Message  string                `json:"message,omitempty"`
}

type Place struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Categories []string `json:"categories"`
}

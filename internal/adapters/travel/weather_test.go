package travel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestTripWeatherForecastWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "14", r.URL.Query().Get("days"))

		days := ""
		for i := range 14 {
			if i > 0 {
				days += ","
			}
			date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02")
			days += fmt.Sprintf(`{"date":%q,"day":{"avgtemp_c":21.5,"maxwind_kph":12.0,"avghumidity":60,"condition":{"text":"Sunny"}}}`, date)
		}
		_, _ = w.Write([]byte(`{"forecast":{"forecastday":[` + days + `]}}`))
	}))
	defer server.Close()

	c := NewWeatherClient("key")
	c.baseURL = server.URL
	c.now = fixedNow

	// Trip starts in two days, ends past the forecast horizon.
	report, err := c.TripWeather(context.Background(), "Paris", "2025-06-03", "2025-06-20")
	require.NoError(t, err)

	assert.Equal(t, "forecast", report.Type)
	assert.Contains(t, report.Forecast, "2025-06-03")
	assert.Contains(t, report.Forecast, "2025-06-08", "end clamps to today+7, not the trip end")
	assert.NotContains(t, report.Forecast, "2025-06-09")
	assert.NotContains(t, report.Forecast, "2025-06-02")

	day := report.Forecast["2025-06-03"]
	require.NotNil(t, day.AvgTempC)
	assert.Equal(t, 21.5, *day.AvgTempC)
	assert.Equal(t, "Sunny", day.Condition)
}

func TestTripWeatherHorizonUsesLocalCalendarDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast.json", r.URL.Path)

		days := ""
		for i := range 14 {
			if i > 0 {
				days += ","
			}
			date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02")
			days += fmt.Sprintf(`{"date":%q,"day":{"avgtemp_c":18.0,"maxwind_kph":10.0,"avghumidity":70,"condition":{"text":"Cloudy"}}}`, date)
		}
		_, _ = w.Write([]byte(`{"forecast":{"forecastday":[` + days + `]}}`))
	}))
	defer server.Close()

	c := NewWeatherClient("key")
	c.baseURL = server.URL
	// Early morning of June 2 in UTC+10, which is still June 1 in UTC.
	// The cutoff counts from the wall-clock date.
	c.now = func() time.Time {
		return time.Date(2025, 6, 2, 5, 0, 0, 0, time.FixedZone("AEST", 10*3600))
	}

	// June 9 is exactly seven days from the local date, so this is
	// still a forecast, not a historical lookup.
	report, err := c.TripWeather(context.Background(), "Sydney", "2025-06-09", "2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, "forecast", report.Type)
	assert.Contains(t, report.Forecast, "2025-06-09")
}

func TestTripWeatherHistoricalFallback(t *testing.T) {
	var requestedDates []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/history.json", r.URL.Path)
		dt := r.URL.Query().Get("dt")
		requestedDates = append(requestedDates, dt)
		_, _ = w.Write([]byte(fmt.Sprintf(
			`{"forecast":{"forecastday":[{"date":%q,"day":{"avgtemp_c":28.0,"maxwind_kph":9.0,"avghumidity":55,"condition":{"text":"Clear"}}}]}}`, dt)))
	}))
	defer server.Close()

	c := NewWeatherClient("key")
	c.baseURL = server.URL
	c.now = fixedNow

	// Trip is two months out: same dates last year.
	report, err := c.TripWeather(context.Background(), "Rome", "2025-08-01", "2025-08-03")
	require.NoError(t, err)

	assert.Equal(t, "historical", report.Type)
	assert.NotEmpty(t, report.Note)
	assert.Equal(t, []string{"2024-08-01", "2024-08-02", "2024-08-03"}, requestedDates)
	assert.Len(t, report.Forecast, 3)
	assert.Equal(t, "Clear", report.Forecast["2024-08-02"].Condition)
}

func TestTripWeatherDegradesToAdvisory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewWeatherClient("key")
	c.baseURL = server.URL
	c.now = fixedNow

	report, err := c.TripWeather(context.Background(), "Paris", "2025-06-03", "2025-06-05")
	require.NoError(t, err)
	assert.Equal(t, "Paris", report.City)
	assert.NotEmpty(t, report.Message)
	assert.Empty(t, report.Forecast)
}

func TestTripWeatherInvalidDates(t *testing.T) {
	c := NewWeatherClient("key")
	_, err := c.TripWeather(context.Background(), "Paris", "June 3", "2025-06-05")
	assert.Error(t, err)
}

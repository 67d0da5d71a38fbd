package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/smoralesv/itinera/internal/domain"
	"github.com/smoralesv/itinera/internal/observability"
)

const defaultWeatherBaseURL = "http://api.weatherapi.com/v1"

// forecastHorizon is how far ahead weatherapi.com serves real
// forecasts; anything farther falls back to last year's weather.
const forecastHorizon = 7 * 24 * time.Hour

// WeatherClient implements domain.WeatherProvider on weatherapi.com.
// Trips starting within a week get the forecast, clamped to the
// horizon; farther trips get the same dates from last year as a
// reference.
type WeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		apiKey:     apiKey,
		baseURL:    defaultWeatherBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (c *WeatherClient) TripWeather(ctx context.Context, city, startDate, endDate string) (*domain.WeatherReport, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	// Take the wall-clock calendar date, then compare in UTC like the
	// parsed trip dates. Truncate would round to UTC day boundaries and
	// shift the cutoff for non-UTC clocks.
	y, m, d := c.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var report *domain.WeatherReport
	if start.Sub(today) <= forecastHorizon {
		horizon := today.Add(forecastHorizon)
		if end.After(horizon) {
			end = horizon
		}
		report, err = c.fetchForecast(ctx, city, start, end)
	} else {
		report, err = c.fetchHistorical(ctx, city, start, end)
	}

	if err != nil {
		// The original behavior: weather trouble degrades to an
		// advisory payload instead of failing the whole request.
		observability.WithComponent("weather").Error("weather lookup failed", "city", city, "error", err)
		return &domain.WeatherReport{
			City:    city,
			Message: "Weather forecast is only available up to 7 days ahead. Please check again closer to your trip.",
		}, nil
	}
	return report, nil
}

type weatherAPIResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC    *float64 `json:"avgtemp_c"`
				MaxWindKPH  *float64 `json:"maxwind_kph"`
				AvgHumidity *float64 `json:"avghumidity"`
				Condition   struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (c *WeatherClient) fetchForecast(ctx context.Context, city string, start, end time.Time) (*domain.WeatherReport, error) {
	params := url.Values{
		"key":    {c.apiKey},
		"q":      {city},
		"days":   {"14"},
		"aqi":    {"no"},
		"alerts": {"no"},
	}

	var body weatherAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/forecast.json?"+params.Encode(), &body); err != nil {
		return nil, err
	}

	days := make(map[string]domain.DayWeather)
	for _, d := range body.Forecast.ForecastDay {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		days[d.Date] = domain.DayWeather{
			AvgTempC:   d.Day.AvgTempC,
			Condition:  d.Day.Condition.Text,
			MaxWindKPH: d.Day.MaxWindKPH,
			Humidity:   d.Day.AvgHumidity,
		}
	}

	return &domain.WeatherReport{
		City:     city,
		Type:     "forecast",
		Forecast: days,
	}, nil
}

func (c *WeatherClient) fetchHistorical(ctx context.Context, city string, start, end time.Time) (*domain.WeatherReport, error) {
	historicStart := start.AddDate(-1, 0, 0)
	historicEnd := end.AddDate(-1, 0, 0)

	days := make(map[string]domain.DayWeather)
	for d := historicStart; !d.After(historicEnd); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")

		params := url.Values{
			"key": {c.apiKey},
			"q":   {city},
			"dt":  {date},
		}

		var body weatherAPIResponse
		if err := c.getJSON(ctx, c.baseURL+"/history.json?"+params.Encode(), &body); err != nil ||
			len(body.Forecast.ForecastDay) == 0 {
			days[date] = domain.DayWeather{Condition: "No data"}
			continue
		}

		day := body.Forecast.ForecastDay[0].Day
		days[date] = domain.DayWeather{
			AvgTempC:   day.AvgTempC,
			Condition:  day.Condition.Text,
			MaxWindKPH: day.MaxWindKPH,
			Humidity:   day.AvgHumidity,
		}
	}

	return &domain.WeatherReport{
		City:     city,
		Type:     "historical",
		Note:     "Historical weather from the same time last year (for reference)",
		Forecast: days,
	}, nil
}

func (c *WeatherClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weatherapi request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("weatherapi: status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding weatherapi response: %w", err)
	}
	return nil
}

package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/smoralesv/itinera/internal/domain"
)

const defaultFoursquareBaseURL = "https://api.foursquare.com/v3"

// FoursquareClient implements domain.PlacesProvider using the
// Foursquare places search API.
type FoursquareClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFoursquareClient(apiKey string) *FoursquareClient {
	return &FoursquareClient{
		apiKey:     apiKey,
		baseURL:    defaultFoursquareBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type fsqPlace struct {
	Name     string `json:"name"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Categories []fsqCategory `json:"categories"`
}

type fsqCategory struct {
	Name string `json:"name"`
}

func (c *FoursquareClient) Search(ctx context.Context, city, category string, limit int) ([]domain.Place, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{
		"query": {category},
		"near":  {city},
		"limit": {strconv.Itoa(limit)},
		"sort":  {"RELEVANCE"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foursquare search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("foursquare search: status %d", res.StatusCode)
	}

	var body struct {
		Results []fsqPlace `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding foursquare response: %w", err)
	}

	places := lo.Map(body.Results, func(p fsqPlace, _ int) domain.Place {
		address := p.Location.FormattedAddress
		if address == "" {
			address = "N/A"
		}
		return domain.Place{
			Name:    p.Name,
			Address: address,
			Categories: lo.Map(p.Categories, func(c fsqCategory, _ int) string {
				return c.Name
			}),
		}
	})

	return places, nil
}

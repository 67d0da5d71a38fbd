package travel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacesSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/places/search", r.URL.Path)
		assert.Equal(t, "fsq-key", r.Header.Get("Authorization"))
		assert.Equal(t, "attractions", r.URL.Query().Get("query"))
		assert.Equal(t, "Washington DC", r.URL.Query().Get("near"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"results":[
			{"name":"National Mall",
			 "location":{"formatted_address":"Washington, DC 20565"},
			 "categories":[{"name":"Park"},{"name":"Monument"}]},
			{"name":"Hidden Gem","location":{},"categories":[]}
		]}`))
	}))
	defer server.Close()

	c := NewFoursquareClient("fsq-key")
	c.baseURL = server.URL

	places, err := c.Search(context.Background(), "Washington DC", "attractions", 5)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "National Mall", places[0].Name)
	assert.Equal(t, []string{"Park", "Monument"}, places[0].Categories)
	assert.Equal(t, "N/A", places[1].Address, "missing address falls back to N/A")
}

func TestPlacesSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewFoursquareClient("bad-key")
	c.baseURL = server.URL

	_, err := c.Search(context.Background(), "Paris", "restaurants", 5)
	assert.Error(t, err)
}

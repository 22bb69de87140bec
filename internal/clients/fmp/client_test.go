package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPricesBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/AAPL,MSFT,GOOGL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(`[
			{"symbol":"AAPL","price":231.5},
			{"symbol":"MSFT","price":512.25}
		]`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	prices, err := c.GetPrices(context.Background(), []string{"AAPL", "MSFT", "GOOGL"})
	require.NoError(t, err)

	assert.Equal(t, 231.5, prices["AAPL"])
	assert.Equal(t, 512.25, prices["MSFT"])
	assert.Equal(t, PlaceholderPrice, prices["GOOGL"], "symbols missing from the response get the placeholder")
}

func TestGetPricesWithoutKeyUsesMocks(t *testing.T) {
	c := NewClient("")
	prices, err := c.GetPrices(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	for sym, price := range prices {
		assert.GreaterOrEqual(t, price, 100.0, sym)
		assert.Less(t, price, 600.0, sym)
	}

	again, err := c.GetPrices(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, prices, again, "mock prices are deterministic per symbol")
}

func TestGetPricesDegradesOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	prices, err := c.GetPrices(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err, "upstream failures degrade to placeholders, not errors")

	assert.Equal(t, map[string]float64{"AAPL": PlaceholderPrice, "MSFT": PlaceholderPrice}, prices)
}

func TestGetPricesEmptySymbols(t *testing.T) {
	c := NewClient("test-key")
	prices, err := c.GetPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestMockPricesRange(t *testing.T) {
	prices := MockPrices([]string{"AAPL", "TSLA", "NVDA", "GLD", "TLT"})
	require.Len(t, prices, 5)
	for sym, price := range prices {
		assert.GreaterOrEqual(t, price, 100.0, sym)
		assert.Less(t, price, 600.0, sym)
		assert.Equal(t, price, MockPrices([]string{sym})[sym])
	}
}

func TestHistoricalReversesToOldestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical-price-full/AAPL", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("timeseries"))
		w.Write([]byte(`{
			"symbol": "AAPL",
			"historical": [
				{"date":"2026-01-15","close":230.0},
				{"date":"2026-01-14","close":228.5},
				{"date":"2026-01-13","close":227.0}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	closes, err := c.Historical(context.Background(), "AAPL", 3)
	require.NoError(t, err)

	assert.Equal(t, []float64{227.0, 228.5, 230.0}, closes)
}

func TestHistoricalRequiresKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Historical(context.Background(), "AAPL", 30)
	assert.Error(t, err)
}

func TestHistoricalEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"ZZZZ","historical":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Historical(context.Background(), "ZZZZ", 30)
	assert.Error(t, err)
}

func TestChange24h(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/AAPL", r.URL.Path)
		w.Write([]byte(`[{"symbol":"AAPL","price":231.5,"changesPercentage":-1.37}]`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	change, ok := c.Change24h(context.Background(), "AAPL")
	require.True(t, ok)
	assert.InDelta(t, -1.37, change, 1e-9)
}

func TestChange24hWithoutKey(t *testing.T) {
	c := NewClient("")
	_, ok := c.Change24h(context.Background(), "AAPL")
	assert.False(t, ok)
}

func TestChange24hUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, ok := c.Change24h(context.Background(), "AAPL")
	assert.False(t, ok)
}

package riskapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePostsPortfolio(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"metrics": map[string]interface{}{"annualized_volatility": 0.22},
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	result, err := c.Analyze(context.Background(), []string{"AAPL", "MSFT"}, []float64{0.6, 0.4}, "")
	require.NoError(t, err)

	assert.Equal(t, "/analyze", gotPath)
	assert.Equal(t, []interface{}{"AAPL", "MSFT"}, gotBody["symbols"])
	assert.Equal(t, "1year", gotBody["period"])
	assert.Equal(t, true, gotBody["use_real_data"])
	assert.Equal(t, "success", result["status"])
}

func TestPostReturnsAPIErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "portfolio too small", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Optimize(context.Background(), []string{"AAPL"}, "", "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "/optimize", apiErr.Endpoint)
}

func TestPostTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.Correlations(context.Background(), []string{"AAPL"}, "1year")
	require.Error(t, err)

	budget, ok := IsTimeout(err)
	require.True(t, ok, "deadline failures must surface as TimeoutError, got %v", err)
	assert.Equal(t, 50*time.Millisecond, budget)
}

func TestHedgeOpportunitiesDefaultsEqualWeights(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.HedgeOpportunities(context.Background(), []string{"AAPL", "MSFT", "GOOGL", "NVDA"}, nil, "", 0, nil)
	require.NoError(t, err)

	weights, ok := gotBody["weights"].([]interface{})
	require.True(t, ok)
	require.Len(t, weights, 4)
	assert.InDelta(t, 0.25, weights[0].(float64), 1e-9)
	assert.Equal(t, float64(5), gotBody["top_n"])
}

func TestHedgeCandidatesFallsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	result, err := c.HedgeCandidates(context.Background())
	require.NoError(t, err, "candidate fetch degrades to the built-in universe instead of failing")

	assert.Contains(t, result, "error")
	universe, ok := result["hedge_universe"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"TLT", "BND", "AGG"}, universe["bonds"])
}

func TestHedgeCandidatesPassesThroughSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hedging/default-candidates", r.URL.Path)
		w.Write([]byte(`{"hedge_universe":{"bonds":["TLT"]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	result, err := c.HedgeCandidates(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, result, "error")
}

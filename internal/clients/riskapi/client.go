// Package riskapi provides a client for the remote risk analytics API.
//
// Every analytics operation is a JSON POST returning an untyped payload;
// the hedging endpoints run long server-side computations and carry their
// own per-call timeouts.
package riskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"riskpilot/internal/common"
	"riskpilot/internal/models"
)

const (
	DefaultBaseURL   = "https://risk-analysis-api.onrender.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// Hedging endpoints evaluate many candidates server-side and need
	// longer deadlines than the default analytics calls.
	TimeoutHedgeOpportunities = 60 * time.Second
	TimeoutHedgeEvaluate      = 30 * time.Second
	TimeoutHedgeCompare       = 60 * time.Second
	TimeoutHedgeAllocation    = 45 * time.Second
	TimeoutHedgeCandidates    = 10 * time.Second
)

// Client talks to the risk analytics backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	timeout    time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the default per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Test hook.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new risk analytics client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
		timeout:    DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-2xx response from the analytics backend
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("risk API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// TimeoutError marks a request that exceeded its deadline. Callers surface
// the timeout budget in user-facing messages.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("risk API timeout: %s exceeded %s", e.Endpoint, e.Timeout)
}

// IsTimeout reports whether err is a deadline failure and returns the budget
// that was exceeded.
func IsTimeout(err error) (time.Duration, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te.Timeout, true
	}
	return 0, false
}

// post performs a rate-limited JSON POST with a per-call deadline.
func (c *Client) post(ctx context.Context, endpoint string, body interface{}, timeout time.Duration) (models.Payload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Dur("timeout", timeout).Msg("Risk API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Endpoint: endpoint, Timeout: timeout}
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(raw),
			Endpoint:   endpoint,
		}
	}

	var result models.Payload
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}

// Analyze runs the comprehensive risk analysis for a portfolio.
func (c *Client) Analyze(ctx context.Context, symbols []string, weights []float64, period string) (models.Payload, error) {
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/analyze", map[string]interface{}{
		"symbols":       symbols,
		"weights":       weights,
		"period":        period,
		"use_real_data": true,
	}, 0)
}

// RiskAttribution decomposes portfolio risk into systematic and
// idiosyncratic components.
func (c *Client) RiskAttribution(ctx context.Context, symbols []string, weights []float64, period string) (models.Payload, error) {
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/risk-attribution", map[string]interface{}{
		"symbols": symbols,
		"weights": weights,
		"period":  period,
	}, 0)
}

// Optimize runs a portfolio optimization with the given method
// (max_sharpe, min_volatility, risk_parity).
func (c *Client) Optimize(ctx context.Context, symbols []string, method, period string) (models.Payload, error) {
	if method == "" {
		method = "max_sharpe"
	}
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/optimize", map[string]interface{}{
		"symbols": symbols,
		"method":  method,
		"period":  period,
	}, 0)
}

// Correlations returns the pairwise correlation matrix and clustering.
func (c *Client) Correlations(ctx context.Context, symbols []string, period string) (models.Payload, error) {
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/correlations", map[string]interface{}{
		"symbols":       symbols,
		"period":        period,
		"use_real_data": true,
	}, 0)
}

// StressTest replays historical crisis scenarios against the portfolio.
// A nil scenarios map lets the backend use its default scenario set.
func (c *Client) StressTest(ctx context.Context, symbols []string, weights []float64, scenarios map[string]interface{}) (models.Payload, error) {
	return c.post(ctx, "/stress-test", map[string]interface{}{
		"symbols":          symbols,
		"weights":          weights,
		"stress_scenarios": scenarios,
		"period":           "1year",
		"use_real_data":    true,
	}, 0)
}

// AnalyzeBiases runs the behavioral bias analysis over the conversation so far.
func (c *Client) AnalyzeBiases(ctx context.Context, symbols []string, history []map[string]string) (models.Payload, error) {
	if history == nil {
		history = []map[string]string{}
	}
	return c.post(ctx, "/analyze-biases", map[string]interface{}{
		"symbols":              symbols,
		"conversation_history": history,
	}, 0)
}

// HedgeOpportunities finds the top hedge candidates for a portfolio. Long
// running; the backend evaluates every candidate's impact.
func (c *Client) HedgeOpportunities(ctx context.Context, symbols []string, weights []float64, period string, topN int, candidates []string) (models.Payload, error) {
	if weights == nil {
		weights = equalWeights(len(symbols))
	}
	if period == "" {
		period = "1year"
	}
	if topN <= 0 {
		topN = 5
	}
	return c.post(ctx, "/hedging/analyze-opportunities", map[string]interface{}{
		"symbols":          symbols,
		"weights":          weights,
		"period":           period,
		"top_n":            topN,
		"hedge_candidates": candidates,
	}, TimeoutHedgeOpportunities)
}

// EvaluateHedge measures the before/after impact of adding hedgeSymbol at
// hedgeWeight to the current portfolio.
func (c *Client) EvaluateHedge(ctx context.Context, symbols []string, weights []float64, hedgeSymbol string, hedgeWeight float64, period string) (models.Payload, error) {
	if hedgeWeight <= 0 {
		hedgeWeight = 0.10
	}
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/hedging/evaluate-hedge", map[string]interface{}{
		"current_symbols": symbols,
		"current_weights": weights,
		"hedge_symbol":    hedgeSymbol,
		"hedge_weight":    hedgeWeight,
		"period":          period,
	}, TimeoutHedgeEvaluate)
}

// CompareHedges evaluates several hedge candidates side by side.
func (c *Client) CompareHedges(ctx context.Context, symbols []string, weights []float64, candidates []string, hedgeWeight float64, period string) (models.Payload, error) {
	if hedgeWeight <= 0 {
		hedgeWeight = 0.10
	}
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/hedging/compare-hedges", map[string]interface{}{
		"current_symbols":  symbols,
		"current_weights":  weights,
		"hedge_candidates": candidates,
		"hedge_weight":     hedgeWeight,
		"period":           period,
	}, TimeoutHedgeCompare)
}

// OptimalHedgeAllocation searches for the best weight to give a hedge asset
// under the chosen objective (min_cvar, min_volatility, max_sharpe).
func (c *Client) OptimalHedgeAllocation(ctx context.Context, symbols []string, weights []float64, hedgeSymbol, objective, period string) (models.Payload, error) {
	if objective == "" {
		objective = "min_cvar"
	}
	if period == "" {
		period = "1year"
	}
	return c.post(ctx, "/hedging/optimal-allocation", map[string]interface{}{
		"current_symbols": symbols,
		"current_weights": weights,
		"hedge_symbol":    hedgeSymbol,
		"objective":       objective,
		"period":          period,
	}, TimeoutHedgeAllocation)
}

// HedgeCandidates fetches the default hedge candidate universe. On any
// failure the built-in universe is returned alongside the error string so
// the hedging views always have candidates to offer.
func (c *Client) HedgeCandidates(ctx context.Context) (models.Payload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return fallbackHedgeUniverse(err), nil
	}

	ctx, cancel := context.WithTimeout(ctx, TimeoutHedgeCandidates)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hedging/default-candidates", nil)
	if err != nil {
		return fallbackHedgeUniverse(err), nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Hedge candidates fetch failed, using built-in universe")
		return fallbackHedgeUniverse(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(raw), Endpoint: "/hedging/default-candidates"}
		c.logger.Warn().Err(apiErr).Msg("Hedge candidates fetch failed, using built-in universe")
		return fallbackHedgeUniverse(apiErr), nil
	}

	var result models.Payload
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fallbackHedgeUniverse(err), nil
	}
	return result, nil
}

func fallbackHedgeUniverse(cause error) models.Payload {
	return models.Payload{
		"error": cause.Error(),
		"hedge_universe": map[string]interface{}{
			"bonds":            []interface{}{"TLT", "BND", "AGG"},
			"defensive_equity": []interface{}{"VYM", "USMV"},
			"alternatives":     []interface{}{"GLD", "VNQ"},
			"low_volatility":   []interface{}{"SPLV"},
			"international":    []interface{}{"VEA", "VWO"},
		},
	}
}

func equalWeights(n int) []float64 {
	if n == 0 {
		return nil
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

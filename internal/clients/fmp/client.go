// Package fmp provides a client for the Financial Modeling Prep quote API.
//
// Prices are fetched in a single batch request. Without an API key, or when
// the upstream call fails, deterministic mock prices keep the valuation
// views rendering.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"riskpilot/internal/common"
)

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	// PlaceholderPrice backs symbols the upstream response omits.
	PlaceholderPrice = 100.0
)

// Quote is a single symbol's batch quote.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"changesPercentage"`
	DayLow           float64 `json:"dayLow"`
	DayHigh          float64 `json:"dayHigh"`
	Volume           int64   `json:"volume"`
	Name             string  `json:"name"`
}

// Client talks to the FMP quote endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new FMP client. An empty apiKey switches the client
// into mock-price mode.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasAPIKey reports whether real quotes are available.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// GetPrices fetches current prices for symbols in one batch call. Every
// requested symbol is present in the result: missing symbols get the
// placeholder price, and any upstream failure degrades to placeholders for
// the whole batch.
func (c *Client) GetPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	if c.apiKey == "" {
		c.logger.Debug().Msg("FMP API key not set, using mock prices")
		return MockPrices(symbols), nil
	}

	quotes, err := c.GetQuotes(ctx, symbols)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Price fetch failed, using placeholder prices")
		prices := make(map[string]float64, len(symbols))
		for _, s := range symbols {
			prices[s] = PlaceholderPrice
		}
		return prices, nil
	}

	prices := make(map[string]float64, len(symbols))
	for _, q := range quotes {
		if q.Symbol != "" && q.Price > 0 {
			prices[q.Symbol] = q.Price
		}
	}
	for _, s := range symbols {
		if _, ok := prices[s]; !ok {
			c.logger.Warn().Str("symbol", s).Msg("Price not found, using placeholder")
			prices[s] = PlaceholderPrice
		}
	}
	return prices, nil
}

// Change24h returns the 24-hour percentage change for a symbol. The second
// return is false without an API key or when no quote comes back; callers
// omit the figure rather than show a placeholder.
func (c *Client) Change24h(ctx context.Context, symbol string) (float64, bool) {
	if c.apiKey == "" {
		return 0, false
	}

	quotes, err := c.GetQuotes(ctx, []string{symbol})
	if err != nil || len(quotes) == 0 {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("24h change unavailable")
		return 0, false
	}
	return quotes[0].ChangePercentage, true
}

// GetQuotes fetches full batch quotes for symbols.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/quote/%s?%s", c.baseURL, strings.Join(symbols, ","), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Int("symbols", len(symbols)).Msg("FMP quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("FMP API error: status %d: %s", resp.StatusCode, string(raw))
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return quotes, nil
}

// historicalResponse is the envelope of /historical-price-full.
type historicalResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// Historical fetches up to days daily closes for one symbol, oldest first.
// FMP returns the series newest first; the order is reversed here so the
// caller can index chronologically.
func (c *Client) Historical(ctx context.Context, symbol string, days int) ([]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("historical prices require an API key")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("timeseries", fmt.Sprintf("%d", days))

	reqURL := fmt.Sprintf("%s/historical-price-full/%s?%s", c.baseURL, symbol, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Int("days", days).Msg("FMP historical request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("FMP API error: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed historicalResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Historical) == 0 {
		return nil, fmt.Errorf("no historical data for %s", symbol)
	}

	closes := make([]float64, len(parsed.Historical))
	for i, bar := range parsed.Historical {
		closes[len(closes)-1-i] = bar.Close
	}
	return closes, nil
}

// MockPrices returns deterministic per-symbol prices in the 100 to 599
// range. The same symbol always maps to the same price so valuations stay
// stable across refreshes.
func MockPrices(symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		prices[s] = 100.0 + float64(symbolHash(s)%500)
	}
	return prices
}

func symbolHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

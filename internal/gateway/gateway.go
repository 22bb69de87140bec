// Package gateway fronts the analytics and price clients with a TTL cache.
//
// Every accessor is cache-first: a fresh entry short-circuits the network,
// a miss calls upstream and stores whatever comes back, including failures.
// Failures are converted to error payloads so callers render a degraded
// state instead of branching on error types, and the cached error stops a
// struggling backend from being hammered on every render.
package gateway

import (
	"context"
	"fmt"
	"math"
	"time"

	"riskpilot/internal/cache"
	"riskpilot/internal/clients/riskapi"
	"riskpilot/internal/common"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

// Gateway implements interfaces.AnalyticsGateway.
type Gateway struct {
	risk   interfaces.RiskAPIClient
	prices interfaces.PriceClient
	cache  *cache.ResponseCache
	logger *common.Logger
}

// Option configures the gateway
type Option func(*Gateway)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithCache replaces the response cache. Test hook.
func WithCache(c *cache.ResponseCache) Option {
	return func(g *Gateway) {
		g.cache = c
	}
}

// New creates a gateway over the given clients.
func New(risk interfaces.RiskAPIClient, prices interfaces.PriceClient, opts ...Option) *Gateway {
	g := &Gateway{
		risk:   risk,
		prices: prices,
		cache:  cache.New(),
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

var _ interfaces.AnalyticsGateway = (*Gateway)(nil)

// fetch runs the cache-first protocol for one endpoint.
func (g *Gateway) fetch(key string, ttl time.Duration, call func() (models.Payload, error)) models.Payload {
	if cached, ok := g.cache.Get(key); ok {
		return cached
	}

	payload, err := call()
	if err != nil {
		payload = errorPayload(err)
		g.logger.Warn().Str("key", key).Str("error", fmt.Sprint(payload["error"])).Msg("Analytics call failed")
	}
	if payload == nil {
		payload = models.Payload{}
	}

	g.cache.Set(key, payload, ttl)
	return payload
}

// errorPayload converts a client error into the shared degraded-state shape.
func errorPayload(err error) models.Payload {
	if budget, ok := riskapi.IsTimeout(err); ok {
		return models.ErrorPayload(fmt.Sprintf("Request timed out after %d seconds. Please try again.", int(budget.Seconds())))
	}
	return models.ErrorPayload(fmt.Sprintf("Request failed: %s", err.Error()))
}

// RiskAnalysis returns the cached comprehensive risk analysis.
func (g *Gateway) RiskAnalysis(ctx context.Context, symbols []string, weights []float64, period string) models.Payload {
	if period == "" {
		period = "1year"
	}
	key := cache.Key("risk_analysis", symbols, weights, period)
	return g.fetch(key, common.FreshnessRiskAnalysis, func() (models.Payload, error) {
		return g.risk.Analyze(ctx, symbols, weights, period)
	})
}

// RiskAttribution returns the cached risk decomposition.
func (g *Gateway) RiskAttribution(ctx context.Context, symbols []string, weights []float64, period string) models.Payload {
	if period == "" {
		period = "1year"
	}
	key := cache.Key("risk_attribution", symbols, weights, period)
	return g.fetch(key, common.FreshnessRiskAnalysis, func() (models.Payload, error) {
		return g.risk.RiskAttribution(ctx, symbols, weights, period)
	})
}

// Optimize returns the cached optimization result.
func (g *Gateway) Optimize(ctx context.Context, symbols []string, method, period string) models.Payload {
	if method == "" {
		method = "max_sharpe"
	}
	if period == "" {
		period = "1year"
	}
	key := cache.Key("optimize", symbols, method, period)
	return g.fetch(key, common.FreshnessOptimization, func() (models.Payload, error) {
		return g.risk.Optimize(ctx, symbols, method, period)
	})
}

// Correlations returns the cached correlation matrix.
func (g *Gateway) Correlations(ctx context.Context, symbols []string, period string) models.Payload {
	if period == "" {
		period = "1year"
	}
	key := cache.Key("correlations", symbols, period)
	return g.fetch(key, common.FreshnessCorrelations, func() (models.Payload, error) {
		return g.risk.Correlations(ctx, symbols, period)
	})
}

// StressTest returns the cached stress test result. Custom scenario maps
// are keyed by size only, matching the behavioral history treatment.
func (g *Gateway) StressTest(ctx context.Context, symbols []string, weights []float64, scenarios map[string]interface{}) models.Payload {
	key := cache.Key("stress_test", symbols, weights, len(scenarios))
	return g.fetch(key, common.FreshnessStressTest, func() (models.Payload, error) {
		return g.risk.StressTest(ctx, symbols, weights, scenarios)
	})
}

// BehavioralBiases returns the cached behavioral analysis. The conversation
// history is part of the cache key only through its length; in practice a
// longer conversation should refresh the analysis.
func (g *Gateway) BehavioralBiases(ctx context.Context, symbols []string, history []map[string]string) models.Payload {
	key := cache.Key("behavioral_biases", symbols, len(history))
	return g.fetch(key, common.FreshnessBehavioral, func() (models.Payload, error) {
		return g.risk.AnalyzeBiases(ctx, symbols, history)
	})
}

// PortfolioHealth derives the 0-100 health score from the cached risk
// analysis. The score rewards low volatility, up to 100 points fading to
// zero at 50% volatility, plus a Sharpe bonus capped at 50.
func (g *Gateway) PortfolioHealth(ctx context.Context, symbols []string, weights []float64) *models.HealthReport {
	if len(symbols) == 0 {
		return &models.HealthReport{Score: 0, Status: models.HealthStatusNoData}
	}

	riskData := g.RiskAnalysis(ctx, symbols, weights, "1year")
	if models.IsErrorPayload(riskData) {
		return &models.HealthReport{Score: 50, Status: models.HealthStatusUnavailable}
	}

	metrics := models.MetricsObject(riskData)
	volatility := 0.25
	if v, ok := metrics["annualized_volatility"]; ok {
		if f, ok := models.ToFloat(v); ok {
			volatility = f
		}
	}
	sharpe := 0.0
	if v, ok := metrics["sharpe_ratio"]; ok {
		if f, ok := models.ToFloat(v); ok {
			sharpe = f
		}
	}

	volScore := math.Max(0, 100-volatility*200)
	sharpeScore := math.Min(50, sharpe*25)
	score := int(volScore + sharpeScore)

	status := models.HealthStatusRisk
	switch {
	case score >= 80:
		status = models.HealthStatusHealthy
	case score >= 60:
		status = models.HealthStatusCaution
	}

	return &models.HealthReport{
		Score:       score,
		Status:      status,
		Volatility:  volatility,
		SharpeRatio: sharpe,
	}
}

// HedgeOpportunities returns the cached hedge recommendations.
func (g *Gateway) HedgeOpportunities(ctx context.Context, symbols []string, weights []float64, period string, topN int, candidates []string) models.Payload {
	if topN <= 0 {
		topN = 5
	}
	if period == "" {
		period = "1year"
	}
	key := cache.Key("hedge_opportunities", symbols, weights, period, topN, candidates)
	return g.fetch(key, common.FreshnessHedging, func() (models.Payload, error) {
		return g.risk.HedgeOpportunities(ctx, symbols, weights, period, topN, candidates)
	})
}

// EvaluateHedge returns the cached single-hedge evaluation.
func (g *Gateway) EvaluateHedge(ctx context.Context, symbols []string, weights []float64, hedgeSymbol string, hedgeWeight float64, period string) models.Payload {
	if hedgeWeight <= 0 {
		hedgeWeight = 0.10
	}
	if period == "" {
		period = "1year"
	}
	key := cache.Key("hedge_evaluate", symbols, weights, hedgeSymbol, hedgeWeight, period)
	return g.fetch(key, common.FreshnessHedging, func() (models.Payload, error) {
		return g.risk.EvaluateHedge(ctx, symbols, weights, hedgeSymbol, hedgeWeight, period)
	})
}

// CompareHedges returns the cached hedge comparison.
func (g *Gateway) CompareHedges(ctx context.Context, symbols []string, weights []float64, candidates []string, hedgeWeight float64, period string) models.Payload {
	if hedgeWeight <= 0 {
		hedgeWeight = 0.10
	}
	if period == "" {
		period = "1year"
	}
	key := cache.Key("hedge_compare", symbols, weights, candidates, hedgeWeight, period)
	return g.fetch(key, common.FreshnessHedging, func() (models.Payload, error) {
		return g.risk.CompareHedges(ctx, symbols, weights, candidates, hedgeWeight, period)
	})
}

// OptimalHedgeAllocation returns the cached allocation search.
func (g *Gateway) OptimalHedgeAllocation(ctx context.Context, symbols []string, weights []float64, hedgeSymbol, objective, period string) models.Payload {
	if objective == "" {
		objective = "min_cvar"
	}
	if period == "" {
		period = "1year"
	}
	key := cache.Key("hedge_allocation", symbols, weights, hedgeSymbol, objective, period)
	return g.fetch(key, common.FreshnessHedging, func() (models.Payload, error) {
		return g.risk.OptimalHedgeAllocation(ctx, symbols, weights, hedgeSymbol, objective, period)
	})
}

// HedgeCandidates returns the cached hedge candidate universe.
func (g *Gateway) HedgeCandidates(ctx context.Context) models.Payload {
	key := cache.Key("hedge_candidates")
	return g.fetch(key, common.FreshnessCandidates, func() (models.Payload, error) {
		return g.risk.HedgeCandidates(ctx)
	})
}

// Prices returns cached current prices for symbols. Price failures degrade
// inside the client, so the result always covers every symbol.
func (g *Gateway) Prices(ctx context.Context, symbols []string) map[string]float64 {
	if len(symbols) == 0 {
		return map[string]float64{}
	}

	key := cache.Key("prices", symbols)
	payload := g.fetch(key, common.FreshnessPrices, func() (models.Payload, error) {
		prices, err := g.prices.GetPrices(ctx, symbols)
		if err != nil {
			return nil, err
		}
		p := models.Payload{}
		for sym, price := range prices {
			p[sym] = price
		}
		return p, nil
	})

	result := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if f, ok := models.ToFloat(payload[sym]); ok {
			result[sym] = f
		}
	}
	return result
}

// Change24h returns the cached 24-hour percentage change for one symbol.
// Missing quotes cache as degraded entries like every other endpoint, so a
// dead quote feed is retried once per price TTL rather than per render.
func (g *Gateway) Change24h(ctx context.Context, symbol string) (float64, bool) {
	if symbol == "" {
		return 0, false
	}

	key := cache.Key("change_24h", symbol)
	payload := g.fetch(key, common.FreshnessPrices, func() (models.Payload, error) {
		change, ok := g.prices.Change24h(ctx, symbol)
		if !ok {
			return nil, fmt.Errorf("no quote for %s", symbol)
		}
		return models.Payload{"change_pct": change}, nil
	})
	if models.IsErrorPayload(payload) {
		return 0, false
	}
	return models.ToFloat(payload["change_pct"])
}

// ClearCache drops every cached response.
func (g *Gateway) ClearCache() {
	g.cache.Clear()
	g.logger.Debug().Msg("Analytics cache cleared")
}

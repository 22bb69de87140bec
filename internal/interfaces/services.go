package interfaces

import (
	"context"

	"riskpilot/internal/models"
)

// AnalyticsGateway front-ends the risk analytics backend with a TTL cache.
// Payload-returning methods never return an error: failures come back as an
// error payload so every caller renders the same degraded state.
type AnalyticsGateway interface {
	// RiskAnalysis returns the cached comprehensive risk analysis
	RiskAnalysis(ctx context.Context, symbols []string, weights []float64, period string) models.Payload

	// RiskAttribution returns the cached risk decomposition
	RiskAttribution(ctx context.Context, symbols []string, weights []float64, period string) models.Payload

	// Optimize returns the cached optimization result
	Optimize(ctx context.Context, symbols []string, method, period string) models.Payload

	// Correlations returns the cached correlation matrix
	Correlations(ctx context.Context, symbols []string, period string) models.Payload

	// StressTest returns the cached stress test result. A nil scenarios map
	// uses the backend's default crisis set.
	StressTest(ctx context.Context, symbols []string, weights []float64, scenarios map[string]interface{}) models.Payload

	// BehavioralBiases returns the cached behavioral analysis
	BehavioralBiases(ctx context.Context, symbols []string, history []map[string]string) models.Payload

	// PortfolioHealth computes the 0-100 health score from risk metrics
	PortfolioHealth(ctx context.Context, symbols []string, weights []float64) *models.HealthReport

	// HedgeOpportunities returns the cached hedge recommendations
	HedgeOpportunities(ctx context.Context, symbols []string, weights []float64, period string, topN int, candidates []string) models.Payload

	// EvaluateHedge returns the cached single-hedge evaluation
	EvaluateHedge(ctx context.Context, symbols []string, weights []float64, hedgeSymbol string, hedgeWeight float64, period string) models.Payload

	// CompareHedges returns the cached hedge comparison
	CompareHedges(ctx context.Context, symbols []string, weights []float64, candidates []string, hedgeWeight float64, period string) models.Payload

	// OptimalHedgeAllocation returns the cached allocation search
	OptimalHedgeAllocation(ctx context.Context, symbols []string, weights []float64, hedgeSymbol, objective, period string) models.Payload

	// HedgeCandidates returns the cached hedge candidate universe
	HedgeCandidates(ctx context.Context) models.Payload

	// Prices returns cached current prices for symbols
	Prices(ctx context.Context, symbols []string) map[string]float64

	// Change24h returns a symbol's cached 24-hour percentage change;
	// false when no real quote is available
	Change24h(ctx context.Context, symbol string) (float64, bool)

	// ClearCache drops every cached response. Wired to manual refresh.
	ClearCache()
}

// ValuationService turns weights and prices into dollar holdings.
type ValuationService interface {
	// Valuate computes per-holding shares and values for an investment amount
	Valuate(ctx context.Context, symbols []string, weights []float64, investment float64) *models.PortfolioValuation
}

// InsightService derives plain-language observations from risk metrics.
type InsightService interface {
	// Generate returns at most five insights, highest priority first
	Generate(riskData models.Payload, symbols []string) []models.Insight
}

// CopilotService answers portfolio questions by keyword routing.
type CopilotService interface {
	// Ask routes a free-text question to the matching analytics summary
	Ask(ctx context.Context, message string, symbols []string, weights []float64) models.CopilotReply
}

// PerformanceService produces historical performance series and charts.
type PerformanceService interface {
	// Series returns a daily value series for the portfolio, real when
	// price history is available and synthetic otherwise
	Series(ctx context.Context, symbols []string, weights []float64, days int, investment float64) *models.PerformanceSeries

	// RenderChart draws the series as a PNG
	RenderChart(series *models.PerformanceSeries) ([]byte, error)
}

// ScenarioLibrary serves the static historical scenario database.
type ScenarioLibrary interface {
	// Names lists every scenario in display order
	Names() []string

	// Lookup finds a scenario by exact or fuzzy name match
	Lookup(name string) (*models.ScenarioDetail, bool)

	// EstimateImpact projects a scenario's loss onto a specific portfolio
	EstimateImpact(scenarioName string, symbols []string, weights []float64) *models.ScenarioImpact
}

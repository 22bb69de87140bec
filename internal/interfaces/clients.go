// Package interfaces defines service contracts for RiskPilot
package interfaces

import (
	"context"

	"riskpilot/internal/models"
)

// RiskAPIClient talks to the remote risk analytics backend. Methods return
// the backend's untyped JSON payload; typed extraction happens in models.
type RiskAPIClient interface {
	// Analyze runs the comprehensive risk analysis
	Analyze(ctx context.Context, symbols []string, weights []float64, period string) (models.Payload, error)

	// RiskAttribution decomposes risk into systematic and idiosyncratic parts
	RiskAttribution(ctx context.Context, symbols []string, weights []float64, period string) (models.Payload, error)

	// Optimize runs portfolio optimization with the given method
	Optimize(ctx context.Context, symbols []string, method, period string) (models.Payload, error)

	// Correlations returns the pairwise correlation matrix
	Correlations(ctx context.Context, symbols []string, period string) (models.Payload, error)

	// StressTest replays historical crisis scenarios
	StressTest(ctx context.Context, symbols []string, weights []float64, scenarios map[string]interface{}) (models.Payload, error)

	// AnalyzeBiases runs behavioral bias analysis over the conversation
	AnalyzeBiases(ctx context.Context, symbols []string, history []map[string]string) (models.Payload, error)

	// HedgeOpportunities finds top hedge candidates (long running)
	HedgeOpportunities(ctx context.Context, symbols []string, weights []float64, period string, topN int, candidates []string) (models.Payload, error)

	// EvaluateHedge measures the impact of adding one hedge
	EvaluateHedge(ctx context.Context, symbols []string, weights []float64, hedgeSymbol string, hedgeWeight float64, period string) (models.Payload, error)

	// CompareHedges evaluates several hedge candidates side by side
	CompareHedges(ctx context.Context, symbols []string, weights []float64, candidates []string, hedgeWeight float64, period string) (models.Payload, error)

	// OptimalHedgeAllocation searches for the best hedge weight
	OptimalHedgeAllocation(ctx context.Context, symbols []string, weights []float64, hedgeSymbol, objective, period string) (models.Payload, error)

	// HedgeCandidates fetches the default hedge candidate universe
	HedgeCandidates(ctx context.Context) (models.Payload, error)
}

// PriceClient fetches current and historical market prices.
type PriceClient interface {
	// GetPrices returns a price for every requested symbol
	GetPrices(ctx context.Context, symbols []string) (map[string]float64, error)

	// Change24h returns a symbol's 24-hour percentage change; false when
	// no real quote is available
	Change24h(ctx context.Context, symbol string) (float64, bool)

	// Historical returns up to days daily closes, oldest first
	Historical(ctx context.Context, symbol string, days int) ([]float64, error)

	// HasAPIKey reports whether real market data is available
	HasAPIKey() bool
}

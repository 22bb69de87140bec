// Package models defines data structures for riskpilot
package models

// HoldingValuation is one holding priced out against the total investment.
// Derived on demand, never stored.
type HoldingValuation struct {
	Symbol       string  `json:"symbol"`
	Weight       float64 `json:"weight"`
	Allocation   float64 `json:"allocation"`
	Price        float64 `json:"price"`
	Shares       float64 `json:"shares"`
	CurrentValue float64 `json:"current_value"`

	// Change24hPct is omitted when no real quote is available.
	Change24hPct *float64 `json:"change_24h_pct,omitempty"`
}

// PortfolioValuation aggregates holding valuations against the invested amount.
type PortfolioValuation struct {
	TotalValue      float64            `json:"total_value"`
	TotalInvestment float64            `json:"total_investment"`
	Holdings        []HoldingValuation `json:"holdings"`
	GainLoss        float64            `json:"gain_loss"`
	GainLossPct     float64            `json:"gain_loss_pct"`
	Prices          map[string]float64 `json:"prices,omitempty"`
	Error           string             `json:"error,omitempty"` // "No portfolio data" for an empty portfolio
}

// HealthReport is the locally derived portfolio health score.
type HealthReport struct {
	Score       int     `json:"score"`
	Status      string  `json:"status"`
	Volatility  float64 `json:"volatility,omitempty"`
	SharpeRatio float64 `json:"sharpe_ratio,omitempty"`
}

// Health status thresholds: healthy >= 80, caution >= 60, otherwise risk.
const (
	HealthStatusHealthy = "healthy"
	HealthStatusCaution = "caution"
	HealthStatusRisk    = "risk"

	// Degraded statuses for empty portfolios and failed analytics calls.
	HealthStatusNoData      = "No portfolio data"
	HealthStatusUnavailable = "Unable to calculate"
)

package models

import "time"

// PerformanceStats summarizes a performance series.
type PerformanceStats struct {
	TotalReturnPct       float64 `json:"total_return_pct"`
	BenchmarkReturnPct   float64 `json:"benchmark_return_pct"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	MaxDrawdownPct       float64 `json:"max_drawdown_pct"`
}

// PerformanceSeries is a daily portfolio value series indexed to the
// investment amount, with an SPY benchmark indexed the same way.
type PerformanceSeries struct {
	Symbols    []string         `json:"symbols"`
	Weights    []float64        `json:"weights"`
	Investment float64          `json:"investment"`
	Dates      []time.Time      `json:"dates"`
	Portfolio  []float64        `json:"portfolio"`
	Benchmark  []float64        `json:"benchmark"`
	Stats      PerformanceStats `json:"stats"`
}

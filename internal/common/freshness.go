// Package common provides shared utilities for riskpilot
package common

import "time"

// Freshness TTLs for cached analytics responses. Cheap price quotes expire
// quickly; the long-running hedge analyses are worth keeping for an hour.
const (
	FreshnessPrices       = 60 * time.Second
	FreshnessRiskAnalysis = 5 * time.Minute
	FreshnessStressTest   = 5 * time.Minute
	FreshnessBehavioral   = 5 * time.Minute
	FreshnessCorrelations = 10 * time.Minute
	FreshnessOptimization = 10 * time.Minute
	FreshnessHedging      = 1 * time.Hour
	FreshnessCandidates   = 1 * time.Hour
)

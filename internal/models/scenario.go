package models

// ScenarioDetail describes one historical market stress event.
type ScenarioDetail struct {
	Name             string             `json:"name"`
	Icon             string             `json:"icon"`
	Color            string             `json:"color"`
	DateRange        string             `json:"date_range"`
	Description      string             `json:"description"`
	WhatHappened     []string           `json:"what_happened"`
	ImpactSummary    string             `json:"impact_summary"`
	SP500Decline     float64            `json:"sp500_decline"`
	DurationMonths   int                `json:"duration_months"`
	RecoveryMonths   int                `json:"recovery_months"`
	PeakRecoveryDate string             `json:"peak_recovery_date"`
	SectorImpacts    map[string]float64 `json:"sector_impacts"`
	LessonsLearned   []string           `json:"lessons_learned"`
}

// ScenarioImpact projects a scenario onto a specific portfolio.
type ScenarioImpact struct {
	Scenario string `json:"scenario"`
	// PerSymbol maps each holding to its estimated fractional decline
	// (negative values are losses).
	PerSymbol map[string]float64 `json:"per_symbol"`
	// PortfolioDecline is the weight-averaged decline across holdings.
	PortfolioDecline float64 `json:"portfolio_decline"`
}

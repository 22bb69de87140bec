// Package scenarios is the static historical scenario library: detailed
// records of past market crises, fuzzy lookup by name, and a per-portfolio
// impact estimator that maps tickers to sector declines.
package scenarios

import (
	"strings"

	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

// Library implements interfaces.ScenarioLibrary over the built-in database.
type Library struct{}

// NewLibrary returns the scenario library.
func NewLibrary() *Library {
	return &Library{}
}

var _ interfaces.ScenarioLibrary = (*Library)(nil)

// scenarioOrder fixes the display order; map iteration would shuffle it.
var scenarioOrder = []string{
	"2008 Crisis",
	"COVID 2020",
	"Dot Com",
	"Correction",
	"Flash Crash",
	"Black Monday",
	"Asian Crisis",
	"Oil Shock",
}

// coreTerms are the shortcuts the fuzzy matcher recognizes beyond plain
// substring containment. Order matters when a query mentions several.
var coreTerms = []struct {
	term string
	key  string
}{
	{"covid", "COVID 2020"},
	{"2008", "2008 Crisis"},
	{"dot", "Dot Com"},
	{"correction", "Correction"},
	{"flash", "Flash Crash"},
	{"black", "Black Monday"},
	{"asian", "Asian Crisis"},
	{"oil", "Oil Shock"},
}

// Names lists every scenario in display order.
func (l *Library) Names() []string {
	names := make([]string, len(scenarioOrder))
	copy(names, scenarioOrder)
	return names
}

// Lookup finds a scenario by exact key, case-insensitive substring in
// either direction, or a core term like "covid". The boolean is false when
// the generic default detail is returned.
func (l *Library) Lookup(name string) (*models.ScenarioDetail, bool) {
	trimmed := strings.TrimSpace(name)

	if detail, ok := database[trimmed]; ok {
		d := detail
		return &d, true
	}

	lower := strings.ToLower(trimmed)
	for _, key := range scenarioOrder {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			d := database[key]
			return &d, true
		}
	}
	for _, ct := range coreTerms {
		if strings.Contains(lower, ct.term) {
			d := database[ct.key]
			return &d, true
		}
	}

	return &models.ScenarioDetail{
		Name:             name,
		Icon:             "📊",
		Color:            "#6b7280",
		DateRange:        "Unknown",
		Description:      "Historical market stress scenario",
		WhatHappened:     []string{"Market declined significantly"},
		ImpactSummary:    "Details not available",
		SP500Decline:     -0.20,
		DurationMonths:   3,
		RecoveryMonths:   6,
		PeakRecoveryDate: "Unknown",
		SectorImpacts:    map[string]float64{},
		LessonsLearned:   []string{"Diversification is important", "Stay invested long-term"},
	}, false
}

const (
	sectorDefault   = "All sectors equally affected"
	safeHavenFactor = 0.3
)

// tickerSectors maps the demo ticker universe to sectors for impact
// estimation. Unknown tickers fall back to the broad-market decline.
var tickerSectors = map[string]string{
	"AAPL": "Technology", "MSFT": "Technology", "GOOGL": "Technology",
	"GOOG": "Technology", "NVDA": "Technology", "META": "Technology",
	"TSLA": "Consumer Discretionary", "AMZN": "Consumer Discretionary",

	"JPM": "Financials", "BAC": "Financials", "GS": "Financials",
	"MS": "Financials", "WFC": "Financials",

	"JNJ": "Healthcare", "UNH": "Healthcare", "PFE": "Healthcare",
	"ABBV": "Healthcare", "TMO": "Healthcare",

	"WMT": "Consumer Staples", "PG": "Consumer Staples",
	"KO": "Consumer Staples", "PEP": "Consumer Staples",

	"XOM": "Energy", "CVX": "Energy", "COP": "Energy",

	"SPY": sectorDefault, "QQQ": "Technology",
	"VTI": sectorDefault, "VOO": sectorDefault,
	"TLT": "Bonds (Safe Haven)", "BND": "Bonds (Safe Haven)",
	"GLD": "Gold (Safe Haven)", "SLV": "Commodities",
}

// EstimateImpact projects the scenario's sector declines onto the
// portfolio. Safe havens (bonds, gold) take 30% of the broad-market
// decline; tickers without a matching sector impact take the full S&P 500
// decline.
func (l *Library) EstimateImpact(scenarioName string, symbols []string, weights []float64) *models.ScenarioImpact {
	detail, _ := l.Lookup(scenarioName)

	impact := &models.ScenarioImpact{
		Scenario:  detail.Name,
		PerSymbol: make(map[string]float64, len(symbols)),
	}

	for i, symbol := range symbols {
		sector, ok := tickerSectors[symbol]
		if !ok {
			sector = sectorDefault
		}

		var decline float64
		switch {
		case strings.Contains(sector, "Safe Haven") || strings.Contains(sector, "Bonds"):
			decline = detail.SP500Decline * safeHavenFactor
		default:
			if d, ok := detail.SectorImpacts[sector]; ok {
				decline = d
			} else {
				decline = detail.SP500Decline
			}
		}

		impact.PerSymbol[symbol] = decline
		if i < len(weights) {
			impact.PortfolioDecline += weights[i] * decline
		}
	}

	return impact
}

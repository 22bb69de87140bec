package scenarios

import "riskpilot/internal/models"

var database = map[string]models.ScenarioDetail{
	"2008 Crisis": {
		Name:        "2008 Financial Crisis",
		Icon:        "🔥",
		Color:       "#ef4444",
		DateRange:   "September 2008 - March 2009",
		Description: "The worst financial crisis since the Great Depression, triggered by the collapse of the U.S. housing market and widespread mortgage defaults.",
		WhatHappened: []string{
			"Lehman Brothers collapsed on September 15, 2008",
			"Housing bubble burst after years of subprime lending",
			"Credit markets froze globally",
			"Major banks required government bailouts",
			"Unemployment reached 10% in the U.S.",
			"Global stock markets crashed simultaneously",
		},
		ImpactSummary:    "Markets lost $16.4 trillion in value globally. The S&P 500 fell 57% from peak to trough.",
		SP500Decline:     -0.57,
		DurationMonths:   6,
		RecoveryMonths:   18,
		PeakRecoveryDate: "March 2013",
		SectorImpacts: map[string]float64{
			"Financials":             -0.65,
			"Technology":             -0.45,
			"Consumer Discretionary": -0.52,
			"Industrials":            -0.58,
			"Energy":                 -0.62,
			"Healthcare":             -0.35,
			"Utilities":              -0.28,
			"Consumer Staples":       -0.22,
		},
		LessonsLearned: []string{
			"Diversification matters: Bonds and defensive stocks held up better",
			"Leverage amplifies losses during crashes",
			"Financial sector was hardest hit due to direct exposure",
			"Recovery took 4+ years to reach previous peaks",
			"Government intervention prevented complete collapse",
		},
	},

	"COVID 2020": {
		Name:        "COVID-19 Pandemic Crash",
		Icon:        "🌊",
		Color:       "#f97316",
		DateRange:   "February - March 2020",
		Description: "Fastest bear market in history, triggered by global pandemic lockdowns and economic uncertainty.",
		WhatHappened: []string{
			"COVID-19 pandemic declared on March 11, 2020",
			"Global lockdowns shut down economies",
			"Oil prices briefly went negative",
			"S&P 500 fell 34% in just 33 days",
			"Unprecedented monetary and fiscal stimulus",
			"Fastest recovery in stock market history",
		},
		ImpactSummary:    "Despite the severity, markets recovered to new highs within 6 months due to massive stimulus.",
		SP500Decline:     -0.34,
		DurationMonths:   1,
		RecoveryMonths:   5,
		PeakRecoveryDate: "August 2020",
		SectorImpacts: map[string]float64{
			"Energy":                 -0.55,
			"Financials":             -0.42,
			"Industrials":            -0.38,
			"Consumer Discretionary": -0.35,
			"Technology":             -0.22,
			"Healthcare":             -0.18,
			"Consumer Staples":       -0.15,
			"Utilities":              -0.20,
		},
		LessonsLearned: []string{
			"Tech stocks proved resilient during pandemic",
			"Speed matters: Fastest crash but fastest recovery",
			"Government stimulus can rapidly reverse declines",
			"Stay-at-home stocks (tech, e-commerce) thrived",
			"Traditional defensive plays (bonds, gold) worked as hedges",
		},
	},

	"Dot Com": {
		Name:        "Dot-Com Bubble Burst",
		Icon:        "💻",
		Color:       "#f59e0b",
		DateRange:   "March 2000 - October 2002",
		Description: "The collapse of overvalued internet and technology stocks after years of speculation.",
		WhatHappened: []string{
			"NASDAQ peaked at 5,048 in March 2000",
			"Tech stocks crashed as profits failed to materialize",
			"9/11 attacks in 2001 accelerated the decline",
			"Accounting scandals (Enron, WorldCom) eroded trust",
			"NASDAQ fell 78% from peak to trough",
			"Many dot-com companies went bankrupt",
		},
		ImpactSummary:    "Technology sector lost $5 trillion in value. It took 15 years for NASDAQ to recover to 2000 peaks.",
		SP500Decline:     -0.49,
		DurationMonths:   30,
		RecoveryMonths:   60,
		PeakRecoveryDate: "May 2007",
		SectorImpacts: map[string]float64{
			"Technology":             -0.78,
			"Telecommunications":     -0.72,
			"Consumer Discretionary": -0.42,
			"Industrials":            -0.38,
			"Financials":             -0.35,
			"Energy":                 -0.28,
			"Healthcare":             -0.18,
			"Utilities":              -0.12,
		},
		LessonsLearned: []string{
			"Valuations matter: Unprofitable growth companies crashed hardest",
			"Diversification across sectors is crucial",
			"Recovery from sector-specific crashes takes much longer",
			"Not all tech companies survived (pets.com, WebVan, etc.)",
			"Traditional value stocks outperformed during recovery",
		},
	},

	"Correction": {
		Name:        "Market Correction",
		Icon:        "⚡",
		Color:       "#fbbf24",
		DateRange:   "Typical: 2-4 months",
		Description: "A standard 10-20% market decline that occurs regularly, roughly every 1-2 years on average.",
		WhatHappened: []string{
			"Normal market volatility event",
			"Usually triggered by Fed policy, geopolitical events, or profit-taking",
			"S&P 500 declines 10-20% from recent highs",
			"Lasts 2-4 months on average",
			"Part of healthy market cycles",
			"Recovery typically within 4-6 months",
		},
		ImpactSummary:    "Corrections are normal and healthy. The market has experienced 36 corrections of 10%+ since 1950.",
		SP500Decline:     -0.15,
		DurationMonths:   3,
		RecoveryMonths:   4,
		PeakRecoveryDate: "Within 6 months",
		SectorImpacts: map[string]float64{
			"Technology":             -0.18,
			"Consumer Discretionary": -0.16,
			"Financials":             -0.15,
			"Industrials":            -0.14,
			"Energy":                 -0.14,
			"Healthcare":             -0.12,
			"Consumer Staples":       -0.08,
			"Utilities":              -0.07,
		},
		LessonsLearned: []string{
			"Corrections are normal and should be expected",
			"Don't panic-sell during routine corrections",
			"Often good buying opportunities for long-term investors",
			"Defensive sectors decline less during corrections",
			"Usually recover faster than bear markets",
		},
	},

	"Flash Crash": {
		Name:        "Flash Crash",
		Icon:        "💨",
		Color:       "#84cc16",
		DateRange:   "Single Day Event",
		Description: "Rapid, deep market decline that recovers within hours or days, often driven by algorithmic trading.",
		WhatHappened: []string{
			"May 6, 2010: Dow fell 1,000 points in minutes",
			"Triggered by algorithmic trading errors",
			"Market recovered most losses same day",
			"Exposed vulnerabilities in electronic trading",
			"Circuit breakers implemented after",
			"Similar events: Feb 2018, March 2020",
		},
		ImpactSummary:    "Short-lived but severe intraday volatility. Usually recovers within 1-2 days.",
		SP500Decline:     -0.09,
		DurationMonths:   0,
		RecoveryMonths:   0,
		PeakRecoveryDate: "Same day",
		SectorImpacts: map[string]float64{
			"All sectors equally affected": -0.09,
		},
		LessonsLearned: []string{
			"Intraday volatility can be extreme",
			"Don't panic during flash crashes",
			"Limit orders can be dangerous during volatile periods",
			"Markets have circuit breakers to prevent cascades",
			"Usually technical, not fundamental issues",
		},
	},

	"Black Monday": {
		Name:        "Black Monday 1987",
		Icon:        "📉",
		Color:       "#dc2626",
		DateRange:   "October 19, 1987",
		Description: "The largest single-day stock market crash in history, with the Dow falling 22.6% in one day.",
		WhatHappened: []string{
			"Dow Jones fell 22.6% on October 19, 1987",
			"Triggered by program trading and portfolio insurance",
			"Global markets crashed simultaneously",
			"No clear fundamental cause",
			"Fed cut rates and provided liquidity",
			"Market fully recovered within 2 years",
		},
		ImpactSummary:    "Worst single-day crash ever, but recovery was relatively quick compared to other major crashes.",
		SP500Decline:     -0.34,
		DurationMonths:   2,
		RecoveryMonths:   20,
		PeakRecoveryDate: "July 1989",
		SectorImpacts: map[string]float64{
			"Financials":             -0.40,
			"Technology":             -0.38,
			"Industrials":            -0.35,
			"Consumer Discretionary": -0.33,
			"Energy":                 -0.32,
			"Healthcare":             -0.28,
			"Consumer Staples":       -0.25,
			"Utilities":              -0.22,
		},
		LessonsLearned: []string{
			"Markets can crash without clear fundamental reason",
			"Circuit breakers now prevent single-day 20%+ drops",
			"Recovery was faster than feared",
			"Fed intervention matters",
			"Staying invested paid off within 2 years",
		},
	},

	"Asian Crisis": {
		Name:        "Asian Financial Crisis",
		Icon:        "🌏",
		Color:       "#fb923c",
		DateRange:   "July 1997 - December 1998",
		Description: "Currency and financial crisis that started in Thailand and spread across Asia, affecting global markets.",
		WhatHappened: []string{
			"Thai baht collapse triggered regional contagion",
			"Indonesia, South Korea, Malaysia severely affected",
			"Russia defaulted on debt in 1998",
			"Long-Term Capital Management (LTCM) hedge fund collapsed",
			"Fed orchestrated LTCM bailout",
			"Asian currencies lost 30-50% of value",
		},
		ImpactSummary:    "Regional crisis that became global. U.S. markets fell 19% during 1998 volatility.",
		SP500Decline:     -0.19,
		DurationMonths:   6,
		RecoveryMonths:   12,
		PeakRecoveryDate: "December 1999",
		SectorImpacts: map[string]float64{
			"Financials":             -0.25,
			"Energy":                 -0.22,
			"Industrials":            -0.20,
			"Technology":             -0.18,
			"Consumer Discretionary": -0.17,
			"Healthcare":             -0.12,
			"Consumer Staples":       -0.10,
			"Utilities":              -0.08,
		},
		LessonsLearned: []string{
			"Emerging market crises can affect developed markets",
			"Currency risk is real for international investments",
			"Contagion effects can spread globally",
			"Domestic U.S. stocks proved more resilient",
			"Fed put in place (central bank intervention)",
		},
	},

	"Oil Shock": {
		Name:        "Oil Price Shock",
		Icon:        "🛢️",
		Color:       "#f87171",
		DateRange:   "1973-1974 & 1979-1980",
		Description: "Oil supply disruptions caused by Middle East conflicts led to recessions and stagflation.",
		WhatHappened: []string{
			"1973: Arab oil embargo quadrupled oil prices",
			"1979: Iranian Revolution disrupted supply",
			"Gas lines and rationing in the U.S.",
			"Inflation + recession = stagflation",
			"Fed raised rates to 20% to combat inflation",
			"S&P 500 fell 48% (1973-1974)",
		},
		ImpactSummary:    "Energy crisis led to the worst inflation in modern history and deep recessions.",
		SP500Decline:     -0.48,
		DurationMonths:   18,
		RecoveryMonths:   36,
		PeakRecoveryDate: "November 1980",
		SectorImpacts: map[string]float64{
			"Consumer Discretionary": -0.55,
			"Financials":             -0.52,
			"Industrials":            -0.50,
			"Technology":             -0.48,
			"Healthcare":             -0.42,
			"Consumer Staples":       -0.35,
			"Energy":                 0.20, // energy stocks rose during the embargo
			"Utilities":              -0.38,
		},
		LessonsLearned: []string{
			"Energy stocks can be a hedge during oil crises",
			"Inflation can persist for years",
			"Commodities (gold) perform well during inflation",
			"High interest rates eventually break inflation",
			"Stagflation is particularly damaging",
		},
	},
}

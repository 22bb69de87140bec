package models

import (
	"math"
	"sort"
	"strings"
)

// Payload is a raw JSON response from the analytics backend. The backend has
// no fixed schema and has shipped several key-name variants for the same
// metric over time, so all extraction goes through the alias tables below
// rather than ad-hoc lookups at call sites.
type Payload = map[string]interface{}

// ErrorPayload builds the error marker the gateway returns in place of a
// response when transport fails.
func ErrorPayload(message string) Payload {
	return Payload{"error": message}
}

// IsErrorPayload reports whether the payload carries an error marker.
func IsErrorPayload(p Payload) bool {
	if p == nil {
		return true
	}
	_, ok := p["error"]
	return ok
}

// RiskMetrics is the typed view of the backend's metrics sub-object.
type RiskMetrics struct {
	Volatility  float64 `json:"annualized_volatility"`
	SharpeRatio float64 `json:"sharpe_ratio"`
	VaR95       float64 `json:"var_95"`
	CVaR95      float64 `json:"cvar_95"`
	MaxDrawdown float64 `json:"max_drawdown"`

	// Estimated is set when any field was substituted with a display
	// fallback because the backend omitted it.
	Estimated bool `json:"estimated,omitempty"`
}

// Key aliases in lookup order, oldest variants last.
var (
	volatilityKeys = []string{"annualized_volatility", "volatility", "expected_volatility"}
	sharpeKeys     = []string{"sharpe_ratio"}
	varKeys        = []string{"portfolio_var_95", "var_95", "var", "value_at_risk"}
	cvarKeys       = []string{"portfolio_cvar_95", "cvar_95"}
	drawdownKeys   = []string{"max_drawdown_pct", "max_drawdown"}
)

// Display fallbacks for the always-render policy. These are deliberately
// plausible mid-range values, not zeros.
const (
	FallbackVolatility  = 0.20
	FallbackSharpe      = 1.0
	FallbackVaR95       = -0.02
	FallbackCVaR95      = -0.03
	FallbackMaxDrawdown = -0.15
)

// MetricsObject returns the metrics sub-object when present, otherwise the
// payload itself (the backend has returned both shapes).
func MetricsObject(p Payload) map[string]interface{} {
	if p == nil {
		return nil
	}
	if m, ok := p["metrics"].(map[string]interface{}); ok {
		return m
	}
	return p
}

// HasMetrics reports whether the payload carries a non-empty metrics object.
func HasMetrics(p Payload) bool {
	m, ok := p["metrics"].(map[string]interface{})
	return ok && len(m) > 0
}

func numberField(m map[string]interface{}, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if f, ok := toFloat(v); ok && f != 0 {
				return f, true
			}
		}
	}
	// Second pass accepts explicit zeros so a genuine 0 isn't reported missing.
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// ToFloat coerces a JSON number into a float64.
func ToFloat(v interface{}) (float64, bool) {
	return toFloat(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}

// ParseMetrics extracts risk metrics with zero defaults. This is the
// rule-engine input: absent metrics stay at zero so threshold rules only
// fire on values the backend actually reported.
func ParseMetrics(p Payload) RiskMetrics {
	m := MetricsObject(p)
	if m == nil {
		return RiskMetrics{}
	}

	var out RiskMetrics
	out.Volatility, _ = numberField(m, volatilityKeys)
	out.SharpeRatio, _ = numberField(m, sharpeKeys)
	out.VaR95, _ = numberField(m, varKeys)
	out.CVaR95, _ = numberField(m, cvarKeys)
	out.MaxDrawdown, _ = numberField(m, drawdownKeys)
	return out
}

// ParseMetricsWithFallback extracts risk metrics substituting display
// fallbacks for absent fields, flagging the result as estimated when any
// substitution happened. Display paths use this so the UI always has a
// number to show.
func ParseMetricsWithFallback(p Payload) RiskMetrics {
	m := MetricsObject(p)
	out := RiskMetrics{
		Volatility:  FallbackVolatility,
		SharpeRatio: FallbackSharpe,
		VaR95:       FallbackVaR95,
		CVaR95:      FallbackCVaR95,
		MaxDrawdown: FallbackMaxDrawdown,
		Estimated:   true,
	}
	if m == nil || IsErrorPayload(p) {
		return out
	}

	missing := 0
	if v, ok := numberField(m, volatilityKeys); ok {
		out.Volatility = v
	} else {
		missing++
	}
	if v, ok := numberField(m, sharpeKeys); ok {
		out.SharpeRatio = v
	} else {
		missing++
	}
	if v, ok := numberField(m, varKeys); ok {
		out.VaR95 = v
	} else {
		missing++
	}
	if v, ok := numberField(m, cvarKeys); ok {
		out.CVaR95 = v
	} else {
		missing++
	}
	if v, ok := numberField(m, drawdownKeys); ok {
		out.MaxDrawdown = v
	} else {
		missing++
	}
	out.Estimated = missing > 0
	return out
}

// StressScenario is one parsed stress-test scenario card.
type StressScenario struct {
	Name    string  `json:"name"`
	LossPct float64 `json:"loss_pct"` // positive percentage loss, e.g. 37.0
}

// StressSummary aggregates stress scenarios for display.
type StressSummary struct {
	Scenarios  []StressScenario `json:"scenarios"`
	WorstCase  float64          `json:"worst_case_pct"`
	WorstName  string           `json:"worst_name"`
	AvgLoss    float64          `json:"avg_loss_pct"`
	Resilience int              `json:"resilience_score"`
	Fallback   bool             `json:"fallback,omitempty"`
}

// fallbackStressScenarios are shown when the stress endpoint fails so the
// screen still renders something representative.
func fallbackStressScenarios() []StressScenario {
	return []StressScenario{
		{Name: "2008 Crisis", LossPct: 37.0},
		{Name: "COVID 2020", LossPct: 34.0},
		{Name: "Correction", LossPct: 20.0},
		{Name: "Flash Crash", LossPct: 9.0},
	}
}

// ParseStressScenarios turns a stress-test payload into sorted scenario
// cards. The backend returns either flat loss fractions or nested objects
// with a total_loss_pct field; sub-1 magnitudes are fractions and get scaled
// to percentages.
func ParseStressScenarios(p Payload) StressSummary {
	scenarios := stressScenarioMap(p)
	if scenarios == nil {
		cards := fallbackStressScenarios()
		return StressSummary{
			Scenarios:  cards,
			WorstCase:  cards[0].LossPct,
			WorstName:  cards[0].Name,
			AvgLoss:    25.0,
			Resilience: 63,
			Fallback:   true,
		}
	}

	cards := make([]StressScenario, 0, len(scenarios))
	for name, data := range scenarios {
		var loss float64
		switch v := data.(type) {
		case map[string]interface{}:
			loss, _ = toFloat(v["total_loss_pct"])
			loss = math.Abs(loss)
			if loss > 0 && loss < 1 {
				loss *= 100
			}
		default:
			if f, ok := toFloat(v); ok {
				loss = math.Abs(f)
				if loss < 1 {
					loss *= 100
				}
			}
		}
		cards = append(cards, StressScenario{Name: TitleizeScenario(name), LossPct: loss})
	}

	sort.SliceStable(cards, func(i, j int) bool { return cards[i].LossPct > cards[j].LossPct })

	out := StressSummary{Scenarios: cards}
	if len(cards) == 0 {
		out.WorstCase = 25.0
		out.WorstName = "Market Crisis"
		out.AvgLoss = 15.0
	} else {
		out.WorstCase = cards[0].LossPct
		out.WorstName = cards[0].Name
		var sum float64
		for _, c := range cards {
			sum += c.LossPct
		}
		out.AvgLoss = sum / float64(len(cards))
	}
	out.Resilience = int(math.Max(0, 100-out.WorstCase))
	return out
}

func stressScenarioMap(p Payload) map[string]interface{} {
	if p == nil || IsErrorPayload(p) {
		return nil
	}
	if status, _ := p["status"].(string); status != "" && status != "success" {
		return nil
	}
	node := p
	if results, ok := p["stress_test_results"].(map[string]interface{}); ok {
		node = results
	}
	if scenarios, ok := node["stress_scenarios"].(map[string]interface{}); ok {
		return scenarios
	}
	return nil
}

// TitleizeScenario converts a snake_case scenario identifier to a display name.
func TitleizeScenario(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

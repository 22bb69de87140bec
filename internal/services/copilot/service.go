// Package copilot answers free-text portfolio questions by keyword routing.
//
// There is no language model behind this. The message is scanned for topic
// keywords in a fixed order and the first match dispatches to the relevant
// analytics summary; anything unmatched gets the capability menu.
package copilot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"riskpilot/internal/common"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

var (
	riskKeywords       = []string{"risk", "volatility", "var", "loss"}
	optimizeKeywords   = []string{"optimize", "improve", "allocation", "sharpe"}
	stressKeywords     = []string{"stress", "crash", "scenario"}
	hedgeKeywords      = []string{"hedge", "hedging", "protection", "downside"}
	behavioralKeywords = []string{"bias", "behavioral", "behavior", "psychology"}
)

// Service implements interfaces.CopilotService.
type Service struct {
	gateway interfaces.AnalyticsGateway
	logger  *common.Logger
}

// NewService creates the copilot over the analytics gateway.
func NewService(gateway interfaces.AnalyticsGateway, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{gateway: gateway, logger: logger}
}

var _ interfaces.CopilotService = (*Service)(nil)

// Ask routes a question to the first matching topic. Topic order matters:
// "portfolio risk optimization" is answered as a risk question.
func (s *Service) Ask(ctx context.Context, message string, symbols []string, weights []float64) models.CopilotReply {
	query := strings.ToLower(message)

	switch {
	case containsAny(query, riskKeywords):
		return s.riskReply(ctx, symbols, weights)
	case containsAny(query, optimizeKeywords):
		return s.optimizeReply(ctx, symbols)
	case containsAny(query, stressKeywords):
		return s.stressReply(ctx, symbols, weights)
	case containsAny(query, hedgeKeywords):
		return s.hedgeReply(ctx, symbols, weights)
	case containsAny(query, behavioralKeywords):
		return s.behavioralReply(ctx, symbols)
	default:
		return s.menuReply()
	}
}

func containsAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

func (s *Service) riskReply(ctx context.Context, symbols []string, weights []float64) models.CopilotReply {
	data := s.gateway.RiskAnalysis(ctx, symbols, weights, "1year")
	if models.IsErrorPayload(data) {
		return models.CopilotReply{Text: fmt.Sprintf("Unable to perform risk analysis: %v", data["error"])}
	}

	m := models.ParseMetrics(data)
	return models.CopilotReply{
		Text: fmt.Sprintf("Your portfolio risk is **%.1f%%**. Value at Risk (95%%): **%.1f%%**.",
			m.Volatility*100, math.Abs(m.VaR95)*100),
		Actions: []models.CopilotAction{
			{Label: "Stress Test", Target: "stress_test"},
			{Label: "Reduce Risk", Target: "optimization"},
		},
	}
}

func (s *Service) optimizeReply(ctx context.Context, symbols []string) models.CopilotReply {
	data := s.gateway.Optimize(ctx, symbols, "max_sharpe", "1year")
	if models.IsErrorPayload(data) {
		return models.CopilotReply{Text: fmt.Sprintf("Unable to optimize: %v", data["error"])}
	}
	if data["status"] != "success" {
		return models.CopilotReply{Text: "Unable to optimize portfolio. Try with different holdings."}
	}

	var lines []string
	if optWeights, ok := data["optimized_weights"].(map[string]interface{}); ok {
		syms := make([]string, 0, len(optWeights))
		for sym := range optWeights {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			if w, ok := models.ToFloat(optWeights[sym]); ok {
				lines = append(lines, fmt.Sprintf("- **%s**: %.1f%%", sym, w*100))
			}
		}
	}

	sharpe, _ := models.ToFloat(data["sharpe_ratio"])
	return models.CopilotReply{
		Text: fmt.Sprintf("Optimized allocation (Max Sharpe):\n\n%s\n\nExpected Sharpe Ratio: **%.2f**",
			strings.Join(lines, "\n"), sharpe),
		Actions: []models.CopilotAction{
			{Label: "Apply Changes", Target: "apply_optimization"},
		},
	}
}

func (s *Service) stressReply(ctx context.Context, symbols []string, weights []float64) models.CopilotReply {
	data := s.gateway.StressTest(ctx, symbols, weights, nil)
	if models.IsErrorPayload(data) {
		return models.CopilotReply{Text: fmt.Sprintf("Unable to run stress test: %v", data["error"])}
	}

	summary := models.ParseStressScenarios(data)
	if summary.Fallback {
		return models.CopilotReply{Text: "Stress test completed."}
	}

	var b strings.Builder
	b.WriteString("**Stress Test Results:**\n\n")
	for _, sc := range summary.Scenarios {
		fmt.Fprintf(&b, "- **%s**: %.1f%%\n", sc.Name, math.Abs(sc.LossPct))
	}
	return models.CopilotReply{Text: b.String()}
}

func (s *Service) hedgeReply(ctx context.Context, symbols []string, weights []float64) models.CopilotReply {
	// The canned strategy list is enriched with the portfolio's actual
	// volatility when the risk analysis is available.
	volText := "24.3%"
	data := s.gateway.RiskAnalysis(ctx, symbols, weights, "1year")
	if !models.IsErrorPayload(data) && models.HasMetrics(data) {
		m := models.ParseMetrics(data)
		volText = fmt.Sprintf("%.1f%%", m.Volatility*100)
	}

	text := "**Hedging Strategies:**\n\n" +
		"1. **Put Options** - Buy protective puts on major holdings\n" +
		"2. **Inverse ETFs** - Add small allocation to inverse market ETFs\n" +
		"3. **Bonds** - Increase allocation to treasuries/bonds\n" +
		"4. **Gold/Commodities** - Add 5-10% to gold or commodity ETFs\n" +
		"5. **Cash** - Reduce equity allocation, hold more cash\n\n" +
		fmt.Sprintf("Current portfolio volatility: **%s**. Would you like to run a stress test to see which hedge would be most effective?", volText)

	return models.CopilotReply{
		Text: text,
		Actions: []models.CopilotAction{
			{Label: "Run Stress Test", Target: "stress_test"},
			{Label: "Optimize with Hedge", Target: "optimization"},
		},
	}
}

func (s *Service) behavioralReply(ctx context.Context, symbols []string) models.CopilotReply {
	data := s.gateway.BehavioralBiases(ctx, symbols, nil)
	if models.IsErrorPayload(data) {
		return models.CopilotReply{Text: fmt.Sprintf("Unable to perform behavioral analysis: %v", data["error"])}
	}
	if data["status"] != "success" {
		return models.CopilotReply{Text: "Behavioral analysis unavailable."}
	}

	biases, _ := data["biases_detected"].([]interface{})
	if len(biases) == 0 {
		return models.CopilotReply{Text: "No significant behavioral biases detected."}
	}

	var b strings.Builder
	b.WriteString("Behavioral Analysis:\n\n")
	for _, raw := range biases {
		bias, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**%v** (%v)\n%v\n\n", bias["bias_type"], bias["severity"], bias["description"])
	}
	return models.CopilotReply{Text: b.String()}
}

func (s *Service) menuReply() models.CopilotReply {
	return models.CopilotReply{
		Text: "I can help you with:\n\n" +
			"- **Risk analysis** - volatility, VaR, drawdowns\n" +
			"- **Portfolio optimization** - max Sharpe, min volatility\n" +
			"- **Stress testing** - market crash scenarios\n" +
			"- **Behavioral analysis** - detect investment biases\n\n" +
			"What would you like to explore?",
	}
}

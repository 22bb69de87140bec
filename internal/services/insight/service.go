// Package insight derives plain-language observations from risk metrics.
//
// The generator is a fixed threshold battery: each rule inspects one metric
// and emits exactly one insight, then the list is sorted by priority and
// capped at five. Rules read raw metric values with zero defaults so an
// absent metric lands in the lowest band instead of inventing a warning.
package insight

import (
	"fmt"
	"math"
	"sort"

	"riskpilot/internal/common"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

const maxInsights = 5

// Volatility, Sharpe, tail-risk and drawdown bands.
const (
	volatilityHigh     = 0.30
	volatilityModerate = 0.20
	sharpePoor         = 0.5
	sharpeAverage      = 1.0
	cvarHigh           = 0.05
	cvarModerate       = 0.03
	drawdownLarge      = 0.25
	drawdownModerate   = 0.15
	holdingsFew        = 5
	holdingsMany       = 20
)

// Service implements interfaces.InsightService.
type Service struct {
	logger *common.Logger
}

// NewService creates the insight generator.
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

var _ interfaces.InsightService = (*Service)(nil)

// Generate returns at most five insights, highest priority first.
func (s *Service) Generate(riskData models.Payload, symbols []string) []models.Insight {
	if riskData == nil || models.IsErrorPayload(riskData) {
		return []models.Insight{{
			Icon:        "⚠️",
			Title:       "Unable to Generate Insights",
			Description: "Could not fetch portfolio data. Try refreshing.",
			Priority:    models.PriorityHigh,
		}}
	}

	if !models.HasMetrics(riskData) {
		return []models.Insight{{
			Icon:        "📊",
			Title:       "Analyzing Portfolio",
			Description: "Portfolio analysis in progress. Check back soon.",
			Priority:    models.PriorityLow,
		}}
	}

	m := models.ParseMetrics(riskData)

	insights := []models.Insight{
		volatilityInsight(m.Volatility),
		sharpeInsight(m.SharpeRatio),
		tailRiskInsight(m.CVaR95),
	}
	if di, ok := drawdownInsight(m.MaxDrawdown); ok {
		insights = append(insights, di)
	}
	if ci, ok := concentrationInsight(len(symbols)); ok {
		insights = append(insights, ci)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return models.PriorityRank(insights[i].Priority) < models.PriorityRank(insights[j].Priority)
	})

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func volatilityInsight(volatility float64) models.Insight {
	switch {
	case volatility > volatilityHigh:
		return models.Insight{
			Icon:        "⚠️",
			Title:       "High Volatility Detected",
			Description: fmt.Sprintf("Your portfolio has %.1f%% annual volatility. Consider adding defensive assets like bonds or low-volatility stocks.", volatility*100),
			Priority:    models.PriorityHigh,
			Metric:      "volatility",
			Value:       volatility,
		}
	case volatility > volatilityModerate:
		return models.Insight{
			Icon:        "📊",
			Title:       "Moderate Risk Profile",
			Description: fmt.Sprintf("Portfolio volatility is %.1f%%. This is typical for growth-focused portfolios.", volatility*100),
			Priority:    models.PriorityMedium,
			Metric:      "volatility",
			Value:       volatility,
		}
	default:
		return models.Insight{
			Icon:        "✅",
			Title:       "Stable Portfolio",
			Description: fmt.Sprintf("Low volatility of %.1f%% suggests good stability. You might have room for higher-return opportunities.", volatility*100),
			Priority:    models.PriorityLow,
			Metric:      "volatility",
			Value:       volatility,
		}
	}
}

func sharpeInsight(sharpe float64) models.Insight {
	switch {
	case sharpe < sharpePoor:
		return models.Insight{
			Icon:        "📉",
			Title:       "Poor Risk-Adjusted Returns",
			Description: fmt.Sprintf("Sharpe ratio of %.2f indicates you may not be compensated well for the risk taken. Consider optimization.", sharpe),
			Priority:    models.PriorityHigh,
			Metric:      "sharpe",
			Value:       sharpe,
		}
	case sharpe < sharpeAverage:
		return models.Insight{
			Icon:        "📈",
			Title:       "Average Risk-Adjusted Returns",
			Description: fmt.Sprintf("Sharpe ratio of %.2f. There may be room for improvement through rebalancing or optimization.", sharpe),
			Priority:    models.PriorityMedium,
			Metric:      "sharpe",
			Value:       sharpe,
		}
	default:
		return models.Insight{
			Icon:        "🎯",
			Title:       "Strong Risk-Adjusted Returns",
			Description: fmt.Sprintf("Excellent Sharpe ratio of %.2f! Your portfolio is well-balanced for its risk level.", sharpe),
			Priority:    models.PriorityLow,
			Metric:      "sharpe",
			Value:       sharpe,
		}
	}
}

func tailRiskInsight(cvar float64) models.Insight {
	loss := math.Abs(cvar)
	switch {
	case loss > cvarHigh:
		return models.Insight{
			Icon:        "🔴",
			Title:       "Significant Tail Risk",
			Description: fmt.Sprintf("In worst scenarios (5%% of cases), you could lose %.1f%%. Consider hedging strategies.", loss*100),
			Priority:    models.PriorityHigh,
			Metric:      "cvar",
			Value:       cvar,
		}
	case loss > cvarModerate:
		return models.Insight{
			Icon:        "⚠️",
			Title:       "Moderate Tail Risk",
			Description: fmt.Sprintf("Potential worst-case loss: %.1f%%. Monitor market conditions closely.", loss*100),
			Priority:    models.PriorityMedium,
			Metric:      "cvar",
			Value:       cvar,
		}
	default:
		return models.Insight{
			Icon:        "🛡️",
			Title:       "Low Tail Risk",
			Description: fmt.Sprintf("Worst-case loss is only %.1f%%. Your portfolio is well-protected.", loss*100),
			Priority:    models.PriorityLow,
			Metric:      "cvar",
			Value:       cvar,
		}
	}
}

func drawdownInsight(drawdown float64) (models.Insight, bool) {
	loss := math.Abs(drawdown)
	switch {
	case loss > drawdownLarge:
		return models.Insight{
			Icon:        "📉",
			Title:       "Large Historical Drawdown",
			Description: fmt.Sprintf("Your portfolio experienced a %.1f%% drawdown in the past. Consider diversification.", loss*100),
			Priority:    models.PriorityHigh,
			Metric:      "drawdown",
			Value:       drawdown,
		}, true
	case loss > drawdownModerate:
		return models.Insight{
			Icon:        "📊",
			Title:       "Moderate Drawdown History",
			Description: fmt.Sprintf("Historical drawdown of %.1f%% is typical for equity portfolios.", loss*100),
			Priority:    models.PriorityMedium,
			Metric:      "drawdown",
			Value:       drawdown,
		}, true
	}
	return models.Insight{}, false
}

func concentrationInsight(holdings int) (models.Insight, bool) {
	switch {
	case holdings < holdingsFew:
		return models.Insight{
			Icon:        "⚠️",
			Title:       "Concentrated Portfolio",
			Description: fmt.Sprintf("Only %d holdings. Consider adding 5-10 more for better diversification.", holdings),
			Priority:    models.PriorityMedium,
			Metric:      "concentration",
			Value:       float64(holdings),
		}, true
	case holdings > holdingsMany:
		return models.Insight{
			Icon:        "📊",
			Title:       "Highly Diversified",
			Description: fmt.Sprintf("%d holdings may be too many to manage effectively. Consider consolidation.", holdings),
			Priority:    models.PriorityLow,
			Metric:      "concentration",
			Value:       float64(holdings),
		}, true
	}
	return models.Insight{}, false
}

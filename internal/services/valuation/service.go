// Package valuation converts portfolio weights into dollar holdings using
// current prices.
package valuation

import (
	"context"

	"riskpilot/internal/common"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

// PriceSource provides current prices and daily changes. The analytics
// gateway satisfies it.
type PriceSource interface {
	Prices(ctx context.Context, symbols []string) map[string]float64
	Change24h(ctx context.Context, symbol string) (float64, bool)
}

// Service implements interfaces.ValuationService.
type Service struct {
	prices PriceSource
	logger *common.Logger
}

// NewService creates a valuation service over a price source.
func NewService(prices PriceSource, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{prices: prices, logger: logger}
}

var _ interfaces.ValuationService = (*Service)(nil)

// Valuate computes per-holding shares and values. Each holding's allocation
// is investment * weight; shares are fractional. A zero price yields zero
// shares and value so one bad quote cannot poison the totals.
func (s *Service) Valuate(ctx context.Context, symbols []string, weights []float64, investment float64) *models.PortfolioValuation {
	if len(symbols) == 0 || len(weights) == 0 {
		return &models.PortfolioValuation{Error: "No portfolio data"}
	}

	prices := s.prices.Prices(ctx, symbols)

	holdings := make([]models.HoldingValuation, 0, len(symbols))
	totalValue := 0.0

	for i, symbol := range symbols {
		if i >= len(weights) {
			break
		}
		weight := weights[i]
		allocation := investment * weight
		price := prices[symbol]

		var shares, currentValue float64
		if price > 0 {
			shares = allocation / price
			currentValue = shares * price
		}

		holding := models.HoldingValuation{
			Symbol:       symbol,
			Weight:       weight,
			Allocation:   allocation,
			Price:        price,
			Shares:       shares,
			CurrentValue: currentValue,
		}
		if change, ok := s.prices.Change24h(ctx, symbol); ok {
			holding.Change24hPct = &change
		}

		holdings = append(holdings, holding)
		totalValue += currentValue
	}

	v := &models.PortfolioValuation{
		TotalValue:      totalValue,
		TotalInvestment: investment,
		Holdings:        holdings,
		GainLoss:        totalValue - investment,
		Prices:          prices,
	}
	if investment > 0 {
		v.GainLossPct = (totalValue - investment) / investment * 100
	}
	return v
}

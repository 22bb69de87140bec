package valuation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceGateway struct {
	prices  map[string]float64
	changes map[string]float64
}

func (g *priceGateway) Prices(ctx context.Context, symbols []string) map[string]float64 {
	return g.prices
}

func (g *priceGateway) Change24h(ctx context.Context, symbol string) (float64, bool) {
	change, ok := g.changes[symbol]
	return change, ok
}

func TestValuateComputesShares(t *testing.T) {
	svc := NewService(&priceGateway{prices: map[string]float64{"A": 100.0, "B": 50.0}}, nil)

	v := svc.Valuate(context.Background(), []string{"A", "B"}, []float64{0.6, 0.4}, 100000)
	require.Len(t, v.Holdings, 2)

	a := v.Holdings[0]
	assert.Equal(t, 60000.0, a.Allocation)
	assert.InDelta(t, 600.0, a.Shares, 1e-9)
	assert.InDelta(t, 60000.0, a.CurrentValue, 1e-9)

	b := v.Holdings[1]
	assert.Equal(t, 40000.0, b.Allocation)
	assert.InDelta(t, 800.0, b.Shares, 1e-9)
	assert.InDelta(t, 40000.0, b.CurrentValue, 1e-9)

	assert.InDelta(t, 100000.0, v.TotalValue, 1e-9)
	assert.InDelta(t, 0.0, v.GainLoss, 1e-9)
	assert.InDelta(t, 0.0, v.GainLossPct, 1e-9)
}

func TestValuateIncludesChange24h(t *testing.T) {
	svc := NewService(&priceGateway{
		prices:  map[string]float64{"A": 100.0, "B": 50.0},
		changes: map[string]float64{"A": -1.25},
	}, nil)

	v := svc.Valuate(context.Background(), []string{"A", "B"}, []float64{0.6, 0.4}, 100000)
	require.Len(t, v.Holdings, 2)

	require.NotNil(t, v.Holdings[0].Change24hPct)
	assert.InDelta(t, -1.25, *v.Holdings[0].Change24hPct, 1e-9)
	assert.Nil(t, v.Holdings[1].Change24hPct)
}

func TestValuateZeroPriceYieldsZeroShares(t *testing.T) {
	svc := NewService(&priceGateway{prices: map[string]float64{"A": 100.0, "BAD": 0}}, nil)

	v := svc.Valuate(context.Background(), []string{"A", "BAD"}, []float64{0.5, 0.5}, 100000)
	require.Len(t, v.Holdings, 2)

	assert.Equal(t, 0.0, v.Holdings[1].Shares)
	assert.Equal(t, 0.0, v.Holdings[1].CurrentValue)
	assert.InDelta(t, 50000.0, v.TotalValue, 1e-9)
	assert.InDelta(t, -50.0, v.GainLossPct, 1e-9)
}

func TestValuateEmptyPortfolio(t *testing.T) {
	svc := NewService(&priceGateway{}, nil)

	v := svc.Valuate(context.Background(), nil, nil, 100000)
	assert.Equal(t, "No portfolio data", v.Error)
	assert.Empty(t, v.Holdings)
	assert.Equal(t, 0.0, v.TotalValue)
}

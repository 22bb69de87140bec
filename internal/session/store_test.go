package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightSum(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

func TestSetNormalizesWeights(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		weights []float64
		want    []float64
	}{
		{
			name:    "already normalized",
			symbols: []string{"AAPL", "MSFT"},
			weights: []float64{0.6, 0.4},
			want:    []float64{0.6, 0.4},
		},
		{
			name:    "unnormalized input",
			symbols: []string{"AAPL", "MSFT", "GOOGL"},
			weights: []float64{2, 1, 1},
			want:    []float64{0.5, 0.25, 0.25},
		},
		{
			name:    "nil weights become equal",
			symbols: []string{"AAPL", "MSFT", "GOOGL", "NVDA"},
			weights: nil,
			want:    []float64{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:    "length mismatch becomes equal",
			symbols: []string{"AAPL", "MSFT"},
			weights: []float64{1},
			want:    []float64{0.5, 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, nil, 0)
			s.Set(tt.symbols, tt.weights)

			symbols, weights := s.Get()
			assert.Equal(t, tt.symbols, symbols)
			require.Len(t, weights, len(tt.want))
			for i, w := range tt.want {
				assert.InDelta(t, w, weights[i], 1e-9)
			}
			assert.InDelta(t, 1.0, weightSum(weights), 1e-6)
		})
	}
}

func TestSetZeroSumClearsPortfolio(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 0)
	s.Set([]string{"AAPL", "MSFT"}, []float64{0.5, -0.5})

	symbols, weights := s.Get()
	assert.Empty(t, symbols)
	assert.Empty(t, weights)
}

func TestSetEmptySymbolsIsNoOp(t *testing.T) {
	s := NewStore([]string{"AAPL"}, []float64{1}, 0)
	s.Set(nil, nil)

	symbols, _ := s.Get()
	assert.Equal(t, []string{"AAPL"}, symbols)
}

func TestAddScalesExistingWeights(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 0)
	s.Add("GOOGL", 0.10)

	symbols, weights := s.Get()
	require.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, symbols)
	assert.InDelta(t, 0.45, weights[0], 1e-9)
	assert.InDelta(t, 0.45, weights[1], 1e-9)
	assert.InDelta(t, 0.10, weights[2], 1e-9)
	assert.InDelta(t, 1.0, weightSum(weights), 1e-6)
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 0)
	s.Add("AAPL", 0.10)

	symbols, weights := s.Get()
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
	assert.InDelta(t, 0.5, weights[0], 1e-9)
}

func TestAddDefaultWeight(t *testing.T) {
	s := NewStore([]string{"AAPL"}, []float64{1}, 0)
	s.Add("GLD", 0)

	symbols, weights := s.Get()
	require.Equal(t, []string{"AAPL", "GLD"}, symbols)
	assert.InDelta(t, 0.90, weights[0], 1e-9)
	assert.InDelta(t, 0.10, weights[1], 1e-9)
}

func TestRemoveRedistributesWeight(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT", "GOOGL"}, []float64{0.5, 0.3, 0.2}, 0)
	s.Remove("AAPL")

	symbols, weights := s.Get()
	require.Equal(t, []string{"MSFT", "GOOGL"}, symbols)
	assert.InDelta(t, 1.0, weightSum(weights), 1e-6)
	// Survivors keep their relative proportions (0.3 : 0.2).
	assert.InDelta(t, 0.6, weights[0], 1e-9)
	assert.InDelta(t, 0.4, weights[1], 1e-9)
}

func TestRemoveLastHoldingLeavesEmpty(t *testing.T) {
	s := NewStore([]string{"AAPL"}, []float64{1}, 0)
	s.Remove("AAPL")

	symbols, _ := s.Get()
	assert.Empty(t, symbols)
	assert.Equal(t, 0, s.Size())
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	s := NewStore([]string{"AAPL"}, []float64{1}, 0)
	s.Remove("TSLA")
	assert.Equal(t, 1, s.Size())
}

func TestUpdateWeightRenormalizes(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 0)
	s.UpdateWeight("AAPL", 1.5)

	_, weights := s.Get()
	assert.InDelta(t, 0.75, weights[0], 1e-9)
	assert.InDelta(t, 0.25, weights[1], 1e-9)
	assert.InDelta(t, 1.0, weightSum(weights), 1e-6)
}

func TestClearAndInvestment(t *testing.T) {
	s := NewStore([]string{"AAPL"}, []float64{1}, 250000)
	assert.Equal(t, 250000.0, s.Investment())

	s.SetInvestment(-5)
	assert.Equal(t, 250000.0, s.Investment(), "non-positive investment is ignored")

	s.SetInvestment(50000)
	assert.Equal(t, 50000.0, s.Investment())

	s.Clear()
	assert.Equal(t, 0, s.Size())
}

func TestGetReturnsCopies(t *testing.T) {
	s := NewStore([]string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 0)
	symbols, weights := s.Get()
	symbols[0] = "HACKED"
	weights[0] = 99

	again, ws := s.Get()
	assert.Equal(t, "AAPL", again[0])
	assert.InDelta(t, 0.5, ws[0], 1e-9)
}

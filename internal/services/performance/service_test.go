package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestSeriesIsDeterministic(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	symbols := []string{"AAPL", "MSFT"}
	weights := []float64{0.6, 0.4}

	a := svc.Series(context.Background(), symbols, weights, 90, 100000)
	b := svc.Series(context.Background(), symbols, weights, 90, 100000)

	require.Len(t, a.Portfolio, 90)
	assert.Equal(t, a.Portfolio, b.Portfolio, "the same portfolio always produces the same curve")
	assert.Equal(t, a.Benchmark, b.Benchmark)
}

func TestSeriesIndexedToInvestment(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 30, 50000)
	require.Len(t, s.Portfolio, 30)

	assert.InDelta(t, 50000.0, s.Portfolio[0], 1e-6, "the series starts at the investment amount")
	assert.InDelta(t, 50000.0, s.Benchmark[0], 1e-6)

	// Values should stay in the neighborhood of the investment; a 15x move
	// in 30 days would mean the indexing is broken.
	for _, v := range s.Portfolio {
		assert.Greater(t, v, 10000.0)
		assert.Less(t, v, 250000.0)
	}
}

func TestSeriesDates(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 30, 100000)
	require.Len(t, s.Dates, 30)
	assert.True(t, s.Dates[0].Before(s.Dates[29]))
	assert.Equal(t, 24*time.Hour, s.Dates[1].Sub(s.Dates[0]))
}

func TestSeriesStats(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), []string{"AAPL", "MSFT", "GOOGL"}, []float64{0.4, 0.3, 0.3}, 365, 100000)

	assert.NotZero(t, s.Stats.TotalReturnPct)
	assert.Greater(t, s.Stats.AnnualizedVolatility, 0.0)
	assert.Less(t, s.Stats.AnnualizedVolatility, 1.0)
	assert.LessOrEqual(t, s.Stats.MaxDrawdownPct, 0.0)
}

func TestSeriesEmptyPortfolio(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), nil, nil, 30, 100000)
	assert.Empty(t, s.Portfolio)
	assert.Empty(t, s.Dates)
}

func TestSeriesClampsDays(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 10000, 100000)
	assert.Len(t, s.Portfolio, MaxDays)

	s = svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 0, 100000)
	assert.Len(t, s.Portfolio, DefaultDays)
}

func TestRenderChart(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	s := svc.Series(context.Background(), []string{"AAPL", "MSFT"}, []float64{0.5, 0.5}, 90, 100000)
	png, err := svc.RenderChart(s)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderChartRejectsShortSeries(t *testing.T) {
	svc := NewService(nil, WithClock(fixedClock()))

	_, err := svc.RenderChart(nil)
	assert.Error(t, err)

	_, err = svc.RenderChart(svc.Series(context.Background(), nil, nil, 30, 100000))
	assert.Error(t, err)
}

type stubHistory struct {
	closes map[string][]float64
}

func (h *stubHistory) Historical(ctx context.Context, symbol string, days int) ([]float64, error) {
	if c, ok := h.closes[symbol]; ok {
		return c, nil
	}
	return nil, errors.New("no data")
}

func (h *stubHistory) HasAPIKey() bool { return true }

func TestSeriesUsesRealHistory(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 + float64(i)
	}
	history := &stubHistory{closes: map[string][]float64{
		"AAPL": closes,
		"SPY":  closes,
	}}
	svc := NewService(nil, WithClock(fixedClock()), WithHistory(history))

	s := svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 30, 100000)
	require.Len(t, s.Portfolio, 30)

	// Monotonic closes produce a monotonic value series, which the seeded
	// random walk never does over 30 days.
	for i := 1; i < len(s.Portfolio); i++ {
		assert.Greater(t, s.Portfolio[i], s.Portfolio[i-1])
	}
	assert.InDelta(t, 50000.0, s.Portfolio[0]/2, 1e-6)
}

func TestSeriesFallsBackPerSymbol(t *testing.T) {
	history := &stubHistory{closes: map[string][]float64{}}
	svc := NewService(nil, WithClock(fixedClock()), WithHistory(history))

	// Every fetch fails, so the result matches the fully synthetic series.
	withHistory := svc.Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 30, 100000)
	synthetic := NewService(nil, WithClock(fixedClock())).Series(context.Background(), []string{"AAPL"}, []float64{1.0}, 30, 100000)

	assert.Equal(t, synthetic.Portfolio, withHistory.Portfolio)
}

func TestFitWindow(t *testing.T) {
	long := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, []float64{3, 4, 5}, fitWindow(long, 3))

	short := []float64{7, 8}
	assert.Equal(t, []float64{7, 7, 7, 8}, fitWindow(short, 4))
}

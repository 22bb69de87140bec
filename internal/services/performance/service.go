// Package performance builds historical portfolio performance series.
//
// When a price history source is configured the series uses real daily
// closes. Otherwise, and whenever a symbol's history cannot be fetched,
// that symbol falls back to a synthetic random walk seeded per symbol: the
// same portfolio always produces the same curve. Synthetic daily returns
// are drawn from a normal with mean 0.0003 and stddev 0.015, roughly a
// 7.5% annual return at 23% volatility.
package performance

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"

	"riskpilot/internal/common"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/models"
)

const (
	DefaultDays = 365
	MaxDays     = 2 * 365

	dailyMean   = 0.0003
	dailyStddev = 0.015

	benchmarkSymbol = "SPY"
	tradingDays     = 252
)

// HistorySource provides real daily closes. The fmp client satisfies it.
type HistorySource interface {
	Historical(ctx context.Context, symbol string, days int) ([]float64, error)
	HasAPIKey() bool
}

// Service implements interfaces.PerformanceService.
type Service struct {
	logger  *common.Logger
	history HistorySource
	now     func() time.Time
}

// Option configures the service
type Option func(*Service)

// WithClock replaces the service clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHistory enables real price history for series building.
func WithHistory(source HistorySource) Option {
	return func(s *Service) {
		s.history = source
	}
}

// NewService creates the performance series builder.
func NewService(logger *common.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.PerformanceService = (*Service)(nil)

// Series builds the daily value series ending today. The portfolio curve is
// the weighted sum of each symbol's normalized prices, indexed to the
// investment amount; the benchmark is SPY indexed the same way.
func (s *Service) Series(ctx context.Context, symbols []string, weights []float64, days int, investment float64) *models.PerformanceSeries {
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}
	if investment <= 0 {
		investment = 100000
	}

	series := &models.PerformanceSeries{
		Symbols:    symbols,
		Weights:    weights,
		Investment: investment,
	}
	if len(symbols) == 0 || len(symbols) != len(weights) {
		return series
	}

	end := s.now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	portfolioIndex := make([]float64, days)
	for i, symbol := range symbols {
		prices := s.dailyPrices(ctx, symbol, days)
		for d := range portfolioIndex {
			// Normalize each symbol to start at 100 before weighting.
			portfolioIndex[d] += weights[i] * 100 * prices[d] / prices[0]
		}
	}

	spy := s.dailyPrices(ctx, benchmarkSymbol, days)

	portfolio := make([]float64, days)
	benchmark := make([]float64, days)
	for d := range portfolio {
		portfolio[d] = portfolioIndex[d] / 100 * investment
		benchmark[d] = spy[d] / spy[0] * investment
	}

	series.Dates = dates
	series.Portfolio = portfolio
	series.Benchmark = benchmark
	series.Stats = computeStats(portfolio, benchmark)
	return series
}

// dailyPrices returns exactly days closes for symbol, real when available.
// Real series shorter than the window are front-padded with their first
// close; longer series keep the most recent days.
func (s *Service) dailyPrices(ctx context.Context, symbol string, days int) []float64 {
	if s.history != nil && s.history.HasAPIKey() {
		closes, err := s.history.Historical(ctx, symbol, days)
		if err == nil && len(closes) > 0 {
			return fitWindow(closes, days)
		}
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("History fetch failed, using synthetic prices")
		}
	}
	return syntheticPrices(symbol, days)
}

func fitWindow(closes []float64, days int) []float64 {
	if len(closes) >= days {
		return closes[len(closes)-days:]
	}
	padded := make([]float64, days)
	pad := days - len(closes)
	for i := 0; i < pad; i++ {
		padded[i] = closes[0]
	}
	copy(padded[pad:], closes)
	return padded
}

func computeStats(portfolio, benchmark []float64) models.PerformanceStats {
	out := models.PerformanceStats{}
	if len(portfolio) < 2 {
		return out
	}

	out.TotalReturnPct = (portfolio[len(portfolio)-1]/portfolio[0] - 1) * 100
	out.BenchmarkReturnPct = (benchmark[len(benchmark)-1]/benchmark[0] - 1) * 100

	returns := make([]float64, 0, len(portfolio)-1)
	for i := 1; i < len(portfolio); i++ {
		returns = append(returns, portfolio[i]/portfolio[i-1]-1)
	}
	if stddev, err := stats.StandardDeviationSample(returns); err == nil {
		out.AnnualizedVolatility = stddev * math.Sqrt(tradingDays)
	}

	peak := portfolio[0]
	maxDrawdown := 0.0
	for _, v := range portfolio {
		if v > peak {
			peak = v
		}
		if dd := (v - peak) / peak; dd < maxDrawdown {
			maxDrawdown = dd
		}
	}
	out.MaxDrawdownPct = maxDrawdown * 100
	return out
}

// syntheticPrices generates a deterministic per-symbol random walk starting
// at 100.
func syntheticPrices(symbol string, days int) []float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum32())))

	prices := make([]float64, days)
	cum := 0.0
	for i := range prices {
		cum += rng.NormFloat64()*dailyStddev + dailyMean
		prices[i] = 100 * math.Exp(cum)
	}
	return prices
}

package server

import (
	"net/http"
	"strconv"
	"time"
)

// portfolioResponse is the standard view of a session's portfolio.
func portfolioResponse(symbols []string, weights []float64, investment float64) map[string]interface{} {
	if symbols == nil {
		symbols = []string{}
	}
	if weights == nil {
		weights = []float64{}
	}
	return map[string]interface{}{
		"symbols":    symbols,
		"weights":    weights,
		"investment": investment,
		"count":      len(symbols),
	}
}

// handlePortfolio dispatches /api/portfolio by method: GET returns the
// current portfolio, PUT replaces it, DELETE clears it.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		symbols, weights := store.Get()
		WriteJSON(w, http.StatusOK, portfolioResponse(symbols, weights, store.Investment()))

	case http.MethodPut:
		var req struct {
			Symbols []string  `json:"symbols"`
			Weights []float64 `json:"weights"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if len(req.Symbols) == 0 {
			WriteError(w, http.StatusBadRequest, "symbols is required")
			return
		}
		store.Set(req.Symbols, req.Weights)
		symbols, weights := store.Get()
		WriteJSON(w, http.StatusOK, portfolioResponse(symbols, weights, store.Investment()))

	case http.MethodDelete:
		store.Clear()
		WriteJSON(w, http.StatusOK, portfolioResponse(nil, nil, store.Investment()))

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleHoldingAdd handles POST /api/portfolio/holdings.
func (s *Server) handleHoldingAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Symbol string  `json:"symbol"`
		Weight float64 `json:"weight"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	store.Add(req.Symbol, req.Weight)
	symbols, weights := store.Get()
	WriteJSON(w, http.StatusOK, portfolioResponse(symbols, weights, store.Investment()))
}

// handleHoldingRemove handles DELETE /api/portfolio/holdings/{symbol}.
func (s *Server) handleHoldingRemove(w http.ResponseWriter, r *http.Request, symbol string) {
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	store.Remove(symbol)
	symbols, weights := store.Get()
	WriteJSON(w, http.StatusOK, portfolioResponse(symbols, weights, store.Investment()))
}

// handleHoldingUpdateWeight handles PATCH /api/portfolio/holdings/{symbol}.
func (s *Server) handleHoldingUpdateWeight(w http.ResponseWriter, r *http.Request, symbol string) {
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Weight float64 `json:"weight"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Weight <= 0 {
		WriteError(w, http.StatusBadRequest, "weight must be positive")
		return
	}

	store.UpdateWeight(symbol, req.Weight)
	symbols, weights := store.Get()
	WriteJSON(w, http.StatusOK, portfolioResponse(symbols, weights, store.Investment()))
}

// handleInvestment handles GET and PUT /api/portfolio/investment.
func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]float64{"investment": store.Investment()})

	case http.MethodPut:
		var req struct {
			Amount float64 `json:"amount"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Amount <= 0 {
			WriteError(w, http.StatusBadRequest, "amount must be positive")
			return
		}
		store.SetInvestment(req.Amount)
		WriteJSON(w, http.StatusOK, map[string]float64{"investment": store.Investment()})

	default:
		w.Header().Set("Allow", "GET, PUT")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handlePortfolioValue handles GET /api/portfolio/value.
func (s *Server) handlePortfolioValue(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	valuation := s.app.ValuationService.Valuate(r.Context(), symbols, weights, store.Investment())
	WriteJSON(w, http.StatusOK, valuation)
}

// handlePortfolioHealth handles GET /api/portfolio/health.
func (s *Server) handlePortfolioHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	report := s.app.Gateway.PortfolioHealth(r.Context(), symbols, weights)
	WriteJSON(w, http.StatusOK, report)
}

// handlePortfolioInsights handles GET /api/portfolio/insights.
func (s *Server) handlePortfolioInsights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	riskData := s.app.Gateway.RiskAnalysis(r.Context(), symbols, weights, "1year")
	insights := s.app.InsightService.Generate(riskData, symbols)
	WriteJSON(w, http.StatusOK, map[string]interface{}{"insights": insights})
}

// performanceDays maps period query values to day counts.
var performanceDays = map[string]int{
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
}

func periodDays(r *http.Request) int {
	period := r.URL.Query().Get("period")
	if period == "ytd" {
		return time.Now().YearDay()
	}
	if days, ok := performanceDays[period]; ok {
		return days
	}
	if v := r.URL.Query().Get("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			return days
		}
	}
	return 365
}

// handlePerformance handles GET /api/portfolio/performance?period=1y.
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	series := s.app.PerformanceService.Series(r.Context(), symbols, weights, periodDays(r), store.Investment())
	WriteJSON(w, http.StatusOK, series)
}

// handlePerformanceChart handles GET /api/portfolio/performance/chart.png.
func (s *Server) handlePerformanceChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	series := s.app.PerformanceService.Series(r.Context(), symbols, weights, periodDays(r), store.Investment())

	png, err := s.app.PerformanceService.RenderChart(series)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Cannot render chart: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

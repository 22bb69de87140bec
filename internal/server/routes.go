package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Sessions
	mux.HandleFunc("/api/session", s.handleSessionCreate)

	// Portfolio state and derived views
	mux.HandleFunc("/api/portfolio/holdings/", s.routeHoldings)
	mux.HandleFunc("/api/portfolio/holdings", s.handleHoldingAdd)
	mux.HandleFunc("/api/portfolio/investment", s.handleInvestment)
	mux.HandleFunc("/api/portfolio/value", s.handlePortfolioValue)
	mux.HandleFunc("/api/portfolio/health", s.handlePortfolioHealth)
	mux.HandleFunc("/api/portfolio/insights", s.handlePortfolioInsights)
	mux.HandleFunc("/api/portfolio/performance/chart.png", s.handlePerformanceChart)
	mux.HandleFunc("/api/portfolio/performance", s.handlePerformance)
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)

	// Risk analytics (cached pass-throughs to the risk backend)
	mux.HandleFunc("/api/risk/analysis", s.handleRiskAnalysis)
	mux.HandleFunc("/api/risk/attribution", s.handleRiskAttribution)
	mux.HandleFunc("/api/risk/optimize", s.handleOptimize)
	mux.HandleFunc("/api/risk/correlations", s.handleCorrelations)
	mux.HandleFunc("/api/risk/stress-test", s.handleStressTest)
	mux.HandleFunc("/api/risk/biases", s.handleBehavioralBiases)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	// Hedging
	mux.HandleFunc("/api/hedging/opportunities", s.handleHedgeOpportunities)
	mux.HandleFunc("/api/hedging/evaluate", s.handleHedgeEvaluate)
	mux.HandleFunc("/api/hedging/compare", s.handleHedgeCompare)
	mux.HandleFunc("/api/hedging/allocation", s.handleHedgeAllocation)
	mux.HandleFunc("/api/hedging/candidates", s.handleHedgeCandidates)

	// Scenario library
	mux.HandleFunc("/api/scenarios/", s.routeScenarios)
	mux.HandleFunc("/api/scenarios", s.handleScenarioList)

	// Co-pilot
	mux.HandleFunc("/api/copilot/query", s.handleCopilotQuery)
}

// routeHoldings dispatches /api/portfolio/holdings/{symbol} by method.
func (s *Server) routeHoldings(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/api/portfolio/holdings/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	switch r.Method {
	case http.MethodDelete:
		s.handleHoldingRemove(w, r, symbol)
	case http.MethodPatch:
		s.handleHoldingUpdateWeight(w, r, symbol)
	default:
		w.Header().Set("Allow", "DELETE, PATCH")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// routeScenarios dispatches /api/scenarios/{name} and /api/scenarios/{name}/impact.
func (s *Server) routeScenarios(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	if rest == "" {
		s.handleScenarioList(w, r)
		return
	}

	if strings.HasSuffix(rest, "/impact") {
		s.handleScenarioImpact(w, r, PathParam(r, "/api/scenarios/", "/impact"))
		return
	}

	if strings.Contains(rest, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	s.handleScenarioDetail(w, r, rest)
}

package server

import (
	"net/http"

	"riskpilot/internal/models"
)

const defaultPeriod = "1year"

func analysisPeriod(r *http.Request) string {
	if period := r.URL.Query().Get("period"); period != "" {
		return period
	}
	return defaultPeriod
}

// handleRiskAnalysis handles GET /api/risk/analysis.
func (s *Server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.RiskAnalysis(r.Context(), symbols, weights, analysisPeriod(r))
	WriteJSON(w, http.StatusOK, payload)
}

// handleRiskAttribution handles GET /api/risk/attribution.
func (s *Server) handleRiskAttribution(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.RiskAttribution(r.Context(), symbols, weights, analysisPeriod(r))
	WriteJSON(w, http.StatusOK, payload)
}

// handleOptimize handles POST /api/risk/optimize.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Method string `json:"method"`
		Period string `json:"period"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	symbols, _ := store.Get()
	payload := s.app.Gateway.Optimize(r.Context(), symbols, req.Method, req.Period)
	WriteJSON(w, http.StatusOK, payload)
}

// handleCorrelations handles GET /api/risk/correlations.
func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, _ := store.Get()
	payload := s.app.Gateway.Correlations(r.Context(), symbols, analysisPeriod(r))
	WriteJSON(w, http.StatusOK, payload)
}

// handleStressTest handles GET /api/risk/stress-test. The response carries
// the raw backend payload plus the parsed scenario card summary.
func (s *Server) handleStressTest(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.StressTest(r.Context(), symbols, weights, nil)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"result":  payload,
		"summary": models.ParseStressScenarios(payload),
	})
}

// handleBehavioralBiases handles /api/risk/biases. GET analyzes the
// portfolio alone; POST accepts an optional trade history to score against.
func (s *Server) handleBehavioralBiases(w http.ResponseWriter, r *http.Request) {
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var history []map[string]string

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req struct {
			History []map[string]string `json:"history"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		history = req.History
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	symbols, _ := store.Get()
	payload := s.app.Gateway.BehavioralBiases(r.Context(), symbols, history)
	WriteJSON(w, http.StatusOK, payload)
}

// handleRefresh handles POST /api/refresh, dropping every cached analytics
// response so the next render refetches.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if s.requireSession(w, r) == nil {
		return
	}

	s.app.Gateway.ClearCache()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cache cleared"})
}

// handleConfig handles GET /api/config: the non-secret runtime
// configuration, with key material reduced to a set/unset flag.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":  cfg.Environment,
		"risk_api_url": cfg.RiskAPIBaseURL(),
		"fmp": map[string]interface{}{
			"base_url":    cfg.FMPBaseURL(),
			"api_key_set": cfg.Clients.FMP.APIKey != "",
		},
		"session": map[string]interface{}{
			"token_expiry": cfg.Session.GetTokenExpiry().String(),
		},
		"portfolio": map[string]interface{}{
			"default_symbols":    cfg.Portfolio.DefaultSymbols,
			"default_investment": cfg.Portfolio.DefaultInvestment,
		},
	})
}

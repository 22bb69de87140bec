package server

import (
	"net/http"
)

// handleHedgeOpportunities handles POST /api/hedging/opportunities.
func (s *Server) handleHedgeOpportunities(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Period     string   `json:"period"`
		TopN       int      `json:"top_n"`
		Candidates []string `json:"candidates"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.TopN < 0 {
		WriteError(w, http.StatusBadRequest, "top_n must be positive")
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.HedgeOpportunities(r.Context(), symbols, weights, req.Period, req.TopN, req.Candidates)
	WriteJSON(w, http.StatusOK, payload)
}

// handleHedgeEvaluate handles POST /api/hedging/evaluate.
func (s *Server) handleHedgeEvaluate(w http.ResponseWriter, r *http.Request) {
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
		Period string  `json:"period"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.EvaluateHedge(r.Context(), symbols, weights, req.Symbol, req.Weight, req.Period)
	WriteJSON(w, http.StatusOK, payload)
}

// handleHedgeCompare handles POST /api/hedging/compare.
func (s *Server) handleHedgeCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Candidates []string `json:"candidates"`
		Weight     float64  `json:"weight"`
		Period     string   `json:"period"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Candidates) == 0 {
		WriteError(w, http.StatusBadRequest, "candidates is required")
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.CompareHedges(r.Context(), symbols, weights, req.Candidates, req.Weight, req.Period)
	WriteJSON(w, http.StatusOK, payload)
}

// handleHedgeAllocation handles POST /api/hedging/allocation.
func (s *Server) handleHedgeAllocation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Symbol    string `json:"symbol"`
		Objective string `json:"objective"`
		Period    string `json:"period"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	symbols, weights := store.Get()
	payload := s.app.Gateway.OptimalHedgeAllocation(r.Context(), symbols, weights, req.Symbol, req.Objective, req.Period)
	WriteJSON(w, http.StatusOK, payload)
}

// handleHedgeCandidates handles GET /api/hedging/candidates. The candidate
// universe is portfolio independent, so no session is required.
func (s *Server) handleHedgeCandidates(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	payload := s.app.Gateway.HedgeCandidates(r.Context())
	WriteJSON(w, http.StatusOK, payload)
}

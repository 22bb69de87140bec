package server

import (
	"net/http"
	"net/url"
)

// handleScenarioList handles GET /api/scenarios.
func (s *Server) handleScenarioList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	names := s.app.Scenarios.Names()
	scenarios := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		detail, _ := s.app.Scenarios.Lookup(name)
		scenarios = append(scenarios, map[string]interface{}{
			"name":          detail.Name,
			"icon":          detail.Icon,
			"date_range":    detail.DateRange,
			"description":   detail.Description,
			"sp500_decline": detail.SP500Decline,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"scenarios": scenarios})
}

// scenarioName decodes the path segment; scenario names contain spaces.
func scenarioName(raw string) string {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

// handleScenarioDetail handles GET /api/scenarios/{name}.
func (s *Server) handleScenarioDetail(w http.ResponseWriter, r *http.Request, raw string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	detail, ok := s.app.Scenarios.Lookup(scenarioName(raw))
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown scenario: "+scenarioName(raw))
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

// handleScenarioImpact handles GET /api/scenarios/{name}/impact, projecting
// the scenario onto the session's portfolio.
func (s *Server) handleScenarioImpact(w http.ResponseWriter, r *http.Request, raw string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	symbols, weights := store.Get()
	if len(symbols) == 0 {
		WriteError(w, http.StatusBadRequest, "Portfolio is empty")
		return
	}

	impact := s.app.Scenarios.EstimateImpact(scenarioName(raw), symbols, weights)
	WriteJSON(w, http.StatusOK, impact)
}

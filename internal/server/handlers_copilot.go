package server

import (
	"net/http"
	"strings"
)

// handleCopilotQuery handles POST /api/copilot/query.
func (s *Server) handleCopilotQuery(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	store := s.requireSession(w, r)
	if store == nil {
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	symbols, weights := store.Get()
	reply := s.app.CopilotService.Ask(r.Context(), req.Query, symbols, weights)
	WriteJSON(w, http.StatusOK, reply)
}

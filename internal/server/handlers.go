package server

import (
	"net/http"
	"strings"
	"time"

	"riskpilot/internal/common"
	"riskpilot/internal/session"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  common.GetVersion(),
		"uptime":   time.Since(s.app.StartupTime).Round(time.Second).String(),
		"sessions": s.app.Sessions.Count(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// handleSessionCreate handles POST /api/session. Every client starts here:
// the returned bearer token scopes all portfolio state.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, token, err := s.app.Sessions.Create()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create session")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"session_id": id,
		"token":      token,
	})
}

// requireSession resolves the bearer token into the session's portfolio
// store. Writes a 401 and returns nil when the token is missing or invalid.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) *session.Store {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		WriteError(w, http.StatusUnauthorized, "Session token required. Create one via POST /api/session")
		return nil
	}

	store, err := s.app.Sessions.Resolve(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired session token")
		return nil
	}
	return store
}

package httpserver

import (
	"net/http"
)

// handleAuthRedirect sends the browser to Google's consent screen.
func (s *Server) handleAuthRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.auth.AuthURL(), http.StatusFound)
}

// handleAuthCallback completes the authorisation-code exchange and
// returns the browser to the dashboard.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		writeJSON(w, s.log, http.StatusBadRequest,
			errorResponse{Error: "Authorisation declined", Details: errParam})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, s.log, http.StatusBadRequest,
			errorResponse{Error: "Missing authorisation code"})
		return
	}

	if _, err := s.auth.CompleteAuthorization(r.Context(), code); err != nil {
		s.log.Error().Err(err).Msg("authorisation code exchange failed")
		writeJSON(w, s.log, http.StatusInternalServerError,
			errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleAuthStatus reports whether a usable credential exists.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, map[string]bool{
		"authenticated": s.auth.IsAuthenticated(r.Context()),
	})
}

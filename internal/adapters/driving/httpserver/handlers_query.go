package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// queryRequest is the body of POST /api/query.
type queryRequest struct {
	Message string `json:"message"`
}

// handleQuery forwards a single free-text message to the language
// model. Each call is independent; no conversation state is kept.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, s.log, fmt.Errorf("%w: message is required", domain.ErrInvalidInput))
		return
	}

	if s.llm == nil {
		writeError(w, s.log, fmt.Errorf("%w: no API key configured", domain.ErrLLMUnavailable))
		return
	}

	reply, err := s.llm.Complete(r.Context(), req.Message)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, map[string]string{"reply": reply})
}

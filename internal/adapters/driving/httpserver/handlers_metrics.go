package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// maxMetricsBytes bounds a telemetry report body.
const maxMetricsBytes = 1 << 20

// handleMetrics records a client telemetry report. Reports are
// best-effort: storage failures are logged, never surfaced, and the
// client always gets an acknowledgement.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMetricsBytes))
	if err != nil {
		s.log.Warn().Err(err).Msg("reading telemetry body")
		body = nil
	}
	if len(body) == 0 || !json.Valid(body) {
		body = []byte("{}")
	}

	event := domain.TelemetryEvent{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Body:       body,
	}

	s.log.Info().Str("event_id", event.ID).Int("bytes", len(body)).Msg("telemetry received")

	if s.telemetry != nil {
		if err := s.telemetry.Record(r.Context(), event); err != nil {
			s.log.Warn().Err(err).Msg("recording telemetry event")
		}
	}

	writeJSON(w, s.log, http.StatusOK, map[string]bool{"received": true})
}

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// upcomingEventCount is how many events the dashboard shows.
const upcomingEventCount = 10

// handleCalendarList returns the next events on the primary calendar.
func (s *Server) handleCalendarList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	events, err := s.calendar.UpcomingEvents(ctx, upcomingEventCount)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, events)
}

// handleCalendarCreate inserts a new event into the primary calendar.
func (s *Server) handleCalendarCreate(w http.ResponseWriter, r *http.Request) {
	var input domain.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, s.log, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return
	}
	if input.Summary == "" || input.StartTime == "" || input.EndTime == "" {
		writeError(w, s.log,
			fmt.Errorf("%w: summary, startTime and endTime are required", domain.ErrInvalidInput))
		return
	}

	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	event, err := s.calendar.CreateEvent(ctx, input)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, event)
}

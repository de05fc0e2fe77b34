package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func TestMapEvent(t *testing.T) {
	item := &calendarapi.Event{
		Id:          "evt-1",
		Summary:     "Standup",
		Description: "Daily sync",
		Location:    "Room 4",
		Status:      "confirmed",
		HtmlLink:    "https://calendar.google.com/event?eid=abc",
		Start:       &calendarapi.EventDateTime{DateTime: "2026-09-01T09:00:00Z"},
		End:         &calendarapi.EventDateTime{DateTime: "2026-09-01T09:15:00Z"},
	}

	got := mapEvent(item)
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, "Standup", got.Summary)
	assert.Equal(t, "Daily sync", got.Description)
	assert.Equal(t, "Room 4", got.Location)
	assert.Equal(t, "2026-09-01T09:00:00Z", got.Start)
	assert.Equal(t, "2026-09-01T09:15:00Z", got.End)
	assert.Equal(t, "confirmed", got.Status)
}

func TestMapEvent_AllDay(t *testing.T) {
	item := &calendarapi.Event{
		Id:    "evt-2",
		Start: &calendarapi.EventDateTime{Date: "2026-09-02"},
		End:   &calendarapi.EventDateTime{Date: "2026-09-03"},
	}

	got := mapEvent(item)
	assert.Equal(t, "2026-09-02", got.Start)
	assert.Equal(t, "2026-09-03", got.End)
}

func TestMapEvent_MissingTimes(t *testing.T) {
	got := mapEvent(&calendarapi.Event{Id: "evt-3"})
	assert.Empty(t, got.Start)
	assert.Empty(t, got.End)
}

func TestCreateEvent_ValidatesInput(t *testing.T) {
	s := &Source{}

	tests := []struct {
		name  string
		input domain.EventInput
	}{
		{"missing summary", domain.EventInput{StartTime: "2026-09-01T09:00:00Z", EndTime: "2026-09-01T10:00:00Z"}},
		{"missing start", domain.EventInput{Summary: "Review", EndTime: "2026-09-01T10:00:00Z"}},
		{"missing end", domain.EventInput{Summary: "Review", StartTime: "2026-09-01T09:00:00Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateEvent(context.Background(), tt.input)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

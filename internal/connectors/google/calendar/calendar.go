// Package calendar implements the calendar source on the Google
// Calendar API.
package calendar

import (
	"context"
	"fmt"
	"time"

	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/deskhub/internal/connectors/google"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CalendarSource = (*Source)(nil)

// calendarID addresses the authenticated user's primary calendar.
const calendarID = "primary"

// eventTimeZone is the time zone attached to created events.
const eventTimeZone = "UTC"

// Source reads and writes events on the primary calendar.
type Source struct {
	svc     *calendarapi.Service
	limiter *google.RateLimiter

	// now is injectable for tests.
	now func() time.Time
}

// NewSource creates a calendar source on top of a Calendar API service.
func NewSource(svc *calendarapi.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceCalendar),
		now:     time.Now,
	}
}

// UpcomingEvents returns the next events starting from now, expanded
// from recurrences and ordered by start time.
func (s *Source) UpcomingEvents(ctx context.Context, max int64) ([]domain.Event, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	list, err := s.svc.Events.List(calendarID).
		TimeMin(s.now().UTC().Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", s.limiter.WrapError(err))
	}

	events := make([]domain.Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, mapEvent(item))
	}
	return events, nil
}

// CreateEvent inserts an event into the primary calendar. Start and
// end times are taken as UTC.
func (s *Source) CreateEvent(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	if input.Summary == "" || input.StartTime == "" || input.EndTime == "" {
		return nil, fmt.Errorf("%w: summary, startTime and endTime are required", domain.ErrInvalidInput)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	created, err := s.svc.Events.Insert(calendarID, &calendarapi.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start:       &calendarapi.EventDateTime{DateTime: input.StartTime, TimeZone: eventTimeZone},
		End:         &calendarapi.EventDateTime{DateTime: input.EndTime, TimeZone: eventTimeZone},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", s.limiter.WrapError(err))
	}

	event := mapEvent(created)
	return &event, nil
}

// mapEvent flattens a Calendar API event into the dashboard shape.
// All-day events carry a date instead of a dateTime; either works as
// the start and end values.
func mapEvent(item *calendarapi.Event) domain.Event {
	return domain.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		Start:       eventTime(item.Start),
		End:         eventTime(item.End),
		Status:      item.Status,
		HTMLLink:    item.HtmlLink,
	}
}

func eventTime(t *calendarapi.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

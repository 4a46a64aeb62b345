package calendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// dateLayout is the layout of all-day event dates.
const dateLayout = "2006-01-02"

// eventToDomain maps a Calendar API event to the narrow internal shape.
func eventToDomain(event *calendar.Event) domain.CalendarEvent {
	start, allDay := parseEventTime(event.Start)
	end, _ := parseEventTime(event.End)

	return domain.CalendarEvent{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
		HTMLLink:    event.HtmlLink,
		Organizer:   getOrganizerEmail(event),
		Attendees:   attendeeNames(event.Attendees),
		Start:       start,
		End:         end,
		AllDay:      allDay,
	}
}

// attendeeNames prefers display names and falls back to email addresses.
func attendeeNames(attendees []*calendar.EventAttendee) []string {
	if len(attendees) == 0 {
		return nil
	}

	var names []string
	for _, a := range attendees {
		if a == nil {
			continue
		}
		if a.DisplayName != "" {
			names = append(names, a.DisplayName)
		} else if a.Email != "" {
			names = append(names, a.Email)
		}
	}
	return names
}

// parseEventTime reads a timed (DateTime) or all-day (Date) boundary.
// Unparseable values yield the zero time.
func parseEventTime(t *calendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, false
	}
	if t.Date != "" {
		parsed, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			return time.Time{}, true
		}
		return parsed, true
	}
	return time.Time{}, false
}

func getOrganizerEmail(event *calendar.Event) string {
	if event.Organizer != nil {
		return event.Organizer.Email
	}
	return ""
}

package calendar

import "time"

// PrimaryCalendarID addresses the authenticated user's primary calendar.
const PrimaryCalendarID = "primary"

// Config holds the event window requested from the Calendar API.
type Config struct {
	// CalendarID selects the calendar to read.
	CalendarID string
	// LookBack is how far before now the window starts.
	LookBack time.Duration
	// LookAhead is how far after now the window ends.
	LookAhead time.Duration
	// MaxResults caps the number of returned events.
	MaxResults int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CalendarID: PrimaryCalendarID,
		LookBack:   7 * 24 * time.Hour,
		LookAhead:  30 * 24 * time.Hour,
		MaxResults: 50,
	}
}

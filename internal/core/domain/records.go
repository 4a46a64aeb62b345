package domain

import (
	"sort"
	"time"
)

// ImportSource identifies the Google service records are imported from.
type ImportSource string

// Available import sources.
const (
	ImportSourceCalendar ImportSource = "calendar"
	ImportSourceGmail    ImportSource = "gmail"
	ImportSourceDrive    ImportSource = "drive"
)

// IsValid returns true if the import source is recognised.
func (s ImportSource) IsValid() bool {
	switch s {
	case ImportSourceCalendar, ImportSourceGmail, ImportSourceDrive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ImportSource) String() string {
	return string(s)
}

// AllImportSources returns all supported import sources.
func AllImportSources() []ImportSource {
	return []ImportSource{ImportSourceCalendar, ImportSourceGmail, ImportSourceDrive}
}

// CalendarEvent is a transient event read from the user's primary calendar.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status,omitempty"`
	HTMLLink    string    `json:"htmlLink,omitempty"`
	Organizer   string    `json:"organizer,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
}

// MailLabelType distinguishes Gmail's built-in labels from user-created ones.
type MailLabelType string

// Gmail label types.
const (
	MailLabelTypeSystem MailLabelType = "system"
	MailLabelTypeUser   MailLabelType = "user"
)

// MailLabel is a transient Gmail label.
type MailLabel struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           MailLabelType `json:"type"`
	MessagesTotal  int64         `json:"messagesTotal,omitempty"`
	MessagesUnread int64         `json:"messagesUnread,omitempty"`
}

// SortMailLabels orders labels with system labels first, then user labels,
// each group by name using byte-wise comparison. The sort is stable so
// labels with equal names keep their input order.
func SortMailLabels(labels []MailLabel) {
	sort.SliceStable(labels, func(i, j int) bool {
		si := labels[i].Type == MailLabelTypeSystem
		sj := labels[j].Type == MailLabelTypeSystem
		if si != sj {
			return si
		}
		return labels[i].Name < labels[j].Name
	})
}

// DriveFile is a transient Drive file.
type DriveFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	ModifiedTime time.Time `json:"modifiedTime"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
	IconLink     string    `json:"iconLink,omitempty"`
	Size         int64     `json:"size,omitempty"`
	IsFolder     bool      `json:"isFolder,omitempty"`
}

// ImportResult summarises a single import run.
type ImportResult struct {
	Source ImportSource `json:"source"`
	// Total is the number of records returned by the fetcher.
	Total int `json:"total"`
	// ImportedCount equals len(Workflows).
	ImportedCount int             `json:"importedCount"`
	Workflows     []Workflow      `json:"workflows"`
	Skipped       []SkippedRecord `json:"skipped"`
	Failed        []FailedRecord  `json:"failed"`
}

// SkippedRecord is a record that could not become a draft.
type SkippedRecord struct {
	RecordID string `json:"recordId"`
	Reason   string `json:"reason"`
}

// FailedRecord is a draft that could not be persisted.
type FailedRecord struct {
	RecordID string `json:"recordId"`
	Title    string `json:"title"`
	Error    string `json:"error"`
}

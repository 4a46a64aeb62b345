package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// Skip reasons reported for records that cannot become drafts.
const (
	reasonMissingTitle = "record has no title"
	reasonMissingName  = "record has no name"
	reasonFolder       = "record is a folder"
)

// reasonSaveFailed is reported for drafts that could not be persisted. The
// storage error itself is only logged.
const reasonSaveFailed = "could not save draft"

// skeleton is the shape of a draft before ids, owner and timestamps are assigned.
type skeleton struct {
	recordID    string
	title       string
	description string
	steps       []stepSpec
}

type stepSpec struct {
	title       string
	description string
}

// calendarSkeleton maps an event to a prepare, attend and follow-up workflow.
func calendarSkeleton(event domain.CalendarEvent) (*skeleton, string) {
	title := strings.TrimSpace(event.Summary)
	if title == "" {
		return nil, reasonMissingTitle
	}

	description := strings.TrimSpace(event.Description)
	if description == "" {
		description = fmt.Sprintf("Imported from calendar event on %s", formatEventDate(event))
	}

	attend := "Attend the event"
	if event.Location != "" {
		attend = fmt.Sprintf("Attend the event at %s", event.Location)
	}

	return &skeleton{
		recordID:    event.ID,
		title:       title,
		description: description,
		steps: []stepSpec{
			{title: "Prepare for " + title, description: "Review the agenda and gather materials before the event"},
			{title: title, description: attend},
			{title: "Follow up", description: "Send notes and agreed next steps to attendees"},
		},
	}, ""
}

func labelSkeleton(label domain.MailLabel) (*skeleton, string) {
	name := strings.TrimSpace(label.Name)
	if name == "" {
		return nil, reasonMissingName
	}
	return &skeleton{
		recordID:    label.ID,
		title:       name + " email workflow",
		description: fmt.Sprintf("Workflow for handling emails labelled %q", name),
		steps: []stepSpec{
			{title: "Process " + name + " emails", description: "Review, respond to and archive messages with this label"},
		},
	}, ""
}

func fileSkeleton(file domain.DriveFile) (*skeleton, string) {
	name := strings.TrimSpace(file.Name)
	if name == "" {
		return nil, reasonMissingName
	}
	if file.IsFolder {
		return nil, reasonFolder
	}
	description := fmt.Sprintf("Workflow for reviewing %q", name)
	if file.WebViewLink != "" {
		description += " (" + file.WebViewLink + ")"
	}
	return &skeleton{
		recordID:    file.ID,
		title:       name + " review",
		description: description,
		steps: []stepSpec{
			{title: "Review " + name, description: "Open the document and check it is complete and current"},
		},
	}, ""
}

func formatEventDate(event domain.CalendarEvent) string {
	if event.Start.IsZero() {
		return "an unknown date"
	}
	if event.AllDay {
		return event.Start.Format("2006-01-02")
	}
	return event.Start.Format(time.RFC3339)
}

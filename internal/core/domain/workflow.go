package domain

import "time"

// WorkflowStatus is the lifecycle state of a workflow template.
type WorkflowStatus string

// Workflow statuses.
const (
	// WorkflowStatusDraft marks workflows generated by an import and awaiting review.
	WorkflowStatusDraft WorkflowStatus = "draft"

	// WorkflowStatusActive marks workflows ready for use with clients.
	WorkflowStatusActive WorkflowStatus = "active"
)

// IsValid returns true if the status is recognised.
func (s WorkflowStatus) IsValid() bool {
	return s == WorkflowStatusDraft || s == WorkflowStatusActive
}

// Workflow is a template of ordered steps owned by a provider.
type Workflow struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Steps       []WorkflowStep `json:"steps"`
	OwnerID     string         `json:"ownerId"`
	IsPublic    bool           `json:"isPublic"`
	UsageCount  int            `json:"usageCount"`
	Status      WorkflowStatus `json:"status"`

	// Source records where an imported workflow came from. Empty for hand-made workflows.
	Source ImportSource `json:"source,omitempty"`
	// SourceRef is the id of the record the workflow was derived from.
	SourceRef string `json:"sourceRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkflowStep is a single ordered step of a workflow.
type WorkflowStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Order is 1-based and strictly increasing within a workflow.
	Order int `json:"order"`
}

// CanView returns true if the user may read the workflow.
func (w *Workflow) CanView(userID string) bool {
	return w.IsPublic || w.OwnerID == userID
}

// IsOwner returns true if the user owns the workflow.
func (w *Workflow) IsOwner(userID string) bool {
	return w.OwnerID == userID
}

package driven

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// WorkflowStore persists workflow templates.
type WorkflowStore interface {
	// Create stores a new workflow. The ID must be set by the caller.
	Create(ctx context.Context, workflow *domain.Workflow) error

	// Get retrieves a workflow by ID.
	// Returns domain.ErrNotFound if the workflow does not exist.
	Get(ctx context.Context, id string) (*domain.Workflow, error)

	// ListByOwner returns the owner's workflows, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Workflow, error)

	// IncrementUsage atomically adds one to the workflow's usage counter.
	IncrementUsage(ctx context.Context, id string) error
}

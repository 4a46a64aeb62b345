package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// WorkflowService exposes workflows for review.
type WorkflowService interface {
	// ListMine returns the caller's workflows.
	ListMine(ctx context.Context, userID string) ([]domain.Workflow, error)

	// View returns a workflow the caller may see. Viewing someone else's
	// public workflow increments its usage counter.
	View(ctx context.Context, userID, workflowID string) (*domain.Workflow, error)
}

package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowService = (*WorkflowService)(nil)

// WorkflowService exposes workflows for review.
type WorkflowService struct {
	store driven.WorkflowStore
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(store driven.WorkflowStore) *WorkflowService {
	return &WorkflowService{store: store}
}

// ListMine returns the caller's workflows.
func (s *WorkflowService) ListMine(ctx context.Context, userID string) ([]domain.Workflow, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.ListByOwner(ctx, userID)
}

// View returns the workflow if the caller may see it.
// Private workflows of other users are forbidden.
func (s *WorkflowService) View(ctx context.Context, userID, workflowID string) (*domain.Workflow, error) {
	if workflowID == "" {
		return nil, domain.ErrInvalidInput
	}
	workflow, err := s.store.Get(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(userID) {
		return nil, domain.ErrForbidden
	}
	if !workflow.IsOwner(userID) {
		if err := s.store.IncrementUsage(ctx, workflowID); err != nil {
			logger.With(zap.String("workflow_id", workflowID)).Warn("usage increment failed", zap.Error(err))
		} else {
			workflow.UsageCount++
		}
	}
	return workflow, nil
}

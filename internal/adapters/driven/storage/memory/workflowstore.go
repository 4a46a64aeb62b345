package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure WorkflowStore implements the interface.
var _ driven.WorkflowStore = (*WorkflowStore)(nil)

// WorkflowStore is an in-memory implementation of driven.WorkflowStore.
type WorkflowStore struct {
	mu        sync.RWMutex
	workflows map[string]domain.Workflow
}

// NewWorkflowStore creates a new in-memory workflow store.
func NewWorkflowStore() *WorkflowStore {
	return &WorkflowStore{
		workflows: make(map[string]domain.Workflow),
	}
}

// Create stores a new workflow.
func (s *WorkflowStore) Create(_ context.Context, workflow *domain.Workflow) error {
	if workflow == nil || workflow.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[workflow.ID] = copyWorkflow(*workflow)
	return nil
}

// Get retrieves a workflow by ID.
func (s *WorkflowStore) Get(_ context.Context, id string) (*domain.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	w := copyWorkflow(workflow)
	return &w, nil
}

// ListByOwner returns the owner's workflows, newest first.
func (s *WorkflowStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Workflow, 0)
	for _, workflow := range s.workflows {
		if workflow.OwnerID == ownerID {
			result = append(result, copyWorkflow(workflow))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// IncrementUsage adds one to the workflow's usage counter.
func (s *WorkflowStore) IncrementUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return domain.ErrNotFound
	}
	workflow.UsageCount++
	s.workflows[id] = workflow
	return nil
}

func copyWorkflow(workflow domain.Workflow) domain.Workflow {
	workflow.Steps = append([]domain.WorkflowStep(nil), workflow.Steps...)
	return workflow
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workflowhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func seedWorkflows(t *testing.T) *memory.WorkflowStore {
	t.Helper()
	store := memory.NewWorkflowStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.Workflow{ID: "private", OwnerID: "owner"}))
	require.NoError(t, store.Create(ctx, &domain.Workflow{ID: "public", OwnerID: "owner", IsPublic: true}))
	return store
}

func TestWorkflowService_ListMine(t *testing.T) {
	s := NewWorkflowService(seedWorkflows(t))
	ctx := context.Background()

	mine, err := s.ListMine(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := s.ListMine(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ListMine(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestWorkflowService_View_UsageCounter(t *testing.T) {
	store := seedWorkflows(t)
	s := NewWorkflowService(store)
	ctx := context.Background()

	// Owner views never count.
	w, err := s.View(ctx, "owner", "public")
	require.NoError(t, err)
	assert.Equal(t, 0, w.UsageCount)

	w, err = s.View(ctx, "stranger", "public")
	require.NoError(t, err)
	assert.Equal(t, 1, w.UsageCount)

	_, err = s.View(ctx, "another", "public")
	require.NoError(t, err)

	stored, err := store.Get(ctx, "public")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsageCount)
}

func TestWorkflowService_View_Private(t *testing.T) {
	store := seedWorkflows(t)
	s := NewWorkflowService(store)
	ctx := context.Background()

	w, err := s.View(ctx, "owner", "private")
	require.NoError(t, err)
	assert.Equal(t, "private", w.ID)

	_, err = s.View(ctx, "stranger", "private")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := store.Get(ctx, "private")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UsageCount)
}

func TestWorkflowService_View_Errors(t *testing.T) {
	s := NewWorkflowService(seedWorkflows(t))
	ctx := context.Background()

	_, err := s.View(ctx, "owner", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.View(ctx, "owner", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

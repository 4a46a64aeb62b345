package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// workflowStore implements driven.WorkflowStore.
type workflowStore struct {
	store *Store
}

var _ driven.WorkflowStore = (*workflowStore)(nil)

const workflowColumns = `id, owner_id, title, description, steps, is_public, usage_count,
	status, source, source_ref, created_at, updated_at`

// Create stores a new workflow.
func (s *workflowStore) Create(ctx context.Context, workflow *domain.Workflow) error {
	if workflow == nil || workflow.ID == "" {
		return domain.ErrInvalidInput
	}

	steps := workflow.Steps
	if steps == nil {
		steps = []domain.WorkflowStep{}
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("marshalling steps: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO workflows (`+workflowColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, workflow.ID, workflow.OwnerID, workflow.Title, workflow.Description, string(stepsJSON),
		workflow.IsPublic, workflow.UsageCount, string(workflow.Status), string(workflow.Source),
		workflow.SourceRef, workflow.CreatedAt.UTC(), workflow.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting workflow: %w", err)
	}
	return nil
}

// Get retrieves a workflow by ID.
func (s *workflowStore) Get(ctx context.Context, id string) (*domain.Workflow, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+workflowColumns+" FROM workflows WHERE id = ?", id)
	workflow, err := scanWorkflow(row)
	if err != nil {
		return nil, err
	}
	return workflow, nil
}

// ListByOwner returns the owner's workflows, newest first.
func (s *workflowStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Workflow, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+workflowColumns+" FROM workflows WHERE owner_id = ? ORDER BY created_at DESC, id ASC",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying workflows: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Workflow, 0)
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *workflow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workflows: %w", err)
	}
	return result, nil
}

// IncrementUsage adds one to the usage counter in a single statement.
func (s *workflowStore) IncrementUsage(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE workflows SET usage_count = usage_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("incrementing usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incrementing usage: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row rowScanner) (*domain.Workflow, error) {
	var workflow domain.Workflow
	var stepsJSON, status, source string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&workflow.ID, &workflow.OwnerID, &workflow.Title, &workflow.Description,
		&stepsJSON, &workflow.IsPublic, &workflow.UsageCount, &status, &source,
		&workflow.SourceRef, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning workflow: %w", err)
	}

	if err := json.Unmarshal([]byte(stepsJSON), &workflow.Steps); err != nil {
		return nil, fmt.Errorf("unmarshalling steps: %w", err)
	}
	workflow.Status = domain.WorkflowStatus(status)
	workflow.Source = domain.ImportSource(source)
	if createdAt.Valid {
		workflow.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		workflow.UpdatedAt = updatedAt.Time
	}
	return &workflow, nil
}

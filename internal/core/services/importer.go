package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService converts Google records into private draft workflows.
// Each call is additive: records imported earlier are imported again.
type ImportService struct {
	integration driving.IntegrationService
	workflows   driven.WorkflowStore
	newID       func() string
	now         func() time.Time
}

// NewImportService creates a new import service.
func NewImportService(integration driving.IntegrationService, workflows driven.WorkflowStore) *ImportService {
	return &ImportService{
		integration: integration,
		workflows:   workflows,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// ImportFrom fetches records from source and persists one draft per usable record.
func (s *ImportService) ImportFrom(
	ctx context.Context,
	source domain.ImportSource,
	userID string,
) (*domain.ImportResult, error) {
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, source)
	}

	skeletons, skipped, total, err := s.collect(ctx, source, userID)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{
		Source:    source,
		Total:     total,
		Workflows: make([]domain.Workflow, 0, len(skeletons)),
		Skipped:   skipped,
		Failed:    []domain.FailedRecord{},
	}

	var errs error
	for _, sk := range skeletons {
		workflow := s.build(sk, source, userID)
		if err := s.workflows.Create(ctx, &workflow); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %s: %w", sk.recordID, err))
			result.Failed = append(result.Failed, domain.FailedRecord{
				RecordID: sk.recordID,
				Title:    workflow.Title,
				Error:    reasonSaveFailed,
			})
			continue
		}
		result.Workflows = append(result.Workflows, workflow)
	}
	result.ImportedCount = len(result.Workflows)

	log := logger.With(zap.String("user_id", userID), zap.String("source", source.String()))
	if errs != nil {
		log.Warn("some drafts were not saved",
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Error(errs))
	}
	log.Info("import complete",
		zap.Int("total", result.Total),
		zap.Int("imported", result.ImportedCount),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// collect fetches records and maps them to skeletons, recording skips.
func (s *ImportService) collect(
	ctx context.Context,
	source domain.ImportSource,
	userID string,
) ([]*skeleton, []domain.SkippedRecord, int, error) {
	var (
		skeletons []*skeleton
		skipped   = []domain.SkippedRecord{}
	)
	add := func(id string, sk *skeleton, reason string) {
		if sk == nil {
			logger.Debug("Skipping %s record %s: %s", source, id, reason)
			skipped = append(skipped, domain.SkippedRecord{RecordID: id, Reason: reason})
			return
		}
		skeletons = append(skeletons, sk)
	}

	switch source {
	case domain.ImportSourceCalendar:
		events, err := s.integration.CalendarEvents(ctx, userID)
		if err != nil {
			return nil, nil, 0, err
		}
		for _, event := range events {
			sk, reason := calendarSkeleton(event)
			add(event.ID, sk, reason)
		}
		return skeletons, skipped, len(events), nil

	case domain.ImportSourceGmail:
		labels, err := s.integration.MailLabels(ctx, userID)
		if err != nil {
			return nil, nil, 0, err
		}
		for _, label := range labels {
			sk, reason := labelSkeleton(label)
			add(label.ID, sk, reason)
		}
		return skeletons, skipped, len(labels), nil

	case domain.ImportSourceDrive:
		files, err := s.integration.DriveFiles(ctx, userID)
		if err != nil {
			return nil, nil, 0, err
		}
		for _, file := range files {
			sk, reason := fileSkeleton(file)
			add(file.ID, sk, reason)
		}
		return skeletons, skipped, len(files), nil
	}

	return nil, nil, 0, domain.ErrUnsupportedSource
}

func (s *ImportService) build(sk *skeleton, source domain.ImportSource, userID string) domain.Workflow {
	now := s.now()
	steps := make([]domain.WorkflowStep, len(sk.steps))
	for i, step := range sk.steps {
		steps[i] = domain.WorkflowStep{
			ID:          s.newID(),
			Title:       step.title,
			Description: step.description,
			Order:       i + 1,
		}
	}
	return domain.Workflow{
		ID:          s.newID(),
		Title:       sk.title,
		Description: sk.description,
		Steps:       steps,
		OwnerID:     userID,
		IsPublic:    false,
		Status:      domain.WorkflowStatusDraft,
		Source:      source,
		SourceRef:   sk.recordID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

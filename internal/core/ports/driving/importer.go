package driving

import (
	"context"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// ImportService turns Google records into private draft workflows.
type ImportService interface {
	// ImportFrom fetches records from the source and persists one draft per usable record.
	// Persistence failures are reported in the result, not as an error.
	ImportFrom(ctx context.Context, source domain.ImportSource, userID string) (*domain.ImportResult, error)
}

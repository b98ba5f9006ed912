package reports

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrJobQueueNotConfigured = errors.New("job queue not configured")
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeConsistency = "CONSISTENCY_ERROR"
	ErrorCodeStorage     = "STORAGE_ERROR"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

// ConsistencyError reports referential integrity violations found while
// assembling a report. It always indicates a bug, never bad user input.
type ConsistencyError struct {
	Issues []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("report inconsistent: %s", strings.Join(e.Issues, "; "))
}

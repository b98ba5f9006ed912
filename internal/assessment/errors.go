package assessment

import (
	"fmt"
	"strings"
)

// FieldIssue describes one rejected field value.
type FieldIssue struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError reports malformed or out-of-domain submission input.
// It stops processing before any engine component runs.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid submission"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Value != "" {
			parts = append(parts, fmt.Sprintf("%s=%q: %s", issue.Field, issue.Value, issue.Reason))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Reason))
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

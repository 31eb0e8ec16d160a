package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes and run summaries are rendered
type FileFormatter interface {
	// FormatFileOperation formats the outcome for one file
	FormatFileOperation(info FileInfo) string

	// FormatSummary formats the end-of-run summary
	FormatSummary(report *Report) string
}

// DefaultFileFormatter provides the plain text format printed by the CLI
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusModified:
		return fmt.Sprintf("Updated: %s", info.Path)
	case StatusFailed:
		if info.Error != nil {
			return fmt.Sprintf("Failed: %s: %v", info.Path, info.Error)
		}
		return fmt.Sprintf("Failed: %s", info.Path)
	default:
		return fmt.Sprintf("Unchanged: %s", info.Path)
	}
}

// FormatSummary formats the file counts of a run
func (f *DefaultFileFormatter) FormatSummary(report *Report) string {
	if report == nil {
		return "no files scanned"
	}

	noun := "files"
	if len(report.Modified) == 1 {
		noun = "file"
	}
	msg := fmt.Sprintf("%d %s updated (%d scanned)", len(report.Modified), noun, report.Scanned)
	if len(report.Failed) > 0 {
		msg += fmt.Sprintf(", %d failed", len(report.Failed))
	}
	return msg
}

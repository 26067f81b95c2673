package status

import (
	"fmt"
)

// FileFormatter defines how file status should be formatted
type FileFormatter interface {
	// FormatFileOperation formats a single written file
	FormatFileOperation(info FileInfo) string

	// FormatSummary formats the totals of a run
	FormatSummary(created, modified, unchanged int, dryRun bool) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file operation status message with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	verb := ""
	switch info.Status {
	case StatusNew:
		verb = "✨ Created"
	case StatusModified:
		verb = "📝 Modified"
	case StatusUnchanged:
		verb = "👍 Unchanged"
	default:
		verb = "❔ Wrote"
	}
	if info.DryRun {
		return fmt.Sprintf("%s %s (dry run)", verb, info.Path)
	}
	return fmt.Sprintf("%s %s", verb, info.Path)
}

// FormatSummary formats the totals of a run
func (f *DefaultFileFormatter) FormatSummary(created, modified, unchanged int, dryRun bool) string {
	total := created + modified + unchanged
	if dryRun {
		return fmt.Sprintf("would write %d files (%d new, %d modified, %d unchanged)", total, created, modified, unchanged)
	}
	return fmt.Sprintf("wrote %d files (%d new, %d modified, %d unchanged)", total, created, modified, unchanged)
}

package status

import (
	"fmt"
)

// FileFormatter turns file outcomes into one-line messages
type FileFormatter interface {
	// FormatResult formats the outcome of one file
	FormatResult(r FileResult) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatResult(r FileResult) string {
	if r.Err != nil {
		return fmt.Sprintf("❌ Failed %s: %v", r.Path, r.Err)
	}
	switch r.Status {
	case StatusFixed:
		return fmt.Sprintf("📝 Fixed %s (%s)", r.Path, pluralChanges(r.Changes))
	case StatusWouldFix:
		return fmt.Sprintf("🔍 Would fix %s (%s)", r.Path, pluralChanges(r.Changes))
	case StatusRestored:
		return fmt.Sprintf("♻️  Restored %s", r.Path)
	case StatusRemoved:
		return fmt.Sprintf("🗑️  Removed %s", r.Path)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", r.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", r.Path)
	}
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func pluralChanges(n int) string {
	if n == 1 {
		return "1 change"
	}
	return fmt.Sprintf("%d changes", n)
}

package status

import (
	"fmt"

	"github.com/walteh/findrep/pkg/operation"
)

// Formatter defines how progress and outcomes are worded
type Formatter interface {
	// FormatProgress formats a progress message
	FormatProgress(p operation.Progress) string

	// FormatOutcome formats the final summary of a run
	FormatOutcome(o operation.Outcome, replace bool) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(p operation.Progress) string {
	if p.Index+1 >= p.Total {
		return fmt.Sprintf("✅ Progress: %d/%d (%d%%)", p.Index+1, p.Total, p.Percent)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%d%%)", p.Index+1, p.Total, p.Percent)
}

// FormatOutcome summarises a finished run
func (f *DefaultFormatter) FormatOutcome(o operation.Outcome, replace bool) string {
	verb := "found"
	if replace {
		verb = "replaced"
	}

	switch o.State {
	case operation.StateCompleted:
		return fmt.Sprintf("%d of %d files matched, %d occurrences %s", o.Matched, o.Total, o.Replacements, verb)
	case operation.StateCancelled:
		if o.Total == 0 {
			return "no files matched the include pattern"
		}
		return fmt.Sprintf("cancelled after %d of %d files, %d occurrences %s", o.Processed, o.Total, o.Replacements, verb)
	case operation.StateFailed:
		return f.FormatError(o.Err)
	default:
		return o.State.String()
	}
}

// FormatError formats an error message
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("run failed: %v", err)
}

package validation

import "github.com/addonreview/cachelint/errors"

// ErrSkipFix is returned by a Prompter when the user chooses to skip a fix.
const ErrSkipFix = errors.Error("fix skipped by user")

// Prompter collects user input for fixes.
type Prompter interface {
	// PromptFix presents an interactive fix and returns responses matching fix.Prompts().
	// Returning ErrSkipFix, possibly wrapped, skips the fix.
	PromptFix(finding *Violation, fix Fix) ([]string, error)

	// Confirm asks the user a yes/no question.
	Confirm(message string) (bool, error)
}

package validation

// PromptType describes what kind of user input a fix needs.
type PromptType int

const (
	// PromptChoice indicates the fix requires selecting from a list of options.
	PromptChoice PromptType = iota
	// PromptFreeText indicates the fix requires free-form text input.
	PromptFreeText
)

// Prompt describes a single piece of input a fix needs from the user.
type Prompt struct {
	// Type is the kind of input needed.
	Type PromptType
	// Message is a human-readable description of what input is needed and why.
	Message string
	// Choices is the list of valid choices when Type is PromptChoice.
	Choices []string
	// Default is an optional default value.
	Default string
}

// Edit replaces the bytes of a source in [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Overlaps reports whether e and other touch the same bytes. Two insertions at the same offset overlap.
func (e Edit) Overlaps(other Edit) bool {
	if e.Start == other.Start {
		return true
	}
	return e.Start < other.End && other.Start < e.End
}

// Fix is a suggested source rewrite for a violation.
// Interactive fixes must have SetInput called with the user's responses before Apply.
type Fix interface {
	// Description returns a human-readable description of what the fix does.
	Description() string

	// Interactive returns true if the fix requires user input before being applied.
	Interactive() bool

	// Prompts returns the input prompts needed for this fix, nil for non-interactive fixes.
	Prompts() []Prompt

	// SetInput provides user responses matching Prompts one to one.
	SetInput(responses []string) error

	// Apply computes the edit for src, the unmodified text the violation was reported against.
	Apply(src string) (Edit, error)
}

// ChangeDescriber is implemented by fixes that can describe their change as before and after text.
type ChangeDescriber interface {
	DescribeChange() (before, after string)
}

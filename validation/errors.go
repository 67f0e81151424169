package validation

import (
	"fmt"
	"maps"
)

// Severity classifies how serious a violation is.
type Severity string

const (
	// SeverityBlocker marks a violation that must be fixed before release.
	SeverityBlocker Severity = "blocker"
	// SeverityRecommend marks a finding that should be reviewed.
	SeverityRecommend Severity = "recommend"
)

func (s Severity) String() string {
	return string(s)
}

// Rank orders severities from most to least serious.
func (s Severity) Rank() int {
	switch s {
	case SeverityBlocker:
		return 0
	case SeverityRecommend:
		return 1
	default:
		return 2
	}
}

// Violation is a single finding produced by a rule.
// Line and Column are 1-based, Column counts UTF-16 code units.
type Violation struct {
	File      string            `json:"file,omitempty"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"endLine,omitempty"`
	EndColumn int               `json:"endColumn,omitempty"`
	Message   string            `json:"message"`
	Rule      string            `json:"rule"`
	Severity  Severity          `json:"severity"`
	Data      map[string]string `json:"data,omitempty"`

	// Fix overrides the fix registered for the rule, if any.
	Fix Fix `json:"-"`
}

var _ error = (*Violation)(nil)

func (v *Violation) Error() string {
	if v.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", v.File, v.Line, v.Column, v.Severity, v.Message)
	}
	return fmt.Sprintf("[%d:%d] [%s] %s", v.Line, v.Column, v.Severity, v.Message)
}

// WithFile returns a copy of the violation attributed to file.
func (v *Violation) WithFile(file string) *Violation {
	c := *v
	c.File = file
	c.Data = maps.Clone(v.Data)
	return &c
}

// Diagnostic reports a problem with a file that is not a rule violation, such as a parse failure or
// an abandoned analysis.
type Diagnostic struct {
	File   string
	Line   int
	Column int
	Err    error
}

var _ error = (*Diagnostic)(nil)

func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", d.File, d.Line, d.Column, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.File, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

package linter

import (
	"errors"

	"github.com/addonreview/cachelint/linter/format"
	"github.com/addonreview/cachelint/validation"
)

// Output represents the result of linting
type Output struct {
	// Results holds *validation.Violation and *validation.Diagnostic values ordered by file.
	Results []error
	// Files are the paths that were analyzed.
	Files  []string
	Format OutputFormat
}

// HasBlockers reports whether any blocker violation was found.
func (o *Output) HasBlockers() bool {
	return o.BlockerCount() > 0
}

func (o *Output) BlockerCount() int {
	return o.countSeverity(validation.SeverityBlocker)
}

func (o *Output) RecommendCount() int {
	return o.countSeverity(validation.SeverityRecommend)
}

func (o *Output) countSeverity(severity validation.Severity) int {
	count := 0
	for _, v := range o.Violations() {
		if v.Severity == severity {
			count++
		}
	}
	return count
}

// Violations returns the rule violations in result order.
func (o *Output) Violations() []*validation.Violation {
	var violations []*validation.Violation
	for _, err := range o.Results {
		var v *validation.Violation
		if errors.As(err, &v) {
			violations = append(violations, v)
		}
	}
	return violations
}

// Diagnostics returns the per-file problems that are not rule violations.
func (o *Output) Diagnostics() []*validation.Diagnostic {
	var diagnostics []*validation.Diagnostic
	for _, err := range o.Results {
		var d *validation.Diagnostic
		if errors.As(err, &d) {
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

// FormatWith renders the results with f.
func (o *Output) FormatWith(f format.Formatter) (string, error) {
	return f.Format(o.Results)
}

func (o *Output) FormatText() string {
	s, _ := o.FormatWith(format.NewTextFormatter())
	return s
}

func (o *Output) FormatJSON() string {
	s, _ := o.FormatWith(format.NewJSONFormatter())
	return s
}

// Formatter returns the formatter for the configured output format.
func (o *Output) Formatter() format.Formatter {
	switch o.Format {
	case OutputFormatText:
		return format.NewTextFormatter()
	case OutputFormatJSON:
		return format.NewJSONFormatter()
	case OutputFormatGitHub:
		return format.NewGitHubFormatter(len(o.Files))
	case OutputFormatSARIF:
		return format.NewSARIFFormatter()
	default:
		return format.NewConsoleFormatter(len(o.Files))
	}
}

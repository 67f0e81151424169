package format

import (
	"errors"

	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/validation"
)

const (
	ruleParseError = "parse-error"
	ruleDiagnostic = "diagnostic"
	ruleInternal   = "internal"

	severityWarning = "warning"
	severityError   = "error"
)

type entryKind int

const (
	kindViolation entryKind = iota
	kindDiagnostic
	kindInternal
)

// entry is the formatter view of a single result.
type entry struct {
	kind      entryKind
	file      string
	line      int
	column    int
	endLine   int
	endColumn int
	rule      string
	category  string
	severity  string
	message   string
	data      map[string]string
}

type counts struct {
	blockers    int
	recommends  int
	diagnostics int
	internal    int
}

func (c counts) total() int {
	return c.blockers + c.recommends + c.diagnostics + c.internal
}

var ruleCategories = func() map[string]string {
	categories := make(map[string]string)
	for _, rule := range rules.Default() {
		categories[rule.ID()] = rule.Category()
	}
	return categories
}()

func toEntries(results []error) ([]entry, counts) {
	entries := make([]entry, 0, len(results))
	var c counts

	for _, err := range results {
		var v *validation.Violation
		var d *validation.Diagnostic

		switch {
		case errors.As(err, &v):
			category, ok := ruleCategories[v.Rule]
			if !ok {
				category = "unknown"
			}
			entries = append(entries, entry{
				kind:      kindViolation,
				file:      v.File,
				line:      v.Line,
				column:    v.Column,
				endLine:   v.EndLine,
				endColumn: v.EndColumn,
				rule:      v.Rule,
				category:  category,
				severity:  v.Severity.String(),
				message:   v.Message,
				data:      v.Data,
			})
			switch v.Severity {
			case validation.SeverityBlocker:
				c.blockers++
			case validation.SeverityRecommend:
				c.recommends++
			}
		case errors.As(err, &d):
			rule := ruleDiagnostic
			if errors.Is(d.Err, jsparser.ErrParse) {
				rule = ruleParseError
			}
			msg := "unknown problem"
			if d.Err != nil {
				msg = d.Err.Error()
			}
			entries = append(entries, entry{
				kind:     kindDiagnostic,
				file:     d.File,
				line:     d.Line,
				column:   d.Column,
				rule:     rule,
				category: ruleDiagnostic,
				severity: severityWarning,
				message:  msg,
			})
			c.diagnostics++
		default:
			entries = append(entries, entry{
				kind:     kindInternal,
				rule:     ruleInternal,
				category: ruleInternal,
				severity: severityError,
				message:  err.Error(),
			})
			c.internal++
		}
	}

	return entries, c
}

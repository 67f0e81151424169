package rules

import (
	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/validation"
	"github.com/dop251/goja/ast"
	"golang.org/x/text/language"
)

// Context carries what rules need while checking a single unit.
// A Context belongs to one analysis and must not be shared between goroutines.
type Context struct {
	Unit     *jsparser.Unit
	Pattern  *Pattern
	Language language.Tag

	collector validation.Collector
}

// NewContext creates a context for checking unit against pattern with English messages.
func NewContext(unit *jsparser.Unit, pattern *Pattern) *Context {
	return &Context{
		Unit:     unit,
		Pattern:  pattern,
		Language: language.English,
	}
}

// Report records a violation of rule located at node and returns it.
func (rc *Context) Report(rule Rule, node ast.Node, data map[string]string) *validation.Violation {
	loc := rc.Unit.Location(node)

	v := &validation.Violation{
		File:      rc.Unit.Filename(),
		Line:      loc.Start.Line,
		Column:    loc.Start.Column,
		EndLine:   loc.End.Line,
		EndColumn: loc.End.Column,
		Message:   LocalizedMessageFor(rc.Language, rule.ID(), data),
		Rule:      rule.ID(),
		Severity:  rule.DefaultSeverity(),
		Data:      data,
	}
	rc.collector.Add(v)

	return v
}

// Violations returns the violations reported so far in report order.
func (rc *Context) Violations() []*validation.Violation {
	return rc.collector.Violations()
}

package rules

import (
	"fmt"
	"strings"

	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/validation"
)

// ErrFixNotApplicable is returned when a fix cannot be applied to the source it was reported against.
const ErrFixNotApplicable = errors.Error("fix not applicable")

// InsertSegmentFix rewrites a literal platform URL so the required segment follows the host.
// Start and End delimit the literal including its quotes.
type InsertSegmentFix struct {
	Start   jsparser.Position
	End     jsparser.Position
	URL     string
	Segment string
}

var (
	_ validation.Fix             = (*InsertSegmentFix)(nil)
	_ validation.ChangeDescriber = (*InsertSegmentFix)(nil)
)

func (f *InsertSegmentFix) Description() string {
	return fmt.Sprintf("insert %s after the host", f.Segment)
}

func (f *InsertSegmentFix) Interactive() bool            { return false }
func (f *InsertSegmentFix) Prompts() []validation.Prompt { return nil }
func (f *InsertSegmentFix) SetInput(_ []string) error    { return nil }

func (f *InsertSegmentFix) DescribeChange() (string, string) {
	return f.URL, WithSegment(f.URL, f.Segment)
}

// Apply replaces the literal's text when it still spells out URL verbatim. Literals containing escape
// sequences are left alone.
func (f *InsertSegmentFix) Apply(src string) (validation.Edit, error) {
	start, ok := jsparser.Offset(src, f.Start)
	if !ok {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("position %s is outside the source", f.Start)
	}
	end, ok := jsparser.Offset(src, f.End)
	if !ok {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("position %s is outside the source", f.End)
	}
	if end-start < 2 {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("span %s-%s cannot hold a string literal", f.Start, f.End)
	}

	lit, ok := jsparser.LiteralAt(src, start)
	if !ok || lit.End != end {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("no string literal at %s", f.Start)
	}
	if lit.Text != f.URL {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("literal at %s does not match %q", f.Start, f.URL)
	}

	if strings.ContainsAny(f.Segment, string(lit.Quote)+"\\\n") || (lit.Quote == '`' && strings.ContainsAny(f.Segment, "${")) {
		return validation.Edit{}, ErrFixNotApplicable.Wrapf("segment %q cannot be written inside %c quotes", f.Segment, lit.Quote)
	}

	return validation.Edit{Start: lit.Start + 1, End: lit.End - 1, Text: WithSegment(f.URL, f.Segment)}, nil
}

// InsertSegmentFixFor rebuilds the fix for a missing-cache-segment violation from its location and
// message data. It returns nil for other violations.
func InsertSegmentFixFor(v *validation.Violation) validation.Fix {
	if v.Rule != validation.RuleMissingCacheSegment || v.Data[DataURL] == "" || v.Data[DataSegment] == "" {
		return nil
	}
	return &InsertSegmentFix{
		Start:   jsparser.Position{Line: v.Line, Column: v.Column},
		End:     jsparser.Position{Line: v.EndLine, Column: v.EndColumn},
		URL:     v.Data[DataURL],
		Segment: v.Data[DataSegment],
	}
}

// WithSegment inserts segment directly after the host of rawURL, keeping the rest of the path, the
// query and the fragment.
func WithSegment(rawURL, segment string) string {
	prefix, rest := "", rawURL
	switch i := strings.Index(rest, "://"); {
	case i >= 0:
		prefix, rest = rest[:i+3], rest[i+3:]
	case strings.HasPrefix(rest, "//"):
		prefix, rest = "//", rest[2:]
	}

	authority, tail := rest, ""
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority, tail = rest[:i], rest[i:]
	}

	return prefix + authority + "/" + strings.Trim(segment, "/") + "/" + strings.TrimPrefix(tail, "/")
}

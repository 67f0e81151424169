package format

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// SummaryFormatter formats results as a per-rule summary table.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

type ruleSummary struct {
	rule     string
	category string
	severity string
	count    int
}

// Format outputs a per-rule summary table sorted by count descending.
func (f *SummaryFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	byRule := make(map[string]*ruleSummary)
	for _, e := range entries {
		rs, ok := byRule[e.rule]
		if !ok {
			rs = &ruleSummary{
				rule:     e.rule,
				category: e.category,
				severity: e.severity,
			}
			byRule[e.rule] = rs
		}
		rs.count++
	}

	sorted := slices.SortedFunc(maps.Values(byRule), func(a, b *ruleSummary) int {
		return cmp.Or(cmp.Compare(b.count, a.count), strings.Compare(a.rule, b.rule))
	})

	divider := strings.Repeat("─", 60) + "\n"

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-30s %9s %10s %8s\n", "Rule", "Severity", "Category", "Count")
	sb.WriteString(divider)

	for _, rs := range sorted {
		fmt.Fprintf(&sb, "%-30s %9s %10s %8d\n", rs.rule, rs.severity, rs.category, rs.count)
	}

	sb.WriteString(divider)
	fmt.Fprintf(&sb, "✖ %d problems (%d blockers, %d recommendations, %d diagnostics) across %d rules\n",
		c.total(), c.blockers, c.recommends, c.diagnostics+c.internal, len(byRule))

	return sb.String(), nil
}

package validation

import "slices"

// Collector accumulates violations in the order they are reported.
// It is not safe for concurrent use; each analysis owns its own collector.
type Collector struct {
	violations []*Violation
}

// Add appends v. Duplicates are kept.
func (c *Collector) Add(v *Violation) {
	if v == nil {
		return
	}
	c.violations = append(c.violations, v)
}

// Len returns the number of collected violations.
func (c *Collector) Len() int {
	return len(c.violations)
}

// Violations returns a copy of the collected violations in report order.
func (c *Collector) Violations() []*Violation {
	return slices.Clone(c.violations)
}

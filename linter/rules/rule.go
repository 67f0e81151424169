package rules

import (
	"github.com/addonreview/cachelint/validation"
	"github.com/addonreview/cachelint/walk"
	"github.com/dop251/goja/ast"
)

// Rule represents a single pattern matcher
type Rule interface {
	// ID returns the stable identifier for this rule (e.g., "missing-cache-segment")
	ID() string

	// Category returns the rule category (e.g., "caching")
	Category() string

	// Description returns a human-readable description of what the rule checks
	Description() string

	// Summary returns a short summary of what the rule checks
	Summary() string

	// Link returns an optional URL to documentation for this rule
	Link() string

	// DefaultSeverity returns the severity attached to violations of this rule
	DefaultSeverity() validation.Severity

	// Kinds returns the node kinds the rule inspects
	Kinds() []walk.Kind

	// Check inspects a node of one of the registered kinds and reports violations through rc.
	// It must not retain node or parent after returning.
	Check(rc *Context, node, parent ast.Node)
}

// DocumentedRule provides extended documentation for a rule
type DocumentedRule interface {
	Rule

	// GoodExample returns a script showing correct usage
	GoodExample() string

	// BadExample returns a script showing incorrect usage
	BadExample() string

	// Rationale explains why this rule exists
	Rationale() string
}

// Default returns the built-in rules in registration order.
func Default() []Rule {
	return []Rule{
		&MissingCacheSegmentRule{},
		&RawTransportConstructionRule{},
	}
}

// Handlers builds the walk dispatch table for rules. Rules registered for the same kind run in
// registration order.
func Handlers(rc *Context, rules []Rule) walk.Handlers {
	handlers := walk.Handlers{}

	for _, rule := range rules {
		for _, kind := range rule.Kinds() {
			handlers[kind] = chain(handlers[kind], bind(rc, rule))
		}
	}

	return handlers
}

func bind(rc *Context, rule Rule) walk.HandlerFunc {
	return func(node, parent ast.Node) {
		rule.Check(rc, node, parent)
	}
}

// chain runs first and then next on every node. A panic in one does not stop the other; the first
// panic is raised again once both ran so the walker still observes it.
func chain(first, next walk.HandlerFunc) walk.HandlerFunc {
	if first == nil {
		return next
	}
	return func(node, parent ast.Node) {
		r1 := guard(first, node, parent)
		r2 := guard(next, node, parent)
		if r1 != nil {
			panic(r1)
		}
		if r2 != nil {
			panic(r2)
		}
	}
}

func guard(h walk.HandlerFunc, node, parent ast.Node) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	h(node, parent)
	return nil
}

package fix

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/validation"
)

// Mode controls how fixes are applied.
type Mode int

const (
	// ModeNone means no fixing (normal lint).
	ModeNone Mode = iota
	// ModeAuto applies only non-interactive fixes.
	ModeAuto
	// ModeInteractive applies all fixes, prompting for interactive ones and confirming the rest.
	ModeInteractive
)

// Options configures fix engine behavior.
type Options struct {
	// Mode controls which fixes are applied.
	Mode Mode
	// DryRun when true reports what would be fixed without changing the source.
	// Acts as a modifier on ModeAuto or ModeInteractive.
	DryRun bool
}

// SkipReason explains why a fix was skipped.
type SkipReason int

const (
	// SkipInteractive means the fix requires user input but the mode is non-interactive.
	SkipInteractive SkipReason = iota
	// SkipConflict means an earlier fix already rewrote the same text.
	SkipConflict
	// SkipUser means the user declined the fix in interactive mode.
	SkipUser
)

func (r SkipReason) String() string {
	switch r {
	case SkipInteractive:
		return "requires interactive input"
	case SkipConflict:
		return "conflict with previous fix"
	case SkipUser:
		return "skipped by user"
	default:
		return "unknown"
	}
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Violation *validation.Violation
	Fix       validation.Fix
	Edit      validation.Edit
	Before    string // populated from ChangeDescriber if implemented
	After     string // populated from ChangeDescriber if implemented
}

// SkippedFix records a fix that was skipped.
type SkippedFix struct {
	Violation *validation.Violation
	Fix       validation.Fix
	Reason    SkipReason
}

// FailedFix records a fix that failed to apply.
type FailedFix struct {
	Violation *validation.Violation
	Fix       validation.Fix
	FixError  error
}

// Result tracks what the engine did.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Failed  []FailedFix
}

// Engine applies fixes to script sources.
type Engine struct {
	opts     Options
	prompter validation.Prompter
	registry *FixRegistry
}

// NewEngine creates a new fix engine. prompter and registry may be nil.
func NewEngine(opts Options, prompter validation.Prompter, registry *FixRegistry) *Engine {
	return &Engine{
		opts:     opts,
		prompter: prompter,
		registry: registry,
	}
}

// ProcessSource applies the fixes of violations to src and returns the rewritten source.
// The violations must have been reported against src.
//
// Pipeline ordering:
//  1. Fixes come from Violation.Fix, or from the FixRegistry when the violation carries none.
//  2. Violations are sorted by position so fixes are considered in document order.
//  3. Interactive fixes are skipped in ModeAuto or when no prompter is available.
//  4. Every fix computes its edit against the unmodified source. An edit overlapping one
//     accepted earlier is skipped as a conflict.
//  5. In ModeInteractive non-interactive edits are confirmed with the prompter.
//  6. Accepted edits are applied in one pass over the original source. In dry-run mode the
//     source is returned unchanged and the result lists what would happen.
func (e *Engine) ProcessSource(ctx context.Context, src string, violations []*validation.Violation) (string, *Result, error) {
	if e.opts.Mode == ModeNone {
		return src, &Result{}, nil
	}

	type fixableViolation struct {
		violation *validation.Violation
		fix       validation.Fix
	}

	var fixable []fixableViolation

	for _, v := range violations {
		if v == nil {
			continue
		}

		fix := v.Fix
		if fix == nil && e.registry != nil {
			fix = e.registry.GetFix(v)
		}

		if fix != nil {
			fixable = append(fixable, fixableViolation{violation: v, fix: fix})
		}
	}

	if len(fixable) == 0 {
		return src, &Result{}, nil
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		vi, vj := fixable[i].violation, fixable[j].violation
		if vi.Line != vj.Line {
			return vi.Line < vj.Line
		}
		return vi.Column < vj.Column
	})

	result := &Result{}
	var accepted []validation.Edit

	for _, fv := range fixable {
		if err := ctx.Err(); err != nil {
			return src, nil, err
		}

		v, fix := fv.violation, fv.fix

		if fix.Interactive() && (e.opts.Mode == ModeAuto || e.prompter == nil) {
			result.Skipped = append(result.Skipped, SkippedFix{Violation: v, Fix: fix, Reason: SkipInteractive})
			continue
		}

		if fix.Interactive() {
			// Without input there is no edit to preview
			if e.opts.DryRun {
				result.Applied = append(result.Applied, makeAppliedFix(v, fix, validation.Edit{}))
				continue
			}

			responses, err := e.prompter.PromptFix(v, fix)
			if err != nil {
				if errors.Is(err, validation.ErrSkipFix) {
					result.Skipped = append(result.Skipped, SkippedFix{Violation: v, Fix: fix, Reason: SkipUser})
					continue
				}
				result.Failed = append(result.Failed, FailedFix{Violation: v, Fix: fix, FixError: err})
				continue
			}

			if err := fix.SetInput(responses); err != nil {
				result.Failed = append(result.Failed, FailedFix{Violation: v, Fix: fix, FixError: err})
				continue
			}
		}

		edit, err := fix.Apply(src)
		if err != nil {
			result.Failed = append(result.Failed, FailedFix{Violation: v, Fix: fix, FixError: err})
			continue
		}

		if overlapsAny(accepted, edit) {
			result.Skipped = append(result.Skipped, SkippedFix{Violation: v, Fix: fix, Reason: SkipConflict})
			continue
		}

		if e.opts.Mode == ModeInteractive && !fix.Interactive() && !e.opts.DryRun && e.prompter != nil {
			ok, err := e.prompter.Confirm(fmt.Sprintf("[%d:%d] %s: %s?", v.Line, v.Column, v.Rule, fix.Description()))
			if err != nil {
				result.Failed = append(result.Failed, FailedFix{Violation: v, Fix: fix, FixError: err})
				continue
			}
			if !ok {
				result.Skipped = append(result.Skipped, SkippedFix{Violation: v, Fix: fix, Reason: SkipUser})
				continue
			}
		}

		accepted = append(accepted, edit)
		result.Applied = append(result.Applied, makeAppliedFix(v, fix, edit))
	}

	if e.opts.DryRun {
		return src, result, nil
	}

	return ApplyEdits(src, accepted), result, nil
}

// ApplyEdits rewrites src with non-overlapping edits computed against it.
func ApplyEdits(src string, edits []validation.Edit) string {
	if len(edits) == 0 {
		return src
	}

	sorted := append([]validation.Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(src))

	last := 0
	for _, edit := range sorted {
		b.WriteString(src[last:edit.Start])
		b.WriteString(edit.Text)
		last = edit.End
	}
	b.WriteString(src[last:])

	return b.String()
}

func overlapsAny(edits []validation.Edit, edit validation.Edit) bool {
	for _, other := range edits {
		if other.Overlaps(edit) {
			return true
		}
	}
	return false
}

func makeAppliedFix(v *validation.Violation, fix validation.Fix, edit validation.Edit) AppliedFix {
	af := AppliedFix{Violation: v, Fix: fix, Edit: edit}
	if cd, ok := fix.(validation.ChangeDescriber); ok {
		af.Before, af.After = cd.DescribeChange()
	}
	return af
}

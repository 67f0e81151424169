package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/addonreview/cachelint/cmd/cachelint/commands/cmdutil"
	"github.com/addonreview/cachelint/linter"
	"github.com/addonreview/cachelint/linter/fix"
	"github.com/addonreview/cachelint/system"
	"github.com/addonreview/cachelint/validation"
)

func (o *lintOptions) fixOptions() fix.Options {
	opts := fix.Options{Mode: fix.ModeNone, DryRun: o.dryRun}
	switch {
	case o.fixInteractive:
		opts.Mode = fix.ModeInteractive
	case o.fix:
		opts.Mode = fix.ModeAuto
	}
	return opts
}

func validateFixFlags(opts *lintOptions, path string) error {
	if opts.fix && opts.fixInteractive {
		return fmt.Errorf("--fix and --fix-interactive are mutually exclusive")
	}
	if opts.dryRun && !opts.fix && !opts.fixInteractive {
		return fmt.Errorf("--dry-run requires --fix or --fix-interactive")
	}
	if cmdutil.IsStdin(path) && (opts.fix || opts.fixInteractive) {
		return fmt.Errorf("--fix and --fix-interactive are not supported when reading from stdin")
	}
	return nil
}

// applyFixes rewrites every linted file that has fixable violations and returns the number of
// files changed. In dry-run mode nothing is written.
func applyFixes(ctx context.Context, fsys system.WritableVirtualFS, fixOpts fix.Options, prompter validation.Prompter, output *linter.Output, stderr io.Writer) (int, error) {
	engine := fix.NewEngine(fixOpts, prompter, fix.DefaultRegistry())

	byFile := map[string][]*validation.Violation{}
	var order []string
	for _, v := range output.Violations() {
		if _, seen := byFile[v.File]; !seen {
			order = append(order, v.File)
		}
		byFile[v.File] = append(byFile[v.File], v)
	}

	changed := 0
	for _, file := range order {
		data, err := fsys.ReadFile(file)
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", file, err)
		}
		src := string(data)

		fixed, result, err := engine.ProcessSource(ctx, src, byFile[file])
		if err != nil {
			return changed, fmt.Errorf("fix processing failed for %s: %w", file, err)
		}

		reportFixResults(stderr, file, result, fixOpts.DryRun)

		if fixOpts.DryRun || fixed == src {
			continue
		}

		info, err := fsys.Stat(file)
		if err != nil {
			return changed, fmt.Errorf("failed to stat %s: %w", file, err)
		}
		if err := fsys.WriteFile(file, []byte(fixed), info.Mode().Perm()); err != nil {
			return changed, fmt.Errorf("failed to write fixed file: %w", err)
		}
		changed++
		fmt.Fprintf(stderr, "Applied %d fix(es) to %s\n", len(result.Applied), file)
	}

	return changed, nil
}

func reportFixResults(w io.Writer, file string, result *fix.Result, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}

	if len(result.Applied) > 0 {
		fmt.Fprintf(w, "\n%sFixed in %s:\n", prefix, file)
		for _, af := range result.Applied {
			fmt.Fprintf(w, "  [%d:%d] %s - %s\n", af.Violation.Line, af.Violation.Column, af.Violation.Rule, af.Fix.Description())
			if af.Before != "" || af.After != "" {
				fmt.Fprintf(w, "    %s -> %s\n", af.Before, af.After)
			}
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\n%sSkipped in %s:\n", prefix, file)
		for _, sf := range result.Skipped {
			fmt.Fprintf(w, "  [%d:%d] %s - %s (%s)\n", sf.Violation.Line, sf.Violation.Column, sf.Violation.Rule, sf.Fix.Description(), sf.Reason)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintf(w, "\n%sFailed in %s:\n", prefix, file)
		for _, ff := range result.Failed {
			fmt.Fprintf(w, "  [%d:%d] %s - %s: %v\n", ff.Violation.Line, ff.Violation.Column, ff.Violation.Rule, ff.Fix.Description(), ff.FixError)
		}
	}
}

// lazyPrompter defers TerminalPrompter creation until a fix actually needs the user.
type lazyPrompter struct {
	in  io.Reader
	out io.Writer

	once     sync.Once
	prompter *fix.TerminalPrompter
}

func (l *lazyPrompter) init() {
	l.once.Do(func() {
		l.prompter = fix.NewTerminalPrompter(l.in, l.out)
	})
}

func (l *lazyPrompter) PromptFix(finding *validation.Violation, f validation.Fix) ([]string, error) {
	l.init()
	return l.prompter.PromptFix(finding, f)
}

func (l *lazyPrompter) Confirm(message string) (bool, error) {
	l.init()
	return l.prompter.Confirm(message)
}

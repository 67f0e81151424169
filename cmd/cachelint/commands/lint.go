package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/addonreview/cachelint/cmd/cachelint/commands/cmdutil"
	"github.com/addonreview/cachelint/linter"
	"github.com/addonreview/cachelint/linter/fix"
	"github.com/addonreview/cachelint/linter/format"
	"github.com/addonreview/cachelint/system"
	"github.com/addonreview/cachelint/validation"
	"github.com/spf13/cobra"
)

// DefaultContextFile is written when --context-file is given without a value.
const DefaultContextFile = ".copilot-review-context.md"

// stdinName attributes results of a source read from stdin.
const stdinName = "stdin.js"

type lintOptions struct {
	format      string
	configFile  string
	lang        string
	contextFile string
	summary     bool
	verbose     bool
	concurrency int
	timeout     time.Duration

	fix            bool
	fixInteractive bool
	dryRun         bool
}

// NewLintCmd creates the lint command.
func NewLintCmd() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "Lint addon scripts for uncached platform requests",
		Long: `Lint client-side scripts for requests to the platform domains that skip the
/cache/ path segment.

The path may be a directory, a single script or '-' to read a script from stdin.
It defaults to ./src. Directories are searched for files matching the include
globs (default **/*.js) minus the exclude globs (node_modules and minified files).

Output formats:
  console  grouped summary for humans (default)
  text     one aligned line per finding
  json     machine readable results and totals
  github   GitHub Actions workflow annotations
  sarif    SARIF 2.1.0 for code scanning

CONFIGURATION:

The linter reads .cachelint.yaml from the working directory when it exists.
Use --config to specify another file. Flags override file values.

  domains: [shoptet.cz, myshoptet.com]
  required_segment: /cache/
  include: ["**/*.js"]
  exclude: ["**/node_modules/**", "**/*.min.js"]
  language: en
  timeout: 30s

Use --context-file to also write a Markdown review context with the findings and
the code of affected files (default name ` + DefaultContextFile + `; pass a
different name as --context-file=NAME).

AUTOFIXING:

Use --fix to insert the required segment into literal platform URLs and write the
files back. Use --fix-interactive to confirm every change. Use --dry-run with either
flag to preview the changes without modifying files. Fixing is not available when
reading from stdin.

The command exits with status 1 when at least one blocker is found.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			return validateFixFlags(opts, cmdutil.PathFromArgs(args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, cmdutil.PathFromArgs(args))
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(linter.OutputFormatConsole), "Output format: console, text, json, github or sarif")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to config file (default: ./"+linter.DefaultConfigFile+" when present)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "Message language: en or cs")
	cmd.Flags().StringVar(&opts.contextFile, "context-file", "", "Write a Markdown review context file")
	cmd.Flags().Lookup("context-file").NoOptDefVal = DefaultContextFile
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a per-rule summary table of findings")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Number of files analyzed at once (default: number of CPUs)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abandon the analysis of a single file after this long")
	cmd.Flags().BoolVar(&opts.fix, "fix", false, "Insert the required segment into literal platform URLs and write back")
	cmd.Flags().BoolVar(&opts.fixInteractive, "fix-interactive", false, "Apply fixes after confirming each one")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what fixes would be applied without changing files (requires --fix or --fix-interactive)")

	return cmd
}

func runLint(cmd *cobra.Command, opts *lintOptions, path string) error {
	ctx := cmd.Context()
	start := time.Now()

	logger := linter.NewLogger(cmd.ErrOrStderr(), opts.verbose)
	defer func() { _ = logger.Sync() }()

	config, err := buildLintConfig(cmd, opts)
	if err != nil {
		return err
	}

	fsys := &system.FileSystem{}
	lint, err := linter.NewLinter(config, linter.WithFileSystem(fsys), linter.WithLinterLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}

	var output *linter.Output
	if cmdutil.IsStdin(path) {
		output, err = lint.LintReader(stdinName, cmd.InOrStdin())
		if err != nil {
			return err
		}
	} else {
		files, err := lint.Discover(path)
		if err != nil {
			return err
		}
		logger.Infow("linting files", "path", path, "files", len(files))

		output, err = lint.LintFiles(ctx, files)
		if err != nil {
			return err
		}

		if fixOpts := opts.fixOptions(); fixOpts.Mode != fix.ModeNone {
			var prompter validation.Prompter
			if fixOpts.Mode == fix.ModeInteractive {
				prompter = &lazyPrompter{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
			}

			changed, err := applyFixes(ctx, fsys, fixOpts, prompter, output, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			// Re-lint so the report reflects the fixed sources
			if changed > 0 {
				output, err = lint.LintFiles(ctx, files)
				if err != nil {
					return err
				}
			}
		}
	}

	if err := writeReport(cmd.OutOrStdout(), output, output.Formatter()); err != nil {
		return err
	}

	if opts.summary {
		if err := writeReport(cmd.OutOrStdout(), output, format.NewSummaryFormatter()); err != nil {
			return err
		}
	}

	if opts.contextFile != "" {
		if err := writeContextFile(fsys, opts.contextFile, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Review context saved to %s\n", opts.contextFile)
	}

	logger.Debugw("lint finished", "files", len(output.Files), "results", len(output.Results), "elapsed", time.Since(start))

	if output.HasBlockers() {
		return fmt.Errorf("found %d blocker(s)", output.BlockerCount())
	}

	return nil
}

func buildLintConfig(cmd *cobra.Command, opts *lintOptions) (*linter.Config, error) {
	config := linter.NewConfig()

	switch {
	case opts.configFile != "":
		loaded, err := linter.LoadConfigFromFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	case cmdutil.FileExists(linter.DefaultConfigFile):
		loaded, err := linter.LoadConfigFromFile(linter.DefaultConfigFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if cmdutil.FlagChanged(cmd, "format") {
		config.OutputFormat = parseOutputFormat(opts.format)
	}
	if cmdutil.FlagChanged(cmd, "lang") {
		config.Language = opts.lang
	}
	if cmdutil.FlagChanged(cmd, "concurrency") {
		config.Concurrency = opts.concurrency
	}
	if cmdutil.FlagChanged(cmd, "timeout") {
		config.Timeout = opts.timeout
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// parseOutputFormat accepts the format names case-insensitively, plus "github-actions" for github.
func parseOutputFormat(s string) linter.OutputFormat {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "github-actions" {
		return linter.OutputFormatGitHub
	}
	return linter.OutputFormat(s)
}

func writeReport(w io.Writer, output *linter.Output, f format.Formatter) error {
	report, err := output.FormatWith(f)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if report == "" {
		return nil
	}
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	_, err = io.WriteString(w, report)
	return err
}

func writeContextFile(fsys system.WritableVirtualFS, path string, output *linter.Output) error {
	report, err := output.FormatWith(format.NewMarkdownFormatter(fsys, output.Files, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to build review context: %w", err)
	}
	if err := fsys.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("failed to write review context: %w", err)
	}
	return nil
}

package linter

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/system"
	"github.com/addonreview/cachelint/validation"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Linter is the multi-file linting engine
type Linter struct {
	config   *Config
	pattern  *rules.Pattern
	language language.Tag
	registry *rules.Registry
	fsys     system.VirtualFS
	logger   Logger
}

// LinterOption configures a Linter.
type LinterOption func(*Linter)

// WithFileSystem sets the file system files are read from. Defaults to the host file system.
func WithFileSystem(fsys system.VirtualFS) LinterOption {
	return func(l *Linter) {
		l.fsys = fsys
	}
}

// WithLinterLogger sets the logger receiving per-file diagnostics.
func WithLinterLogger(logger Logger) LinterOption {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLinter creates a new linter with the given configuration
func NewLinter(config *Config, opts ...LinterOption) (*Linter, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	pattern, err := config.Pattern()
	if err != nil {
		return nil, ErrInvalidConfig.Wrap(err)
	}
	tag, err := config.LanguageTag()
	if err != nil {
		return nil, ErrInvalidConfig.Wrap(err)
	}
	registry, err := rules.NewRegistry(rules.Default()...)
	if err != nil {
		return nil, err
	}

	l := &Linter{
		config:   config,
		pattern:  pattern,
		language: tag,
		registry: registry,
		fsys:     &system.FileSystem{},
		logger:   NopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Config returns the configuration the linter runs with
func (l *Linter) Config() *Config {
	return l.config
}

// Registry returns the rule registry for documentation generation
func (l *Linter) Registry() *rules.Registry {
	return l.registry
}

// Discover returns the files under root selected by the configured include and exclude globs.
func (l *Linter) Discover(root string) ([]string, error) {
	return Discover(l.fsys, root, l.config.Include, l.config.Exclude)
}

// LintSource checks a single source text attributed to filename.
func (l *Linter) LintSource(filename, source string) *Result {
	return analyze(&analysis{
		filename: filename,
		source:   source,
		syntax:   l.config.Syntax,
		pattern:  l.pattern,
		language: l.language,
		rules:    l.registry.AllRules(),
		logger:   l.logger,
	})
}

// LintFiles checks every path in parallel. Results are ordered by path and keep traversal order
// within a file. Files that cannot be read, parsed or finished in time yield a Diagnostic instead of
// violations. The error is only non-nil when ctx is cancelled.
func (l *Linter) LintFiles(ctx context.Context, paths []string) (*Output, error) {
	perFile := make([][]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.EffectiveConcurrency())

	for i, p := range paths {
		g.Go(func() error {
			results, err := l.lintFile(gctx, p)
			if err != nil {
				return err
			}
			perFile[i] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint cancelled: %w", err)
	}

	var all []error
	for _, results := range perFile {
		all = append(all, results...)
	}
	validation.SortByFile(all)

	return &Output{
		Results: all,
		Files:   append([]string(nil), paths...),
		Format:  l.config.OutputFormat,
	}, nil
}

// LintReader checks a source read from r, attributing results to name. It is used for sources that
// do not live on the file system, such as standard input.
func (l *Linter) LintReader(name string, r io.Reader) (*Output, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return &Output{
		Results: l.toResults(name, l.LintSource(name, string(data))),
		Files:   []string{name},
		Format:  l.config.OutputFormat,
	}, nil
}

func (l *Linter) lintFile(ctx context.Context, path string) ([]error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.fsys.ReadFile(path)
	if err != nil {
		l.logger.Warnw("failed to read file", "file", path, "error", err)
		return []error{&validation.Diagnostic{File: path, Err: fmt.Errorf("failed to read file: %w", err)}}, nil
	}

	timeout := l.config.Timeout
	if timeout <= 0 {
		return l.toResults(path, l.LintSource(path, string(data))), nil
	}

	done := make(chan *Result, 1)
	go func() {
		done <- l.LintSource(path, string(data))
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return l.toResults(path, res), nil
	case <-timer.C:
		l.logger.Warnw("analysis abandoned", "file", path, "timeout", timeout)
		return []error{&validation.Diagnostic{File: path, Err: ErrTimeout.Wrapf("exceeded %s", timeout)}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Linter) toResults(path string, res *Result) []error {
	if res.ParseError != nil {
		l.logger.Warnw("skipping file that failed to parse", "file", path, "error", res.ParseError.Message)
		return []error{&validation.Diagnostic{
			File:   path,
			Line:   res.ParseError.Line,
			Column: res.ParseError.Column,
			Err:    jsparser.ErrParse.Wrap(errors.New(res.ParseError.Message)),
		}}
	}

	results := make([]error, 0, len(res.Violations))
	for _, v := range res.Violations {
		results = append(results, v)
	}
	return results
}

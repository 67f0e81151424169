// Package linter finds platform requests that skip the cache path segment in client-side scripts.
//
// Analyze checks a single source text. Linter discovers files, checks them in parallel and collects
// the results into an Output for the formatters in the format package.
package linter

import (
	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/validation"
	"github.com/addonreview/cachelint/walk"
	"golang.org/x/text/language"
)

// Result is the outcome of analyzing one source.
type Result struct {
	// Violations are in traversal order. Empty when the source failed to parse.
	Violations []*validation.Violation
	// ParseError is set when the source could not be parsed.
	ParseError *jsparser.ParseError
}

// Option configures Analyze.
type Option func(*options)

type options struct {
	domains  []string
	segment  string
	syntax   jsparser.Syntax
	filename string
	language language.Tag
	logger   Logger
}

func defaultOptions() *options {
	return &options{
		domains:  rules.DefaultDomains(),
		segment:  rules.DefaultSegment,
		syntax:   jsparser.DefaultSyntax(),
		language: language.English,
		logger:   NopLogger(),
	}
}

// WithDomains sets the platform domains whose subdomains are checked.
func WithDomains(domains []string) Option {
	return func(o *options) {
		o.domains = domains
	}
}

// WithRequiredSegment sets the path segment platform URLs must contain.
func WithRequiredSegment(segment string) Option {
	return func(o *options) {
		o.segment = segment
	}
}

// WithSyntax selects the syntax extensions accepted on top of standard JavaScript.
func WithSyntax(syntax jsparser.Syntax) Option {
	return func(o *options) {
		o.syntax = syntax
	}
}

// WithFilename names the source. The extension also selects the loader for TypeScript and JSX.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLanguage selects the language violation messages are rendered in.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

// WithLogger sets the logger receiving parse failures and recovered rule panics.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Analyze reports every violation in source. Parse failures are returned in Result.ParseError; the
// error is only non-nil for unusable options.
func Analyze(source string, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	pattern, err := rules.NewPattern(o.domains, o.segment)
	if err != nil {
		return nil, ErrInvalidOptions.Wrap(err)
	}

	return analyze(&analysis{
		filename: o.filename,
		source:   source,
		syntax:   o.syntax,
		pattern:  pattern,
		language: o.language,
		rules:    rules.Default(),
		logger:   o.logger,
	}), nil
}

type analysis struct {
	filename string
	source   string
	syntax   jsparser.Syntax
	pattern  *rules.Pattern
	language language.Tag
	rules    []rules.Rule
	logger   Logger
}

func analyze(a *analysis) *Result {
	unit, err := jsparser.Parse(a.filename, a.source, a.syntax)
	if err != nil {
		var parseErr *jsparser.ParseError
		if !errors.As(err, &parseErr) {
			parseErr = &jsparser.ParseError{Filename: a.filename, Message: err.Error()}
		}
		a.logger.Debugw("source failed to parse", "file", a.filename, "error", parseErr.Error())
		return &Result{ParseError: parseErr}
	}

	rc := rules.NewContext(unit, a.pattern)
	rc.Language = a.language

	walk.Walk(unit.Program(), rules.Handlers(rc, a.rules), walk.WithPanicHandler(func(kind walk.Kind, path walk.Locations, recovered any) {
		a.logger.Debugw("rule panicked, node skipped", "file", a.filename, "kind", kind, "path", path.String(), "panic", recovered)
	}))

	a.logger.Debugw("analyzed source", "file", a.filename, "lowered", unit.Lowered(), "violations", len(rc.Violations()))

	return &Result{Violations: rc.Violations()}
}

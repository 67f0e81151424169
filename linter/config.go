package linter

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/addonreview/cachelint/jsparser"
	"github.com/addonreview/cachelint/linter/rules"
	"golang.org/x/text/language"
)

// Config represents the linter configuration
type Config struct {
	// Domains are the platform domains whose subdomains must be reached through the cache segment
	Domains []string `yaml:"domains,omitempty" json:"domains,omitempty"`

	// RequiredSegment is the path segment platform URLs must contain
	RequiredSegment string `yaml:"required_segment,omitempty" json:"required_segment,omitempty"`

	// Syntax selects the syntax extensions accepted on top of standard JavaScript
	Syntax jsparser.Syntax `yaml:"syntax" json:"syntax"`

	// Include contains glob patterns selecting files when linting a directory
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`

	// Exclude contains glob patterns removing files and directories from discovery
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `yaml:"output_format,omitempty" json:"output_format,omitempty"`

	// Language selects the language of violation messages (BCP 47 tag, e.g. "en" or "cs")
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	// Concurrency bounds the number of files analyzed at once (0 = GOMAXPROCS)
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	// Timeout abandons the analysis of a single file after this long (0 = no limit)
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type OutputFormat string

const (
	OutputFormatConsole OutputFormat = "console"
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatGitHub  OutputFormat = "github"
	OutputFormatSARIF   OutputFormat = "sarif"
)

// OutputFormats returns every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatConsole, OutputFormatText, OutputFormatJSON, OutputFormatGitHub, OutputFormatSARIF}
}

// NewConfig creates a new default configuration
func NewConfig() *Config {
	return &Config{
		Domains:         rules.DefaultDomains(),
		RequiredSegment: rules.DefaultSegment,
		Syntax:          jsparser.DefaultSyntax(),
		Include:         []string{"**/*.js"},
		Exclude:         []string{"**/node_modules/**", "**/*.min.js"},
		OutputFormat:    OutputFormatConsole,
		Language:        "en",
	}
}

// Validate checks the configuration for values the linter cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Pattern(); err != nil {
		return ErrInvalidConfig.Wrap(err)
	}

	if !c.OutputFormat.IsValid() {
		return ErrInvalidConfig.Wrapf("unknown output format %q", c.OutputFormat)
	}

	if _, err := c.LanguageTag(); err != nil {
		return ErrInvalidConfig.Wrap(err)
	}

	if c.Concurrency < 0 {
		return ErrInvalidConfig.Wrapf("concurrency must not be negative")
	}
	if c.Timeout < 0 {
		return ErrInvalidConfig.Wrapf("timeout must not be negative")
	}

	if len(c.Include) == 0 {
		return ErrInvalidConfig.Wrapf("at least one include pattern is required")
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if strings.TrimSpace(pattern) == "" {
			return ErrInvalidConfig.Wrapf("glob patterns must not be empty")
		}
	}

	return nil
}

// Pattern builds the domain and segment recognizer described by the configuration.
func (c *Config) Pattern() (*rules.Pattern, error) {
	return rules.NewPattern(c.Domains, c.RequiredSegment)
}

// LanguageTag parses the configured message language. An empty value means English.
func (c *Config) LanguageTag() (language.Tag, error) {
	if c.Language == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language %q: %w", c.Language, err)
	}
	return tag, nil
}

// EffectiveConcurrency returns the number of files analyzed at once.
func (c *Config) EffectiveConcurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// IsValid reports whether f names a supported output format.
func (f OutputFormat) IsValid() bool {
	for _, known := range OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

package linter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := linter.NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"shoptet.cz", "myshoptet.com"}, cfg.Domains)
	assert.Equal(t, "/cache/", cfg.RequiredSegment)
	assert.Equal(t, []string{"**/*.js"}, cfg.Include)
	assert.Equal(t, linter.OutputFormatConsole, cfg.OutputFormat)
	assert.Positive(t, cfg.EffectiveConcurrency())

	tag, err := cfg.LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, language.English, tag)
}

func TestLoadConfig_Success(t *testing.T) {
	t.Parallel()

	doc := `
domains: [example.org]
required_segment: /edge/
syntax:
  typescript: false
  jsx: true
include: ["**/*.js", "**/*.ts"]
exclude: ["vendor/**"]
output_format: github
language: cs
concurrency: 2
timeout: 1m30s
`
	cfg, err := linter.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"example.org"}, cfg.Domains)
	assert.Equal(t, "/edge/", cfg.RequiredSegment)
	assert.False(t, cfg.Syntax.TypeScript)
	assert.True(t, cfg.Syntax.JSX)
	assert.Equal(t, []string{"**/*.js", "**/*.ts"}, cfg.Include)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.Equal(t, linter.OutputFormatGitHub, cfg.OutputFormat)
	assert.Equal(t, 2, cfg.EffectiveConcurrency())
	assert.Equal(t, 90*time.Second, cfg.Timeout)

	tag, err := cfg.LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, language.Czech, tag)
}

func TestLoadConfig_PartialDocumentKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := linter.LoadConfig(strings.NewReader("required_segment: /cached/\n"))
	require.NoError(t, err)

	assert.Equal(t, "/cached/", cfg.RequiredSegment)
	assert.Equal(t, linter.NewConfig().Domains, cfg.Domains)
	assert.Equal(t, linter.NewConfig().Exclude, cfg.Exclude)
	assert.True(t, cfg.Syntax.TypeScript)
}

func TestLoadConfig_EmptyDocument(t *testing.T) {
	t.Parallel()

	cfg, err := linter.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, linter.NewConfig(), cfg)
}

func TestLoadConfig_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "domain: shoptet.cz\n"},
		{name: "domain with scheme", doc: "domains: [\"https://shoptet.cz\"]\n"},
		{name: "empty domain list", doc: "domains: []\n"},
		{name: "segment with whitespace", doc: "required_segment: \"/ca che/\"\n"},
		{name: "unknown output format", doc: "output_format: xml\n"},
		{name: "negative concurrency", doc: "concurrency: -1\n"},
		{name: "malformed timeout", doc: "timeout: soon\n"},
		{name: "unknown syntax flag", doc: "syntax: {flow: true}\n"},
		{name: "invalid yaml", doc: "domains: [shoptet.cz\n"},
		{name: "unparseable language", doc: "language: \"12345678901\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := linter.LoadConfig(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, linter.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, linter.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("domains: [example.org]\n"), 0o600))

	cfg, err := linter.LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.org"}, cfg.Domains)

	_, err = linter.LoadConfigFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.WriteFile(path, []byte("output_format: xml\n"), 0o600))
	_, err = linter.LoadConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestConfig_Validate_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*linter.Config)
	}{
		{name: "no include", mutate: func(c *linter.Config) { c.Include = nil }},
		{name: "blank exclude", mutate: func(c *linter.Config) { c.Exclude = []string{" "} }},
		{name: "negative timeout", mutate: func(c *linter.Config) { c.Timeout = -time.Second }},
		{name: "bad domain", mutate: func(c *linter.Config) { c.Domains = []string{".shoptet.cz"} }},
		{name: "bad format", mutate: func(c *linter.Config) { c.OutputFormat = "html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := linter.NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, linter.ErrInvalidConfig))
		})
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range linter.OutputFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, linter.OutputFormat("markdown").IsValid())
}

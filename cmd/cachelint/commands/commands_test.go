package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/addonreview/cachelint/cmd/cachelint/commands"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestLint_Console_Blockers(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js":        "fetch('https://shop.myshoptet.com/api/orders');\n",
		"lib/xhr.js":    "const xhr = new XMLHttpRequest();\n",
		"lib/cached.js": "$.get('https://shop.myshoptet.com/cache/products');\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir)
	require.Error(t, err)
	assert.Equal(t, "found 1 blocker(s)", err.Error())

	assert.Contains(t, stdout, "Reviewed 3 file(s)")
	assert.Contains(t, stdout, "BLOCKERS: 1")
	assert.Contains(t, stdout, "RECOMMENDATIONS: 1")
	assert.Contains(t, stdout, "app.js:1 - Missing /cache/ in fetch call to shop.myshoptet.com")
}

func TestLint_NoIssues(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "fetch('https://shop.myshoptet.com/cache/api/orders');\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found! Code looks good.")
}

func TestLint_JSONWithSummary(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "new XMLHttpRequest();\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir, "--format", "json")
	require.NoError(t, err, "recommendations do not fail the run")

	var parsed struct {
		Summary struct {
			Recommendations int `json:"recommendations"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
	assert.Equal(t, 1, parsed.Summary.Recommendations)

	stdout, _, err = execute(t, commands.NewLintCmd(), "", dir, "--format", "text", "--summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "raw-transport-construction")
	assert.Contains(t, stdout, "across 1 rules")
}

func TestLint_GitHubActions(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "fetch('https://shop.myshoptet.com/api/orders');\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir, "--format", "github-actions")
	require.Error(t, err)
	assert.Contains(t, stdout, "::error file=")
	assert.Contains(t, stdout, "title=missing-cache-segment::Missing /cache/")
	assert.Contains(t, stdout, "::notice title=ReviewSummary::Found 1 blocker(s) and 0 recommendation(s)")
}

func TestLint_CzechMessages(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "fetch('https://shop.myshoptet.com/api/orders');\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir, "--lang", "cs", "--format", "text")
	require.Error(t, err)
	assert.Contains(t, stdout, "Chybí /cache/ ve volání fetch na shop.myshoptet.com")
}

func TestLint_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"src/app.js":     "fetch('https://shop.example.org/api');\n",
		"cachelint.yaml": "domains: [example.org]\nrequired_segment: /edge/\noutput_format: text\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", filepath.Join(dir, "src"), "--config", filepath.Join(dir, "cachelint.yaml"))
	require.Error(t, err)
	assert.Contains(t, stdout, "Missing /edge/ in fetch call to shop.example.org")
	assert.Contains(t, stdout, "✖ 1 problems")
}

func TestLint_ContextFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "const a = 1;\nfetch('https://shop.myshoptet.com/api/orders');\n",
	})
	contextFile := filepath.Join(dir, "out", "review.md")

	_, stderr, err := execute(t, commands.NewLintCmd(), "", dir, "--context-file="+contextFile)
	require.Error(t, err)
	assert.Contains(t, stderr, "Review context saved to "+contextFile)

	data, err := os.ReadFile(contextFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Code Review Context")
	assert.Contains(t, string(data), "- **Blockers found**: 1")
	assert.Contains(t, string(data), "fetch('https://shop.myshoptet.com/api/orders');")
}

func TestLint_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, commands.NewLintCmd(), "new XMLHttpRequest();\n", "-", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stdin.js")
	assert.Contains(t, stdout, "raw-transport-construction")
}

func TestLint_ParseErrorIsReportedNotFatal(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"broken.js": "fetch(\n",
	})

	stdout, _, err := execute(t, commands.NewLintCmd(), "", dir, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "parse-error")
}

func TestLint_Errors(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"readme.md": "# nothing to lint",
		"bad.yaml":  "output_format: xml\n",
	})

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "missing path", args: []string{filepath.Join(dir, "missing")}, contains: "failed to access"},
		{name: "unsupported file", args: []string{filepath.Join(dir, "readme.md")}, contains: "unsupported file"},
		{name: "no files", args: []string{dir}, contains: "no files to lint"},
		{name: "unknown format", args: []string{dir, "--format", "xml"}, contains: "unknown output format"},
		{name: "invalid config", args: []string{dir, "--config", filepath.Join(dir, "bad.yaml")}, contains: "invalid config"},
		{name: "too many args", args: []string{dir, dir}, contains: "accepts at most 1 arg"},
		{name: "both fix modes", args: []string{dir, "--fix", "--fix-interactive"}, contains: "mutually exclusive"},
		{name: "dry run alone", args: []string{dir, "--dry-run"}, contains: "--dry-run requires"},
		{name: "fix from stdin", args: []string{"-", "--fix"}, contains: "not supported when reading from stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, commands.NewLintCmd(), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLint_Fix(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js":   "fetch('https://shop.myshoptet.com/api/orders');\nnew XMLHttpRequest();\n",
		"clean.js": "console.log(1);\n",
	})

	stdout, stderr, err := execute(t, commands.NewLintCmd(), "", dir, "--fix", "--format", "text")
	require.NoError(t, err, "no blockers remain after fixing")

	data, err := os.ReadFile(filepath.Join(dir, "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "fetch('https://shop.myshoptet.com/cache/api/orders');\nnew XMLHttpRequest();\n", string(data))

	assert.Contains(t, stderr, "https://shop.myshoptet.com/api/orders -> https://shop.myshoptet.com/cache/api/orders")
	assert.Contains(t, stderr, "Applied 1 fix(es) to ")
	assert.Contains(t, stdout, "raw-transport-construction")
	assert.NotContains(t, stdout, "missing-cache-segment")
}

func TestLint_FixDryRun(t *testing.T) {
	t.Parallel()

	const src = "fetch('https://shop.myshoptet.com/api/orders');\n"
	dir := writeFiles(t, map[string]string{"app.js": src})

	_, stderr, err := execute(t, commands.NewLintCmd(), "", dir, "--fix", "--dry-run")
	require.Error(t, err)
	assert.Equal(t, "found 1 blocker(s)", err.Error())
	assert.Contains(t, stderr, "[dry-run] Fixed in ")

	data, err := os.ReadFile(filepath.Join(dir, "app.js"))
	require.NoError(t, err)
	assert.Equal(t, src, string(data))
}

func TestLint_FixInteractive(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.js": "fetch('https://a.myshoptet.com/x');\nfetch('https://b.myshoptet.com/y');\n",
	})

	_, stderr, err := execute(t, commands.NewLintCmd(), "y\nn\n", dir, "--fix-interactive")
	require.Error(t, err)
	assert.Equal(t, "found 1 blocker(s)", err.Error())
	assert.Equal(t, 2, strings.Count(stderr, "[y/n]"))
	assert.Contains(t, stderr, "skipped by user")

	data, err := os.ReadFile(filepath.Join(dir, "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "fetch('https://a.myshoptet.com/cache/x');\nfetch('https://b.myshoptet.com/y');\n", string(data))
}

func TestRules(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, commands.NewRulesCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CACHING (1 rules)")
	assert.Contains(t, stdout, "missing-cache-segment")
	assert.Contains(t, stdout, "[recommend]")

	stdout, _, err = execute(t, commands.NewRulesCmd(), "", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Rules Reference")

	stdout, _, err = execute(t, commands.NewRulesCmd(), "", "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	_, _, err = execute(t, commands.NewRulesCmd(), "", "--format", "yaml")
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "cachelint"}
	commands.Apply(root)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"lint", "rules"}, names)
}

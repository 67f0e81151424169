package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/addonreview/cachelint/linter"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRulesTable(t *testing.T) {
	t.Parallel()

	registry, err := rules.NewRegistry(rules.Default()...)
	require.NoError(t, err)

	table := generateRulesTable(linter.NewDocGenerator(registry))
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "| <a name=\"missing-cache-segment\"></a>`missing-cache-segment` | blocker | caching |"))
	assert.True(t, strings.HasPrefix(lines[3], "| <a name=\"raw-transport-construction\"></a>`raw-transport-construction` | recommend | transport |"))
}

func TestUpdateLintDocs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	original := "# Title\n\n" + startMarker + "\nstale\n" + endMarker + "\n\nFooter\n"
	require.NoError(t, os.WriteFile(readme, []byte(original), 0o600))

	require.NoError(t, updateLintDocs(&system.FileSystem{}, readme))

	data, err := os.ReadFile(readme)
	require.NoError(t, err)
	updated := string(data)

	assert.NotContains(t, updated, "stale")
	assert.Contains(t, updated, "`missing-cache-segment`")
	assert.True(t, strings.HasPrefix(updated, "# Title\n\n"+startMarker+"\n\n| Rule |"))
	assert.True(t, strings.HasSuffix(updated, endMarker+"\n\nFooter\n"))
}

func TestUpdateReadmeFile_MissingMarkers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# no markers\n"), 0o600))

	err := updateReadmeFile(&system.FileSystem{}, readme, "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find lint rules markers")
}

package cmdutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "dash is stdin", path: "-", expected: true},
		{name: "empty is not stdin", path: "", expected: false},
		{name: "file path is not stdin", path: "app.js", expected: false},
		{name: "dash prefix is not stdin", path: "-file", expected: false},
		{name: "double dash is not stdin", path: "--", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsStdin(tt.path))
		})
	}
}

func TestPathFromArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "no args returns default path", args: []string{}, expected: DefaultPath},
		{name: "nil args returns default path", args: nil, expected: DefaultPath},
		{name: "empty arg returns default path", args: []string{""}, expected: DefaultPath},
		{name: "single path arg", args: []string{"assets/js"}, expected: "assets/js"},
		{name: "explicit dash", args: []string{"-"}, expected: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, PathFromArgs(tt.args))
		})
	}
}

func TestFlagChanged(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().String("format", "console", "")
	cmd.Flags().String("lang", "", "")

	require.NoError(t, cmd.ParseFlags([]string{"--format", "json"}))

	assert.True(t, FlagChanged(cmd, "format"))
	assert.False(t, FlagChanged(cmd, "lang"))
	assert.False(t, FlagChanged(cmd, "missing"))
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.yaml")))
}

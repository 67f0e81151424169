package fix_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/addonreview/cachelint/linter/fix"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finding() *validation.Violation {
	return &validation.Violation{
		File:    "src/app.js",
		Line:    10,
		Column:  5,
		Message: "Missing /cache/ in fetch call to shop.myshoptet.com",
		Rule:    validation.RuleMissingCacheSegment,
	}
}

func choiceFix(def string) *mockInteractiveFix {
	return &mockInteractiveFix{
		description: "choose a path",
		prompts: []validation.Prompt{{
			Type:    validation.PromptChoice,
			Message: "Select a path:",
			Choices: []string{"/cache/api", "/api/cache", "/cache"},
			Default: def,
		}},
	}
}

func freeTextFix(def string) *mockInteractiveFix {
	return &mockInteractiveFix{
		description: "enter a segment",
		prompts: []validation.Prompt{{
			Type:    validation.PromptFreeText,
			Message: "Segment",
			Default: def,
		}},
	}
}

func TestTerminalPrompter_Choice_Success(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	prompter := fix.NewTerminalPrompter(strings.NewReader("2\n"), output)

	responses, err := prompter.PromptFix(finding(), choiceFix(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/cache"}, responses)
	assert.Contains(t, output.String(), "src/app.js:10:5 missing-cache-segment")
	assert.Contains(t, output.String(), "Fix: choose a path")
	assert.Contains(t, output.String(), "[1] /cache/api")
}

func TestTerminalPrompter_Choice_Default(t *testing.T) {
	t.Parallel()

	prompter := fix.NewTerminalPrompter(strings.NewReader("\n"), &bytes.Buffer{})

	responses, err := prompter.PromptFix(finding(), choiceFix("/cache"))
	require.NoError(t, err)
	assert.Equal(t, []string{"/cache"}, responses)
}

func TestTerminalPrompter_Choice_Skip(t *testing.T) {
	t.Parallel()

	prompter := fix.NewTerminalPrompter(strings.NewReader("s\n"), &bytes.Buffer{})

	_, err := prompter.PromptFix(finding(), choiceFix(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrSkipFix)
}

func TestTerminalPrompter_Choice_InvalidThenValid(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	prompter := fix.NewTerminalPrompter(strings.NewReader("abc\n99\n3"), output)

	responses, err := prompter.PromptFix(finding(), choiceFix(""))
	require.NoError(t, err, "a last line without newline is accepted")
	assert.Equal(t, []string{"/cache"}, responses)
	assert.Equal(t, 2, strings.Count(output.String(), "Invalid choice"))
}

func TestTerminalPrompter_Choice_InputExhausted(t *testing.T) {
	t.Parallel()

	prompter := fix.NewTerminalPrompter(strings.NewReader("abc\n"), &bytes.Buffer{})

	_, err := prompter.PromptFix(finding(), choiceFix(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestTerminalPrompter_FreeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		def     string
		want    string
		skipped bool
	}{
		{name: "entered", input: "/edge/\n", want: "/edge/"},
		{name: "default", input: "\n", def: "/cache/", want: "/cache/"},
		{name: "empty without default", input: "\n", skipped: true},
		{name: "skip", input: "skip\n", def: "/cache/", skipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prompter := fix.NewTerminalPrompter(strings.NewReader(tt.input), &bytes.Buffer{})

			responses, err := prompter.PromptFix(finding(), freeTextFix(tt.def))
			if tt.skipped {
				assert.ErrorIs(t, err, validation.ErrSkipFix)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, responses)
		})
	}
}

func TestTerminalPrompter_ShowsChange(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	prompter := fix.NewTerminalPrompter(strings.NewReader(""), output)

	f := &rules.InsertSegmentFix{URL: "https://shop.myshoptet.com/api", Segment: "/cache/"}
	responses, err := prompter.PromptFix(finding(), f)
	require.NoError(t, err)
	assert.Empty(t, responses)
	assert.Contains(t, output.String(), "https://shop.myshoptet.com/api -> https://shop.myshoptet.com/cache/api")
}

func TestTerminalPrompter_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()

			output := &bytes.Buffer{}
			prompter := fix.NewTerminalPrompter(strings.NewReader(tt.input), output)

			got, err := prompter.Confirm("Apply fix?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Apply fix? [y/n]: ", output.String())
		})
	}

	_, err := fix.NewTerminalPrompter(strings.NewReader(""), &bytes.Buffer{}).Confirm("Apply fix?")
	require.Error(t, err, "no input at all is an error")
}

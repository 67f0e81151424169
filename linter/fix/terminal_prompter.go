package fix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/addonreview/cachelint/errors"
	"github.com/addonreview/cachelint/validation"
)

// TerminalPrompter implements validation.Prompter over a line based reader and writer.
type TerminalPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

var _ validation.Prompter = (*TerminalPrompter)(nil)

// NewTerminalPrompter creates a new terminal-based prompter.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// writef ignores write errors.
func (p *TerminalPrompter) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(p.writer, format, args...)
}

// readLine returns the next trimmed input line. A final line without a newline is accepted.
func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) PromptFix(finding *validation.Violation, fix validation.Fix) ([]string, error) {
	p.describe(finding, fix)

	prompts := fix.Prompts()
	responses := make([]string, len(prompts))

	for i, prompt := range prompts {
		response, err := p.promptOne(prompt)
		if err != nil {
			return nil, err
		}
		responses[i] = response
	}

	return responses, nil
}

func (p *TerminalPrompter) describe(finding *validation.Violation, fix validation.Fix) {
	if finding.File != "" {
		p.writef("\n%s:%d:%d %s\n", finding.File, finding.Line, finding.Column, finding.Rule)
	} else {
		p.writef("\n[%d:%d] %s\n", finding.Line, finding.Column, finding.Rule)
	}
	p.writef("  %s\n", finding.Message)
	p.writef("  Fix: %s\n", fix.Description())
	if cd, ok := fix.(validation.ChangeDescriber); ok {
		before, after := cd.DescribeChange()
		p.writef("    %s -> %s\n", before, after)
	}
}

func (p *TerminalPrompter) promptOne(prompt validation.Prompt) (string, error) {
	switch prompt.Type {
	case validation.PromptChoice:
		return p.promptChoice(prompt)
	case validation.PromptFreeText:
		return p.promptFreeText(prompt)
	default:
		return "", fmt.Errorf("unknown prompt type: %d", prompt.Type)
	}
}

func isSkip(line string) bool {
	return line == "s" || line == "skip"
}

func (p *TerminalPrompter) promptChoice(prompt validation.Prompt) (string, error) {
	p.writef("  %s\n", prompt.Message)
	for j, choice := range prompt.Choices {
		p.writef("    [%d] %s\n", j+1, choice)
	}
	p.writef("    [s] Skip\n")

	for {
		if prompt.Default != "" {
			p.writef("  (default: %s) > ", prompt.Default)
		} else {
			p.writef("  > ")
		}

		line, err := p.readLine()
		switch {
		case err != nil:
			return "", err
		case isSkip(line):
			return "", validation.ErrSkipFix
		case line == "" && prompt.Default != "":
			return prompt.Default, nil
		}

		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(prompt.Choices) {
			p.writef("  Invalid choice: %s (enter 1-%d or s to skip)\n", line, len(prompt.Choices))
			continue
		}

		return prompt.Choices[idx-1], nil
	}
}

func (p *TerminalPrompter) promptFreeText(prompt validation.Prompt) (string, error) {
	p.writef("  %s", prompt.Message)
	if prompt.Default != "" {
		p.writef(" (default: %s)", prompt.Default)
	}
	p.writef(" [s to skip]: ")

	line, err := p.readLine()
	switch {
	case err != nil:
		return "", err
	case isSkip(line):
		return "", validation.ErrSkipFix
	case line == "" && prompt.Default != "":
		return prompt.Default, nil
	case line == "":
		return "", validation.ErrSkipFix
	}

	return line, nil
}

// Confirm asks a yes/no question. Anything other than y or yes declines.
func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	p.writef("%s [y/n]: ", message)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)

	return line == "y" || line == "yes", nil
}

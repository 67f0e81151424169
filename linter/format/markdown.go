package format

import (
	"fmt"
	"io/fs"
	"strings"
	"time"
)

// MaxContextLines caps how much of a file is embedded in the review context.
const MaxContextLines = 1000

// MarkdownFormatter renders a review context document: summary, findings and the code of every
// affected file, followed by instructions for a follow-up manual review.
type MarkdownFormatter struct {
	fsys      fs.FS
	files     []string
	generated time.Time
}

// NewMarkdownFormatter creates a review context formatter. Affected files are read from fsys.
func NewMarkdownFormatter(fsys fs.FS, files []string, generated time.Time) *MarkdownFormatter {
	return &MarkdownFormatter{
		fsys:      fsys,
		files:     files,
		generated: generated,
	}
}

func (f *MarkdownFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	var sb strings.Builder

	sb.WriteString("# Code Review Context\n\n")
	fmt.Fprintf(&sb, "**Generated**: %s\n\n", f.generated.UTC().Format(time.RFC3339))
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Files reviewed**: %d\n", len(f.files))
	fmt.Fprintf(&sb, "- **Blockers found**: %d\n", c.blockers)
	fmt.Fprintf(&sb, "- **Recommendations**: %d\n", c.recommends)
	if n := c.diagnostics + c.internal; n > 0 {
		fmt.Fprintf(&sb, "- **Not analyzed**: %d\n", n)
	}
	sb.WriteString("\n---\n\n")

	if c.total() == 0 {
		sb.WriteString("## No Issues Found\n\nAll files passed automated checks.\n\n")
	} else {
		sb.WriteString("## Findings\n\n")
		writeFindings(&sb, "Blockers", c.blockers, entries, func(e entry) bool {
			return e.kind == kindViolation && e.severity == "blocker"
		})
		writeFindings(&sb, "Recommendations", c.recommends, entries, func(e entry) bool {
			return e.kind == kindViolation && e.severity == "recommend"
		})
		writeFindings(&sb, "Not analyzed", c.diagnostics+c.internal, entries, func(e entry) bool {
			return e.kind != kindViolation
		})

		sb.WriteString("---\n\n")
		sb.WriteString("## Code Context\n\n")
		f.writeCodeContext(&sb, entries)
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## Instructions for Review\n\n")
	sb.WriteString("Please review the code above against the addon guidelines:\n\n")
	sb.WriteString("1. Verify all automated findings are accurate\n")
	sb.WriteString("2. Look for additional issues that automated checks might have missed\n")
	sb.WriteString("3. Provide Czech-formatted comments for any additional concerns\n")
	sb.WriteString("4. Focus on code quality, maintainability, and platform best practices\n\n")
	sb.WriteString("Use the format:\n")
	sb.WriteString("BLOCKER: `file:line` - Explanation\n")
	sb.WriteString("RECOMMEND: `file:line` - Suggestion\n")

	return sb.String(), nil
}

func writeFindings(sb *strings.Builder, title string, count int, entries []entry, include func(entry) bool) {
	if count == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s (%d)\n\n", title, count)
	for _, e := range entries {
		if !include(e) {
			continue
		}
		fmt.Fprintf(sb, "- **%s** - %s\n", entryLocation(e), e.message)
	}
	sb.WriteString("\n")
}

func (f *MarkdownFormatter) writeCodeContext(sb *strings.Builder, entries []entry) {
	for _, file := range f.files {
		var fileEntries []entry
		for _, e := range entries {
			if e.file == file && e.kind == kindViolation {
				fileEntries = append(fileEntries, e)
			}
		}
		if len(fileEntries) == 0 {
			continue
		}

		fmt.Fprintf(sb, "### %s\n\n", file)

		data, err := fs.ReadFile(f.fsys, file)
		if err != nil {
			fmt.Fprintf(sb, "*Could not read file: %s*\n\n", err.Error())
			continue
		}

		lines := strings.Split(string(data), "\n")
		if len(lines) > MaxContextLines {
			fmt.Fprintf(sb, "*File too large (%d lines), showing first %d lines*\n\n", len(lines), MaxContextLines)
			lines = lines[:MaxContextLines]
		}

		sb.WriteString("```javascript\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n```\n\n")

		sb.WriteString("**Issues in this file:**\n\n")
		for _, e := range fileEntries {
			fmt.Fprintf(sb, "- Line %d: %s\n", e.line, e.message)
		}
		sb.WriteString("\n")
	}
}

func entryLocation(e entry) string {
	switch {
	case e.file == "":
		return "-"
	case e.line > 0:
		return fmt.Sprintf("%s:%d", e.file, e.line)
	default:
		return e.file
	}
}

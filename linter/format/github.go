package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GitHubFormatter emits GitHub Actions workflow commands so findings show up as annotations.
type GitHubFormatter struct {
	files   int
	printer *message.Printer
}

// NewGitHubFormatter creates a GitHub Actions formatter for a run over files source files.
func NewGitHubFormatter(files int) *GitHubFormatter {
	return &GitHubFormatter{
		files:   files,
		printer: message.NewPrinter(language.English),
	}
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func (f *GitHubFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	var sb strings.Builder

	for _, e := range entries {
		level := "warning"
		if e.severity == "blocker" || e.kind == kindInternal {
			level = "error"
		}

		var props []string
		if e.file != "" {
			props = append(props, "file="+propertyEscaper.Replace(e.file))
		}
		if e.line > 0 {
			props = append(props, fmt.Sprintf("line=%d", e.line), fmt.Sprintf("col=%d", max(e.column, 1)))
			if e.endLine > 0 {
				props = append(props, fmt.Sprintf("endLine=%d", e.endLine))
			}
		}
		props = append(props, "title="+propertyEscaper.Replace(e.rule))

		fmt.Fprintf(&sb, "::%s %s::%s\n", level, strings.Join(props, ","), dataEscaper.Replace(e.message))
	}

	if c.total() == 0 {
		sb.WriteString(f.printer.Sprintf("::notice title=CodeReview::No issues found in %d file(s)\n", f.files))
	} else {
		sb.WriteString(f.printer.Sprintf("::notice title=ReviewSummary::Found %d blocker(s) and %d recommendation(s) in %d file(s)\n",
			c.blockers, c.recommends, f.files))
	}

	return sb.String(), nil
}

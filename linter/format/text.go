package format

import (
	"fmt"
	"strconv"
	"strings"
)

type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format writes one aligned line per result, grouped under a header line per file.
func (f *TextFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	locWidth, sevWidth, ruleWidth := 0, 0, 0
	locations := make([]string, len(entries))
	for i, e := range entries {
		locations[i] = "-"
		if e.line > 0 {
			locations[i] = strconv.Itoa(e.line) + ":" + strconv.Itoa(e.column)
		}
		locWidth = max(locWidth, len(locations[i]))
		sevWidth = max(sevWidth, len(e.severity))
		ruleWidth = max(ruleWidth, len(e.rule))
	}

	var sb strings.Builder

	currentFile := ""
	for i, e := range entries {
		if e.file != "" && e.file != currentFile {
			if currentFile != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(e.file)
			sb.WriteString("\n")
			currentFile = e.file
		}

		fmt.Fprintf(&sb, "%*s %-*s %-*s %s\n", locWidth, locations[i], sevWidth, e.severity, ruleWidth, e.rule, e.message)
	}

	if len(entries) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "✖ %d problems (%d blockers, %d recommendations, %d diagnostics)\n",
			c.total(), c.blockers, c.recommends, c.diagnostics+c.internal)
	}

	return sb.String(), nil
}

package format

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	colorGreen      = "#10B981"
	colorYellow     = "#F59E0B"
	colorRed        = "#EF4444"
	colorThemeBlue  = "#3B82F6"
	colorDetailGray = "#9CA3AF"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorThemeBlue))

	blockerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRed)).
			Bold(true)

	recommendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorYellow)).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGreen)).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDetailGray))
)

// ConsoleFormatter renders a review summary for humans, blockers first.
type ConsoleFormatter struct {
	files   int
	printer *message.Printer
}

// NewConsoleFormatter creates a console formatter for a run over files source files.
func NewConsoleFormatter(files int) *ConsoleFormatter {
	return &ConsoleFormatter{
		files:   files,
		printer: message.NewPrinter(language.English),
	}
}

func (f *ConsoleFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(f.printer.Sprintf("Reviewed %d file(s)", f.files)))
	sb.WriteString("\n")
	sb.WriteString(detailStyle.Render(strings.Repeat("=", 50)))
	sb.WriteString("\n\n")
	sb.WriteString(blockerStyle.Render(f.printer.Sprintf("BLOCKERS: %d", c.blockers)))
	sb.WriteString("\n")
	sb.WriteString(recommendStyle.Render(f.printer.Sprintf("RECOMMENDATIONS: %d", c.recommends)))
	sb.WriteString("\n")
	if c.diagnostics+c.internal > 0 {
		sb.WriteString(detailStyle.Render(f.printer.Sprintf("NOT ANALYZED: %d", c.diagnostics+c.internal)))
		sb.WriteString("\n")
	}

	f.writeSection(&sb, entries, kindViolation, "blocker", blockerStyle, "BLOCKER")
	f.writeSection(&sb, entries, kindViolation, "recommend", recommendStyle, "RECOMMEND")
	f.writeSection(&sb, entries, kindDiagnostic, severityWarning, detailStyle, "SKIPPED")
	f.writeSection(&sb, entries, kindInternal, severityError, detailStyle, "ERROR")

	if c.total() == 0 {
		sb.WriteString("\n")
		sb.WriteString(passStyle.Render("No issues found! Code looks good."))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (f *ConsoleFormatter) writeSection(sb *strings.Builder, entries []entry, kind entryKind, severity string, style lipgloss.Style, label string) {
	first := true
	for _, e := range entries {
		if e.kind != kind || e.severity != severity {
			continue
		}
		if first {
			sb.WriteString("\n")
			first = false
		}

		sb.WriteString(style.Render(label + ":"))
		sb.WriteString(" ")
		if e.file != "" {
			sb.WriteString(e.file)
			if e.line > 0 {
				sb.WriteString(":" + strconv.Itoa(e.line))
			}
			sb.WriteString(" - ")
		}
		sb.WriteString(e.message)
		sb.WriteString("\n")
	}
}

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/addonreview/cachelint/linter"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/spf13/cobra"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules",
		Long: `List the built-in rules with their metadata.

Examples:
  cachelint rules
  cachelint rules --format markdown > RULES.md
  cachelint rules --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, markdown or json")

	return cmd
}

func runRules(w io.Writer, outputFormat string) error {
	registry, err := rules.NewRegistry(rules.Default()...)
	if err != nil {
		return err
	}
	gen := linter.NewDocGenerator(registry)

	switch outputFormat {
	case "json":
		return gen.WriteJSON(w)
	case "markdown", "md":
		return gen.WriteMarkdown(w)
	case "text", "":
		return printRulesText(w, gen.GenerateCategoryDocs(), registry.AllCategories())
	default:
		return fmt.Errorf("unknown format %q: expected text, markdown or json", outputFormat)
	}
}

func printRulesText(w io.Writer, byCategory map[string][]*linter.RuleDoc, categories []string) error {
	for _, cat := range categories {
		docs := byCategory[cat]

		fmt.Fprintf(w, "\n%s (%d rules)\n", strings.ToUpper(cat), len(docs))
		fmt.Fprintln(w, strings.Repeat("─", 80))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, doc := range docs {
			fmt.Fprintf(tw, "  %s\t%s\t[%s]\n", doc.ID, doc.Summary, doc.DefaultSeverity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return nil
}

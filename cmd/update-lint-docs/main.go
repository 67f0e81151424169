package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/addonreview/cachelint/linter"
	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/system"
)

const (
	readmeFile  = "README.md"
	startMarker = "<!-- START LINT RULES -->"
	endMarker   = "<!-- END LINT RULES -->"
)

func main() {
	if err := updateLintDocs(&system.FileSystem{}, readmeFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updateLintDocs(fsys system.WritableVirtualFS, filename string) error {
	fmt.Println("🔄 Updating lint rules in README...")

	registry, err := rules.NewRegistry(rules.Default()...)
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}
	docGen := linter.NewDocGenerator(registry)

	if err := updateReadmeFile(fsys, filename, generateRulesTable(docGen)); err != nil {
		return fmt.Errorf("failed to update README: %w", err)
	}

	fmt.Printf("✅ Updated %s\n", filename)
	return nil
}

func generateRulesTable(docGen *linter.DocGenerator) string {
	var content strings.Builder
	content.WriteString("| Rule | Severity | Category | Description |\n")
	content.WriteString("|------|----------|----------|-------------|\n")

	for _, doc := range docGen.GenerateAllRuleDocs() {
		desc := strings.ReplaceAll(doc.Description, "|", "\\|")
		desc = strings.ReplaceAll(desc, "\n", " ")
		fmt.Fprintf(&content, "| <a name=\"%s\"></a>`%s` | %s | %s | %s |\n", doc.ID, doc.ID, doc.DefaultSeverity, doc.Category, desc)
	}

	return content.String()
}

func updateReadmeFile(fsys system.WritableVirtualFS, filename, newContent string) error {
	data, err := fsys.ReadFile(filename)
	if err != nil {
		return err
	}

	content := string(data)

	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return fmt.Errorf("could not find lint rules markers in %s", filename)
	}

	before := content[:startIdx+len(startMarker)]
	after := content[endIdx:]

	return fsys.WriteFile(filename, []byte(before+"\n\n"+newContent+"\n"+after), 0o600)
}

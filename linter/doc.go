package linter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/addonreview/cachelint/linter/rules"
)

// DocGenerator generates documentation from registered rules
type DocGenerator struct {
	registry *rules.Registry
}

// NewDocGenerator creates a new documentation generator
func NewDocGenerator(registry *rules.Registry) *DocGenerator {
	return &DocGenerator{registry: registry}
}

// RuleDoc represents documentation for a single rule
type RuleDoc struct {
	ID              string   `json:"id" yaml:"id"`
	Category        string   `json:"category" yaml:"category"`
	Summary         string   `json:"summary" yaml:"summary"`
	Description     string   `json:"description" yaml:"description"`
	Rationale       string   `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Link            string   `json:"link,omitempty" yaml:"link,omitempty"`
	DefaultSeverity string   `json:"default_severity" yaml:"default_severity"`
	Kinds           []string `json:"kinds" yaml:"kinds"`
	GoodExample     string   `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	BadExample      string   `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
}

// GenerateRuleDoc generates documentation for a single rule
func (g *DocGenerator) GenerateRuleDoc(rule rules.Rule) *RuleDoc {
	doc := &RuleDoc{
		ID:              rule.ID(),
		Category:        rule.Category(),
		Summary:         rule.Summary(),
		Description:     rule.Description(),
		Link:            rule.Link(),
		DefaultSeverity: rule.DefaultSeverity().String(),
	}
	for _, kind := range rule.Kinds() {
		doc.Kinds = append(doc.Kinds, string(kind))
	}

	if documented, ok := rule.(rules.DocumentedRule); ok {
		doc.GoodExample = documented.GoodExample()
		doc.BadExample = documented.BadExample()
		doc.Rationale = documented.Rationale()
	}

	return doc
}

// GenerateAllRuleDocs generates documentation for all registered rules
func (g *DocGenerator) GenerateAllRuleDocs() []*RuleDoc {
	var docs []*RuleDoc
	for _, rule := range g.registry.AllRules() {
		docs = append(docs, g.GenerateRuleDoc(rule))
	}
	return docs
}

// GenerateCategoryDocs groups rules by category
func (g *DocGenerator) GenerateCategoryDocs() map[string][]*RuleDoc {
	categories := make(map[string][]*RuleDoc)
	for _, rule := range g.registry.AllRules() {
		doc := g.GenerateRuleDoc(rule)
		categories[doc.Category] = append(categories[doc.Category], doc)
	}
	return categories
}

// WriteJSON writes rule documentation as JSON
func (g *DocGenerator) WriteJSON(w io.Writer) error {
	docs := g.GenerateAllRuleDocs()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"rules":      docs,
		"categories": g.registry.AllCategories(),
	})
}

// WriteMarkdown writes rule documentation as Markdown, categories in alphabetical order
func (g *DocGenerator) WriteMarkdown(w io.Writer) error {
	docs := g.GenerateCategoryDocs()
	categories := g.registry.AllCategories()

	mw := &markdownWriter{w: w}

	mw.printf("# Rules Reference\n\n")
	mw.printf("## Categories\n\n")
	for _, category := range categories {
		mw.printf("- [%s](#%s)\n", category, category)
	}
	mw.printf("\n")

	for _, category := range categories {
		mw.printf("## %s\n\n", category)
		for _, rule := range docs[category] {
			mw.rule(rule)
		}
	}

	return mw.err
}

// markdownWriter keeps the first write error and turns later writes into no-ops.
type markdownWriter struct {
	w   io.Writer
	err error
}

func (mw *markdownWriter) printf(format string, args ...any) {
	if mw.err != nil {
		return
	}
	_, mw.err = fmt.Fprintf(mw.w, format, args...)
}

func (mw *markdownWriter) rule(rule *RuleDoc) {
	mw.printf("### %s\n\n", rule.ID)
	mw.printf("**Severity:** %s  \n", rule.DefaultSeverity)
	mw.printf("**Category:** %s  \n", rule.Category)
	if rule.Summary != "" {
		mw.printf("**Summary:** %s  \n", rule.Summary)
	}
	if len(rule.Kinds) > 0 {
		mw.printf("**Inspects:** %s  \n", strings.Join(rule.Kinds, ", "))
	}
	mw.printf("\n%s\n\n", rule.Description)

	if rule.Rationale != "" {
		mw.printf("#### Rationale\n\n%s\n\n", rule.Rationale)
	}

	mw.example("#### ❌ Incorrect", rule.BadExample)
	mw.example("#### ✅ Correct", rule.GoodExample)

	if rule.Link != "" {
		mw.printf("[Documentation →](%s)\n\n", rule.Link)
	}

	mw.printf("---\n\n")
}

func (mw *markdownWriter) example(heading, example string) {
	if example == "" {
		return
	}
	mw.printf("%s\n```javascript\n%s\n```\n\n", heading, example)
}

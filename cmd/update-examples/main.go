// Command update-examples copies the runnable examples of the linter package into README.md.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/addonreview/cachelint/system"
)

const (
	startMarker  = "<!-- START USAGE EXAMPLES -->"
	endMarker    = "<!-- END USAGE EXAMPLES -->"
	outputPrefix = "// Output:"
)

// ExampleInfo holds information about an example function
type ExampleInfo struct {
	Name        string
	Title       string
	Description string
	Code        string
	Output      string
}

// examplesTarget pairs an examples test file with the README its examples are copied into.
type examplesTarget struct {
	ExamplesFile string
	ReadmeFile   string
}

var targets = []examplesTarget{
	{ExamplesFile: filepath.Join("linter", "linter_examples_test.go"), ReadmeFile: "README.md"},
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

func main() {
	if err := updateExamples(&system.FileSystem{}, targets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updateExamples(fsys system.WritableVirtualFS, targets []examplesTarget) error {
	fmt.Println("🔄 Updating examples in README files...")

	for _, target := range targets {
		if err := processTarget(fsys, target); err != nil {
			return fmt.Errorf("failed to process %s: %w", target.ExamplesFile, err)
		}
	}

	fmt.Println("🎉 Examples updated successfully!")
	return nil
}

func processTarget(fsys system.WritableVirtualFS, target examplesTarget) error {
	for _, name := range []string{target.ExamplesFile, target.ReadmeFile} {
		if _, err := fsys.Stat(name); errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("⚠️  Skipping %s: %s does not exist\n", target.ExamplesFile, name)
			return nil
		}
	}

	src, err := fsys.ReadFile(target.ExamplesFile)
	if err != nil {
		return err
	}

	examples, err := parseExamplesFile(target.ExamplesFile, src)
	if err != nil {
		return fmt.Errorf("failed to parse examples file: %w", err)
	}

	if err := updateReadmeFile(fsys, target.ReadmeFile, generateReadmeContent(examples)); err != nil {
		return fmt.Errorf("failed to update README: %w", err)
	}

	fmt.Printf("✅ Copied %d example(s) into %s\n", len(examples), target.ReadmeFile)
	return nil
}

// parseExamplesFile returns the Example_ functions of src in declaration order.
func parseExamplesFile(filename string, src []byte) ([]ExampleInfo, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var examples []ExampleInfo
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil || !strings.HasPrefix(fn.Name.Name, "Example_") {
			continue
		}

		example, err := extractExample(fset, fn, file.Comments)
		if err != nil {
			fmt.Printf("⚠️  Failed to extract example %s: %v\n", fn.Name.Name, err)
			continue
		}
		examples = append(examples, example)
	}

	return examples, nil
}

func extractExample(fset *token.FileSet, fn *ast.FuncDecl, comments []*ast.CommentGroup) (ExampleInfo, error) {
	example := ExampleInfo{Name: fn.Name.Name}

	if fn.Doc != nil {
		example.Title, example.Description = parseDocComment(fn.Doc.Text())
	}
	if example.Title == "" {
		example.Title = generateTitleFromName(fn.Name.Name)
	}

	// Comments inside the body are only printed when handed to the printer explicitly
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, &printer.CommentedNode{Node: fn.Body, Comments: comments}); err != nil {
		return example, err
	}

	example.Code, example.Output = splitOutputComment(dedent(buf.String()))

	return example, nil
}

// dedent strips the braces of a formatted block and one level of indentation.
func dedent(block string) string {
	block = strings.TrimSpace(block)
	block = strings.TrimSuffix(strings.TrimPrefix(block, "{"), "}")

	lines := strings.Split(strings.TrimSpace(block), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "\t")
	}
	return strings.Join(lines, "\n")
}

// parseDocComment turns "Example_x demonstrates how to do y." into the title "Do y". Following lines
// become the description.
func parseDocComment(comment string) (title, description string) {
	first, rest, _ := strings.Cut(strings.TrimSpace(comment), "\n")

	title = strings.TrimSpace(first)
	if _, action, ok := strings.Cut(title, " demonstrates "); ok {
		action = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(action), "how to "), ".")
		title = capitalize(action)
	}

	return title, strings.TrimSpace(rest)
}

// generateTitleFromName turns Example_lintingFiles into "Linting Files".
func generateTitleFromName(funcName string) string {
	name := strings.TrimPrefix(funcName, "Example_")
	return capitalize(camelBoundary.ReplaceAllString(name, "$1 $2"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitOutputComment separates the trailing "// Output:" block from the example code.
func splitOutputComment(code string) (string, string) {
	lines := strings.Split(code, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, outputPrefix) {
			continue
		}

		var output []string
		if first := strings.TrimSpace(strings.TrimPrefix(trimmed, outputPrefix)); first != "" {
			output = append(output, first)
		}
		for _, rest := range lines[i+1:] {
			rest = strings.TrimSpace(rest)
			if !strings.HasPrefix(rest, "//") {
				break
			}
			output = append(output, strings.TrimSpace(strings.TrimPrefix(rest, "//")))
		}

		return strings.TrimRight(strings.Join(lines[:i], "\n"), "\n\t "), strings.Join(output, "\n")
	}

	return code, ""
}

func generateReadmeContent(examples []ExampleInfo) string {
	var content strings.Builder

	for _, example := range examples {
		fmt.Fprintf(&content, "### %s\n\n", example.Title)

		if example.Description != "" {
			content.WriteString(example.Description + "\n\n")
		}

		fmt.Fprintf(&content, "```go\n%s\n```\n\n", example.Code)

		if example.Output != "" {
			fmt.Fprintf(&content, "Output:\n\n```text\n%s\n```\n\n", example.Output)
		}
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
		return fmt.Errorf("could not find usage examples markers in %s", filename)
	}

	before := content[:startIdx+len(startMarker)]
	after := content[endIdx:]

	return fsys.WriteFile(filename, []byte(before+"\n\n"+newContent+after), 0o600)
}

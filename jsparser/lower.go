package jsparser

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-sourcemap/sourcemap"
)

const topLevelAwait = "Top-level await"

// mapStage translates generated positions through one source map. lineShift is added to the
// resulting line before the next stage.
type mapStage struct {
	consumer  *sourcemap.Consumer
	lineShift int
}

// mapChain maps positions in the parsed text back to the original source, last transform first.
type mapChain []mapStage

// original returns the 1-based line and 0-based UTF-16 column in the original source.
func (c mapChain) original(line, column int) (int, int, bool) {
	if len(c) == 0 {
		return 0, 0, false
	}
	for _, stage := range c {
		if stage.consumer == nil {
			return 0, 0, false
		}
		_, _, l, col, ok := stage.consumer.Source(line, column)
		if !ok || l+stage.lineShift < 1 {
			return 0, 0, false
		}
		line, column = l+stage.lineShift, col
	}
	return line, column, true
}

type transformOptions struct {
	loader api.Loader
	format api.Format
	target api.Target
}

// lower rewrites module syntax and the enabled extensions into a plain script goja can parse.
func lower(filename, source string, syntax Syntax) (string, mapChain, error) {
	code, sm, err := transform(filename, source, transformOptions{
		loader: loaderFor(filename, syntax),
		format: api.FormatCommonJS,
		target: api.ES2020,
	})
	if err == nil {
		return code, chainOf(mapStage{consumer: sm}), nil
	}
	if !strings.Contains(err.Message, topLevelAwait) {
		return "", nil, err
	}

	return lowerAsyncModule(filename, source, syntax)
}

// lowerAsyncModule handles modules using top-level await. The module is first normalized to
// JavaScript, then its body is moved into an async function with the imports hoisted in front.
// The wrapper line shifts the body down by one line.
func lowerAsyncModule(filename, source string, syntax Syntax) (string, mapChain, error) {
	module, moduleMap, err := transform(filename, source, transformOptions{
		loader: loaderFor(filename, syntax),
		format: api.FormatESModule,
		target: api.ESNext,
	})
	if err != nil {
		return "", nil, err
	}

	code, sm, err := transform(filename, wrapAsync(module), transformOptions{
		loader: api.LoaderJS,
		format: api.FormatCommonJS,
		target: api.ES2020,
	})
	if err != nil {
		// Locations refer to the wrapped text.
		err.Line, err.Column = 0, 0
		return "", nil, err
	}

	return code, chainOf(mapStage{consumer: sm, lineShift: -1}, mapStage{consumer: moduleMap}), nil
}

func chainOf(stages ...mapStage) mapChain {
	for _, stage := range stages {
		if stage.consumer == nil {
			return nil
		}
	}
	return stages
}

// wrapAsync rewrites esbuild's module output so every statement except the imports runs inside an
// async arrow function. Line and column positions of the body are kept, one line down.
func wrapAsync(module string) string {
	lines := strings.Split(module, "\n")

	var hoisted []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case isStatementStart(line, "import") && !strings.HasPrefix(line, "import(") && !strings.HasPrefix(line, "import."):
			end := statementEnd(lines, i)
			for j := i; j <= end; j++ {
				hoisted = append(hoisted, strings.TrimSpace(lines[j]))
				lines[j] = ""
			}
			i = end
		case isStatementStart(line, "export {") || isStatementStart(line, "export *"):
			end := statementEnd(lines, i)
			for j := i; j <= end; j++ {
				lines[j] = ""
			}
			i = end
		case strings.HasPrefix(line, "export default "):
			lines[i] = "void" + strings.Repeat(" ", len("export default ")-len("void")) + line[len("export default "):]
		case strings.HasPrefix(line, "export "):
			lines[i] = strings.Repeat(" ", len("export ")) + line[len("export "):]
		}
	}

	return strings.Join(hoisted, " ") + "(async () => {\n" + strings.Join(lines, "\n") + "\n})();\n"
}

// isStatementStart matches keyword at column 0 followed by a separator esbuild prints after it.
func isStatementStart(line, keyword string) bool {
	if !strings.HasPrefix(line, keyword) {
		return false
	}
	if strings.HasSuffix(keyword, " ") || strings.HasSuffix(keyword, "{") || strings.HasSuffix(keyword, "*") {
		return true
	}
	rest := line[len(keyword):]
	return rest != "" && strings.ContainsRune(" {*\"'", rune(rest[0]))
}

// statementEnd returns the index of the line closing the statement that starts at lines[i].
func statementEnd(lines []string, i int) int {
	for j := i; j < len(lines); j++ {
		if strings.HasSuffix(strings.TrimRight(lines[j], " \t\r"), ";") {
			return j
		}
	}
	return len(lines) - 1
}

func transform(filename, source string, opts transformOptions) (string, *sourcemap.Consumer, *ParseError) {
	result := api.Transform(source, api.TransformOptions{
		Sourcefile: filename,
		Loader:     opts.loader,
		Format:     opts.format,
		Target:     opts.target,
		Charset:    api.CharsetUTF8,
		Sourcemap:  api.SourceMapExternal,
		LogLevel:   api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return "", nil, esbuildError(filename, result.Errors[0])
	}

	if len(result.Map) == 0 {
		return string(result.Code), nil, nil
	}

	sm, err := sourcemap.Parse("", result.Map)
	if err != nil {
		// Empty mappings happen for sources without any code.
		if strings.Contains(err.Error(), "mappings are empty") {
			return string(result.Code), nil, nil
		}
		return "", nil, &ParseError{
			Filename: filename,
			Message:  fmt.Sprintf("reading source map: %v", err),
		}
	}

	return string(result.Code), sm, nil
}

func loaderFor(filename string, syntax Syntax) api.Loader {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		if syntax.TypeScript {
			return api.LoaderTS
		}
	case ".tsx":
		if syntax.TypeScript {
			return api.LoaderTSX
		}
	case ".jsx":
		if syntax.JSX {
			return api.LoaderJSX
		}
	}

	switch {
	case syntax.TypeScript && syntax.JSX:
		return api.LoaderTSX
	case syntax.TypeScript:
		return api.LoaderTS
	case syntax.JSX:
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

func esbuildError(filename string, msg api.Message) *ParseError {
	pe := &ParseError{
		Filename: filename,
		Message:  msg.Text,
	}
	if loc := msg.Location; loc != nil {
		pe.Line = loc.Line
		// esbuild columns are 0-based byte offsets into the line.
		column := loc.Column
		if column > len(loc.LineText) {
			column = len(loc.LineText)
		}
		pe.Column = utf16Len(loc.LineText[:column]) + 1
	}
	return pe
}

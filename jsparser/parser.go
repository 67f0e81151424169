// Package jsparser turns client-side script sources into goja syntax trees.
//
// Plain scripts are parsed directly so node positions index the original text. Sources using module
// syntax, TypeScript annotations or JSX are first lowered with esbuild and positions are mapped back
// to the original text through the generated source map.
package jsparser

import (
	"fmt"
	"strings"

	"github.com/addonreview/cachelint/errors"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// ErrParse is the sentinel wrapped by every ParseError.
const ErrParse = errors.Error("parse error")

// ParseError reports a source that could not be turned into a syntax tree.
type ParseError struct {
	Filename string
	// Line and Column follow the Position convention; zero when the parser gave no location.
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Syntax selects the optional syntax extensions accepted on top of standard JavaScript.
// Enabling an extension never causes a failure on sources that do not use it.
type Syntax struct {
	TypeScript bool `yaml:"typescript" json:"typescript"`
	JSX        bool `yaml:"jsx" json:"jsx"`
}

// DefaultSyntax enables both TypeScript and JSX.
func DefaultSyntax() Syntax {
	return Syntax{TypeScript: true, JSX: true}
}

// Unit is a parsed source ready for traversal.
type Unit struct {
	filename string
	program  *ast.Program
	// lines indexes the parsed text, original the text as written. They are the same index unless
	// the source was lowered.
	lines    *lineIndex
	original *lineIndex
	mapping  mapChain
	lowered  bool
}

// Filename returns the name the unit was parsed under.
func (u *Unit) Filename() string {
	return u.filename
}

// Program returns the root of the syntax tree.
func (u *Unit) Program() *ast.Program {
	return u.program
}

// Source returns the source text as written.
func (u *Unit) Source() string {
	return u.original.src
}

// Lowered reports whether the source went through esbuild before parsing.
func (u *Unit) Lowered() bool {
	return u.lowered
}

// Position converts a node index into a position in the original source.
func (u *Unit) Position(idx file.Idx) Position {
	if idx <= 0 || u.program == nil || u.program.File == nil {
		return Position{}
	}

	line, column := u.lines.position(int(idx) - u.program.File.Base())

	if origLine, origColumn, ok := u.mapping.original(line, column); ok {
		return Position{Line: origLine, Column: origColumn + 1}
	}

	return Position{Line: line, Column: column + 1}
}

// Location returns the span of node in the original source.
func (u *Unit) Location(node ast.Node) Location {
	start := u.Position(node.Idx0())
	if !u.lowered {
		return Location{Start: start, End: u.Position(node.Idx1())}
	}
	return Location{Start: start, End: u.loweredEnd(node, start)}
}

// loweredEnd finds where node ends in the original text. Source maps only record where tokens
// start, so the end is measured from the start: by the node's text when lowering kept it verbatim,
// by the literal written there, or by the mapped end when that does not precede start.
func (u *Unit) loweredEnd(node ast.Node, start Position) Position {
	offset, ok := u.original.offset(start)
	if !ok {
		return start
	}

	base := u.program.File.Base()
	from, to := int(node.Idx0())-base, int(node.Idx1())-base
	if from >= 0 && from < to && to <= len(u.lines.src) {
		if text := u.lines.src[from:to]; strings.HasPrefix(u.original.src[offset:], text) {
			return u.original.at(offset + len(text))
		}
	}

	if lit, ok := LiteralAt(u.original.src, offset); ok {
		return u.original.at(lit.End)
	}

	if end := u.Position(node.Idx1()); !end.Before(start) {
		return end
	}
	return start
}

// LiteralAt returns the literal written in the original source where node starts.
func (u *Unit) LiteralAt(node ast.Node) (Literal, bool) {
	offset, ok := u.original.offset(u.Position(node.Idx0()))
	if !ok {
		return Literal{}, false
	}
	return LiteralAt(u.original.src, offset)
}

// Parse builds the syntax tree for source. The returned error is always a *ParseError.
func Parse(filename, source string, syntax Syntax) (*Unit, error) {
	original := newLineIndex(source)

	program, err := parseScript(filename, source)
	if err == nil {
		return &Unit{
			filename: filename,
			program:  program,
			lines:    original,
			original: original,
		}, nil
	}

	lowered, mapping, lowerErr := lower(filename, source, syntax)
	if lowerErr != nil {
		return nil, lowerErr
	}

	program, loweredErr := parseScript(filename, lowered)
	if loweredErr != nil {
		// The lowered text is not what the user wrote; report the original failure instead.
		return nil, toParseError(filename, err)
	}

	return &Unit{
		filename: filename,
		program:  program,
		lines:    newLineIndex(lowered),
		original: original,
		mapping:  mapping,
		lowered:  true,
	}, nil
}

func parseScript(filename, source string) (*ast.Program, error) {
	return parser.ParseFile(nil, filename, source, parser.IgnoreRegExpErrors, parser.WithDisableSourceMaps)
}

func toParseError(filename string, err error) *ParseError {
	var list parser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return &ParseError{
			Filename: filename,
			Line:     list[0].Position.Line,
			Column:   list[0].Position.Column,
			Message:  list[0].Message,
		}
	}
	return &ParseError{Filename: filename, Message: err.Error()}
}

package jsparser

import (
	"strings"

	"github.com/dop251/goja/ast"
)

// Literal is a string literal or a template literal without substitutions as it is written in a
// source.
type Literal struct {
	// Quote is the opening and closing character: ', " or a backtick.
	Quote byte
	// Text is everything between the quotes with escape sequences left untouched.
	Text string
	// Start and End are byte offsets of the opening quote and just past the closing one.
	Start int
	End   int
}

// Raw returns the literal including its quotes.
func (l Literal) Raw() string {
	return string(l.Quote) + l.Text + string(l.Quote)
}

// Value returns the string the literal evaluates to.
func (l Literal) Value() (string, bool) {
	if !strings.Contains(l.Text, `\`) {
		return l.Text, true
	}

	program, err := parseScript("", "("+l.Raw()+")")
	if err != nil || len(program.Body) != 1 {
		return "", false
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return "", false
	}

	switch e := stmt.Expression.(type) {
	case *ast.StringLiteral:
		return e.Value.String(), true
	case *ast.TemplateLiteral:
		if len(e.Elements) == 1 && e.Elements[0].Valid {
			return e.Elements[0].Parsed.String(), true
		}
	}
	return "", false
}

// LiteralAt scans the literal that opens at offset in src. It reports false when no quote opens
// there, the literal is unterminated, or a template literal contains a substitution.
func LiteralAt(src string, offset int) (Literal, bool) {
	if offset < 0 || offset >= len(src) {
		return Literal{}, false
	}

	quote := src[offset]
	if quote != '\'' && quote != '"' && quote != '`' {
		return Literal{}, false
	}

	for i := offset + 1; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case c == quote:
			return Literal{Quote: quote, Text: src[offset+1 : i], Start: offset, End: i + 1}, true
		case quote == '`' && c == '$' && i+1 < len(src) && src[i+1] == '{':
			return Literal{}, false
		case quote != '`' && (c == '\n' || c == '\r'):
			return Literal{}, false
		}
	}

	return Literal{}, false
}

package jsparser

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location in the original source text.
// Line and Column are both 1-based. Column counts UTF-16 code units, matching JavaScript tooling.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Column < other.Column)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is the source span covered by a node.
type Location struct {
	Start Position
	End   Position
}

// lineIndex converts byte offsets into line and UTF-16 column numbers.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case 0xE2:
			// U+2028 LINE SEPARATOR and U+2029 PARAGRAPH SEPARATOR
			if i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xA8 || src[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// position returns the 1-based line and 0-based UTF-16 column of offset.
func (li *lineIndex) position(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return line + 1, utf16Len(li.src[li.starts[line]:offset])
}

func (li *lineIndex) at(offset int) Position {
	line, column := li.position(offset)
	return Position{Line: line, Column: column + 1}
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		s = s[size:]
	}
	return n
}

// Offset returns the byte offset of pos in src. It reports false when pos lies outside src or
// splits a surrogate pair.
func Offset(src string, pos Position) (int, bool) {
	return newLineIndex(src).offset(pos)
}

func (li *lineIndex) offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(li.starts) || pos.Column < 1 {
		return 0, false
	}

	i := li.starts[pos.Line-1]
	end := len(li.src)
	if pos.Line < len(li.starts) {
		end = li.starts[pos.Line]
	}

	units := pos.Column - 1
	for units > 0 {
		if i >= end {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(li.src[i:])
		if r >= 0x10000 {
			units -= 2
		} else {
			units--
		}
		i += size
	}
	if units < 0 {
		return 0, false
	}

	return i, true
}

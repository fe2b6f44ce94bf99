package parser

import (
	"strconv"
	"strings"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/internal/log"
	"github.com/cottand/tyl/util"
)

// Sexp is a node of the generic parenthesised tree the translator consumes.
// It is closed over *Atom and *List.
type Sexp interface {
	ast.Positioner
	String() string
	sexpNode()
}

var (
	_ Sexp = (*Atom)(nil)
	_ Sexp = (*List)(nil)
)

type Atom struct {
	ast.Range
	Text string
}

type List struct {
	ast.Range
	Elems []Sexp
}

func (*Atom) sexpNode()        {}
func (a *Atom) String() string { return a.Text }

func (*List) sexpNode() {}
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the text of the first element if it is an atom
func (l *List) Head() (string, bool) {
	if len(l.Elems) == 0 {
		return "", false
	}
	atom, ok := l.Elems[0].(*Atom)
	if !ok {
		return "", false
	}
	return atom.Text, true
}

// ReadSexps reads every top-level s-expression in src.
//
// Whitespace separates atoms, and ';' starts a comment running until the
// end of the line. Every node carries its byte range inside src.
func ReadSexps(src string) ([]Sexp, error) {
	logger := log.DefaultLogger.With("section", "parser")

	var top []Sexp
	var open util.Stack[*List]
	appendNode := func(node Sexp) {
		if parent, ok := open.Peek(); ok {
			parent.Elems = append(parent.Elems, node)
		} else {
			top = append(top, node)
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '(':
			open.Push(&List{Range: ast.RangeFromOffsets(i, i+1), Elems: make([]Sexp, 0)})
			i++
		case c == ')':
			list, ok := open.Pop()
			if !ok {
				return nil, ilerr.New(ilerr.NewSyntax{
					Range:         ast.RangeFromOffsets(i, i+1),
					ParserMessage: "unexpected ')' without matching '('",
				})
			}
			i++
			list.PosEnd = ast.RangeFromOffsets(i, i).PosStart
			appendNode(list)
		default:
			start := i
			for i < len(src) && !isSpace(src[i]) && src[i] != '(' && src[i] != ')' && src[i] != ';' {
				i++
			}
			appendNode(&Atom{Range: ast.RangeFromOffsets(start, i), Text: src[start:i]})
		}
	}

	if unclosed, ok := open.Peek(); ok {
		return nil, ilerr.New(ilerr.NewSyntax{
			Range:         unclosed.Range,
			ParserMessage: "unbalanced parentheses: '(' is never closed",
		})
	}
	logger.Debug("read s-expressions", "count", len(top))
	return top, nil
}

// IsNumeral reports whether text is a non-empty run of decimal digits
func IsNumeral(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

// ParseNat parses a numeral into a natural number
func ParseNat(text string) (uint64, error) {
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			return 0, numErr.Err
		}
		return 0, err
	}
	return n, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

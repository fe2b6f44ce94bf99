package parser

import (
	"log/slog"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/internal/log"
)

type TokenKind uint8

const (
	_ TokenKind = iota
	TokNumber
	TokIf
	TokThen
	TokElse
	TokTrue
	TokFalse
	TokAnd
	TokOr
	TokEq
	TokPlus
	TokNot
	TokLParen
	TokRParen
)

// Token is a chunk of legacy source text. Tokens carry no position
// beyond their index in the sequence.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	return t.Text
}

var keywords = []struct {
	word string
	kind TokenKind
}{
	{"if", TokIf},
	{"then", TokThen},
	{"else", TokElse},
	{"true", TokTrue},
	{"false", TokFalse},
	{"&&", TokAnd},
	{"||", TokOr},
	{"==", TokEq},
}

type lexer struct {
	src    string
	i      int
	tokens []Token
	logger *slog.Logger
}

// Lex splits legacy source text into tokens.
//
// Keywords and two-character operators are recognised from their first
// character and then consumed one expected character at a time, so
// "ife" fails on the 'e' rather than backtracking.
// Characters that start no token are skipped.
func Lex(src string) ([]Token, error) {
	l := &lexer{
		src:    src,
		tokens: make([]Token, 0),
		logger: log.DefaultLogger.With("section", "lexer"),
	}
	for l.i < len(src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) next() error {
	c := l.src[l.i]
	switch {
	case c == ' ':
		l.i++
	case isDigit(c):
		start := l.i
		for l.i < len(l.src) && isDigit(l.src[l.i]) {
			l.i++
		}
		l.emit(TokNumber, l.src[start:l.i])
	case c == 't':
		// 't' starts both "true" and "then"
		if l.i+1 < len(l.src) && l.src[l.i+1] == 'h' {
			return l.keyword("then", TokThen)
		}
		if l.i+1 < len(l.src) && l.src[l.i+1] == 'r' {
			return l.keyword("true", TokTrue)
		}
		return l.unexpected(l.i+1, "'r' or 'h'")
	case c == '+':
		l.i++
		l.emit(TokPlus, "+")
	case c == '!':
		l.i++
		l.emit(TokNot, "!")
	case c == '(':
		l.i++
		l.emit(TokLParen, "(")
	case c == ')':
		l.i++
		l.emit(TokRParen, ")")
	default:
		for _, kw := range keywords {
			if kw.word[0] == c {
				return l.keyword(kw.word, kw.kind)
			}
		}
		l.logger.Debug("skipping unrecognised character", "char", string(c), "offset", l.i)
		l.i++
	}
	return nil
}

// keyword consumes word, failing at the first character that does not match
func (l *lexer) keyword(word string, kind TokenKind) error {
	for j := 0; j < len(word); j++ {
		if l.i >= len(l.src) || l.src[l.i] != word[j] {
			return l.unexpected(l.i, "'"+word[j:j+1]+"'")
		}
		l.i++
	}
	l.emit(kind, word)
	return nil
}

func (l *lexer) emit(kind TokenKind, text string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text})
}

func (l *lexer) unexpected(at int, expected string) error {
	found := ""
	if at < len(l.src) {
		found = l.src[at : at+1]
	}
	return ilerr.New(ilerr.NewUnexpectedChar{
		Range:    ast.RangeFromOffsets(at, at+1),
		Expected: expected,
		Found:    found,
	})
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

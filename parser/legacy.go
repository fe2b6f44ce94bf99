package parser

import (
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
)

// ParseLegacy lexes and parses an expression of the legacy token grammar:
//
//	Exp ::= Number | true | false
//	      | ( + Exp Exp ) | ( || Exp Exp ) | ( == Exp Exp ) | ( && Exp Exp )
//	      | ( if Exp then Exp else Exp )
func ParseLegacy(src string) (ast.Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseExp(tokens)
}

// ParseExp parses exactly one legacy expression from tokens.
// Binary operators become an *ast.Apply of the operator's variable,
// so they are resolved against the same primitives as the main language.
func ParseExp(tokens []Token) (ast.Expr, error) {
	p := &legacyParser{tokens: tokens}
	expr, err := p.exp()
	if err != nil {
		return nil, err
	}
	if p.index != len(tokens) {
		remaining := make([]string, 0, len(tokens)-p.index)
		for _, t := range tokens[p.index:] {
			remaining = append(remaining, t.Text)
		}
		return nil, ilerr.New(ilerr.NewTrailingTokens{Remaining: remaining})
	}
	return expr, nil
}

type legacyParser struct {
	tokens []Token
	index  int
}

var binaryOps = map[TokenKind]string{
	TokPlus: "+",
	TokOr:   "||",
	TokEq:   "==",
	TokAnd:  "&&",
}

func (p *legacyParser) exp() (ast.Expr, error) {
	if p.index >= len(p.tokens) {
		return nil, ilerr.New(ilerr.NewUnexpectedEOF{Expected: "an expression"})
	}
	tok := p.tokens[p.index]
	switch tok.Kind {
	case TokNumber:
		p.index++
		value, err := ParseNat(tok.Text)
		if err != nil {
			return nil, ilerr.New(ilerr.NewBadLiteral{Text: tok.Text, Reason: err.Error()})
		}
		return &ast.NumLit{Value: value}, nil
	case TokTrue:
		p.index++
		return &ast.BoolLit{Value: true}, nil
	case TokFalse:
		p.index++
		return &ast.BoolLit{Value: false}, nil
	case TokLParen:
		p.index++
		return p.form()
	default:
		return nil, p.unexpected("an expression")
	}
}

// form parses what follows an opening parenthesis
func (p *legacyParser) form() (ast.Expr, error) {
	if p.index >= len(p.tokens) {
		return nil, ilerr.New(ilerr.NewUnexpectedEOF{Expected: "an operator or 'if'"})
	}
	head := p.tokens[p.index]
	if op, ok := binaryOps[head.Kind]; ok {
		p.index++
		left, err := p.exp()
		if err != nil {
			return nil, err
		}
		right, err := p.exp()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return &ast.Apply{Head: &ast.Var{Name: op}, Args: []ast.Expr{left, right}}, nil
	}
	if head.Kind != TokIf {
		return nil, p.unexpected("an operator or 'if'")
	}
	p.index++

	cond, err := p.exp()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokThen); err != nil {
		return nil, err
	}
	then, err := p.exp()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokElse); err != nil {
		return nil, err
	}
	els, err := p.exp()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: then, Else: els}, nil
}

func (p *legacyParser) expect(kind TokenKind) error {
	want := tokenText(kind)
	if p.index >= len(p.tokens) {
		return ilerr.New(ilerr.NewUnexpectedEOF{Expected: "'" + want + "'"})
	}
	if p.tokens[p.index].Kind != kind {
		return p.unexpected("'" + want + "'")
	}
	p.index++
	return nil
}

func (p *legacyParser) unexpected(expected string) error {
	return ilerr.New(ilerr.NewUnexpectedToken{
		Expected: expected,
		Found:    p.tokens[p.index].Text,
		Index:    p.index,
	})
}

func tokenText(kind TokenKind) string {
	switch kind {
	case TokThen:
		return "then"
	case TokElse:
		return "else"
	case TokRParen:
		return ")"
	}
	for _, kw := range keywords {
		if kw.kind == kind {
			return kw.word
		}
	}
	return "?"
}

package frontend

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/parser"
	"github.com/samber/lo"
)

// TranslateProg translates every top-level s-expression into a statement
func TranslateProg(sexps []parser.Sexp) (ast.Program, error) {
	stmts := make([]ast.Stmt, 0, len(sexps))
	for _, s := range sexps {
		stmt, err := TranslateStmt(s)
		if err != nil {
			return ast.Program{}, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.Program{Stmts: stmts}, nil
}

// TranslateStmt translates one of
//
//	(define x e)
//	(assign e e)
//	(print e)
func TranslateStmt(s parser.Sexp) (ast.Stmt, error) {
	list, ok := s.(*parser.List)
	if !ok {
		return nil, ilerr.New(ilerr.NewUnknownForm{Range: ast.RangeOf(s), What: "statement", Form: s.String()})
	}
	head, ok := list.Head()
	if !ok {
		return nil, ilerr.New(ilerr.NewUnknownForm{Range: list.Range, What: "statement", Form: list.String()})
	}
	args := list.Elems[1:]

	switch head {
	case "define":
		if len(args) != 2 {
			return nil, malformed(list, "define", "2 arguments: a name and an expression", args)
		}
		name, ok := args[0].(*parser.Atom)
		if !ok {
			return nil, malformedShape(list, "define", "an identifier as its first argument", args[0])
		}
		value, err := TranslateExp(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.Define{Range: list.Range, Name: name.Text, Value: value}, nil
	case "assign":
		if len(args) != 2 {
			return nil, malformed(list, "assign", "2 arguments: a target and an expression", args)
		}
		target, err := TranslateExp(args[0])
		if err != nil {
			return nil, err
		}
		value, err := TranslateExp(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Range: list.Range, Target: target, Value: value}, nil
	case "print":
		if len(args) != 1 {
			return nil, malformed(list, "print", "1 argument", args)
		}
		value, err := TranslateExp(args[0])
		if err != nil {
			return nil, err
		}
		return &ast.Print{Range: list.Range, Value: value}, nil
	default:
		return nil, ilerr.New(ilerr.NewUnknownForm{Range: list.Range, What: "statement", Form: head})
	}
}

// TranslateExp translates an s-expression into an expression.
// Lists whose head is not a special form are applications.
func TranslateExp(s parser.Sexp) (ast.Expr, error) {
	switch s := s.(type) {
	case *parser.Atom:
		return translateAtom(s)
	case *parser.List:
		return translateList(s)
	default:
		panic(fmt.Sprintf("unexpected s-expression %T", s))
	}
}

func translateAtom(atom *parser.Atom) (ast.Expr, error) {
	switch {
	case atom.Text == "true":
		return &ast.BoolLit{Range: atom.Range, Value: true}, nil
	case atom.Text == "false":
		return &ast.BoolLit{Range: atom.Range, Value: false}, nil
	case parser.IsNumeral(atom.Text):
		n, err := parser.ParseNat(atom.Text)
		if err != nil {
			return nil, ilerr.New(ilerr.NewBadLiteral{Range: atom.Range, Text: atom.Text, Reason: err.Error()})
		}
		return &ast.NumLit{Range: atom.Range, Value: n}, nil
	default:
		return &ast.Var{Range: atom.Range, Name: atom.Text}, nil
	}
}

func translateList(list *parser.List) (ast.Expr, error) {
	if len(list.Elems) == 0 {
		return nil, ilerr.New(ilerr.NewMalformedForm{
			Range:    list.Range,
			Form:     "()",
			Expected: "a head expression",
			Got:      "found an empty expression list",
		})
	}
	head, _ := list.Head()
	args := list.Elems[1:]

	switch head {
	case "lambda":
		return translateLambda(list, args)
	case "if":
		if len(args) != 3 {
			return nil, malformed(list, "if", "3 arguments: a guard, a then-branch and an else-branch", args)
		}
		exprs, err := translateAll(args)
		if err != nil {
			return nil, err
		}
		return &ast.If{Range: list.Range, Cond: exprs[0], Then: exprs[1], Else: exprs[2]}, nil
	case "rec":
		return translateRecord(list, args)
	case "field":
		if len(args) != 2 {
			return nil, malformed(list, "field", "2 arguments: an expression and a field name", args)
		}
		name, ok := args[1].(*parser.Atom)
		if !ok {
			return nil, malformedShape(list, "field", "an identifier as the field name", args[1])
		}
		target, err := TranslateExp(args[0])
		if err != nil {
			return nil, err
		}
		return &ast.Project{Range: list.Range, Target: target, Name: name.Text}, nil
	case "union":
		if len(args) != 2 {
			return nil, malformed(list, "union", "2 arguments: a variant name and a payload", args)
		}
		name, ok := args[0].(*parser.Atom)
		if !ok {
			return nil, malformedShape(list, "union", "an identifier as the variant name", args[0])
		}
		payload, err := TranslateExp(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.Inject{Range: list.Range, Variant: name.Text, Payload: payload}, nil
	}

	exprs, err := translateAll(list.Elems)
	if err != nil {
		return nil, err
	}
	return &ast.Apply{Range: list.Range, Head: exprs[0], Args: exprs[1:]}, nil
}

func translateLambda(list *parser.List, args []parser.Sexp) (ast.Expr, error) {
	if len(args) != 3 {
		return nil, malformed(list, "lambda", "3 arguments: a parameter name, a type and a body", args)
	}
	param, ok := args[0].(*parser.Atom)
	if !ok {
		return nil, malformedShape(list, "lambda", "an identifier as the parameter name", args[0])
	}
	paramType, err := TranslateTyp(args[1])
	if err != nil {
		return nil, err
	}
	body, err := TranslateExp(args[2])
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Range: list.Range, Param: param.Text, ParamType: paramType, Body: body}, nil
}

func translateRecord(list *parser.List, args []parser.Sexp) (ast.Expr, error) {
	if len(args)%2 != 0 {
		return nil, malformed(list, "rec", "an even number of arguments alternating field names and expressions", args)
	}
	seen := make(map[string]bool, len(args)/2)
	fields := make([]ast.FieldInit, 0, len(args)/2)
	for _, pair := range lo.Chunk(args, 2) {
		name, ok := pair[0].(*parser.Atom)
		if !ok {
			return nil, malformedShape(list, "rec", "identifiers as field names", pair[0])
		}
		if seen[name.Text] {
			return nil, duplicateMember(list, "rec", "field", name.Text)
		}
		seen[name.Text] = true
		value, err := TranslateExp(pair[1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: name.Text, Value: value})
	}
	return &ast.RecordLit{Range: list.Range, Fields: fields}, nil
}

func translateAll(sexps []parser.Sexp) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, len(sexps))
	for i, s := range sexps {
		expr, err := TranslateExp(s)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

// TranslateTyp translates one of
//
//	Nat
//	Bool
//	(-> T1 ... Tn R)
//	(rec f1 T1 ... fn Tn)
//	(union (v1 T1 ... vn Tn))
//	(union ((v1 T1) ... (vn Tn)))
func TranslateTyp(s parser.Sexp) (ast.Type, error) {
	if atom, ok := s.(*parser.Atom); ok {
		switch atom.Text {
		case "Nat":
			return ast.Nat, nil
		case "Bool":
			return ast.Bool, nil
		default:
			return nil, ilerr.New(ilerr.NewUnknownForm{Range: atom.Range, What: "type", Form: atom.Text})
		}
	}
	list := s.(*parser.List)
	head, ok := list.Head()
	if !ok {
		return nil, ilerr.New(ilerr.NewUnknownForm{Range: list.Range, What: "type", Form: list.String()})
	}
	args := list.Elems[1:]

	switch head {
	case "->":
		if len(args) < 2 {
			return nil, malformed(list, "->", "at least 2 arguments: the input types and an output type", args)
		}
		types, err := translateTypes(args)
		if err != nil {
			return nil, err
		}
		return &ast.ArrowType{Inputs: types[:len(types)-1], Output: types[len(types)-1]}, nil
	case "rec":
		if len(args)%2 != 0 {
			return nil, malformed(list, "rec", "an even number of arguments alternating field names and types", args)
		}
		fields, err := translateMembers(list, "rec", "field", lo.Chunk(args, 2))
		if err != nil {
			return nil, err
		}
		return &ast.RecordType{Fields: fields}, nil
	case "union":
		if len(args) != 1 {
			return nil, malformed(list, "union", "1 argument: a list of variants and their types", args)
		}
		variants, ok := args[0].(*parser.List)
		if !ok {
			return nil, malformedShape(list, "union", "a list of variants", args[0])
		}
		pairs, err := variantPairs(list, variants)
		if err != nil {
			return nil, err
		}
		members, err := translateMembers(list, "union", "variant", pairs)
		if err != nil {
			return nil, err
		}
		return &ast.UnionType{Variants: members}, nil
	default:
		return nil, ilerr.New(ilerr.NewUnknownForm{Range: list.Range, What: "type", Form: head})
	}
}

// variantPairs accepts both the flat (v1 T1 v2 T2) and the
// paired ((v1 T1) (v2 T2)) spelling of union members
func variantPairs(union *parser.List, variants *parser.List) ([][]parser.Sexp, error) {
	if len(variants.Elems) == 0 {
		return nil, nil
	}
	if _, paired := variants.Elems[0].(*parser.List); !paired {
		if len(variants.Elems)%2 != 0 {
			return nil, malformed(union, "union", "variant names alternating with their types", variants.Elems)
		}
		return lo.Chunk(variants.Elems, 2), nil
	}
	pairs := make([][]parser.Sexp, 0, len(variants.Elems))
	for _, elem := range variants.Elems {
		pair, ok := elem.(*parser.List)
		if !ok || len(pair.Elems) != 2 {
			return nil, malformedShape(union, "union", "every variant as a (name type) pair", elem)
		}
		pairs = append(pairs, pair.Elems)
	}
	return pairs, nil
}

func translateMembers(list *parser.List, form, what string, pairs [][]parser.Sexp) (map[string]ast.Type, error) {
	members := make(map[string]ast.Type, len(pairs))
	for _, pair := range pairs {
		name, ok := pair[0].(*parser.Atom)
		if !ok {
			return nil, malformedShape(list, form, "identifiers as "+what+" names", pair[0])
		}
		if _, exists := members[name.Text]; exists {
			return nil, duplicateMember(list, form, what, name.Text)
		}
		typ, err := TranslateTyp(pair[1])
		if err != nil {
			return nil, err
		}
		members[name.Text] = typ
	}
	return members, nil
}

func translateTypes(sexps []parser.Sexp) ([]ast.Type, error) {
	types := make([]ast.Type, len(sexps))
	for i, s := range sexps {
		typ, err := TranslateTyp(s)
		if err != nil {
			return nil, err
		}
		types[i] = typ
	}
	return types, nil
}

func malformed(list *parser.List, form, expected string, args []parser.Sexp) error {
	return ilerr.New(ilerr.NewMalformedForm{
		Range:    list.Range,
		Form:     form,
		Expected: expected,
		Got:      fmt.Sprintf("got %d", len(args)),
	})
}

func malformedShape(list *parser.List, form, expected string, got parser.Sexp) error {
	return ilerr.New(ilerr.NewMalformedForm{
		Range:    list.Range,
		Form:     form,
		Expected: expected,
		Got:      fmt.Sprintf("got '%s'", got),
	})
}

func duplicateMember(list *parser.List, form, what, name string) error {
	return ilerr.New(ilerr.NewMalformedForm{
		Range:    list.Range,
		Form:     form,
		Expected: "unique " + what + " names",
		Got:      fmt.Sprintf("'%s' appears more than once", name),
	})
}

func expectedOneExpr(found int) error {
	return ilerr.New(ilerr.NewSyntax{
		ParserMessage: fmt.Sprintf("expected exactly one expression but found %d", found),
	})
}

package types

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/internal/log"
)

var logger = log.DefaultLogger.With("section", log.SectionTypes)

// Typecheck returns the type of expr under ctx, or the first type error found.
//
// Union injections are unchecked: (union v e) has the empty union type
// whatever v and the type of e are, so they can only be projected
// from in untyped runs.
func Typecheck(ctx Ctx, expr ast.Expr) (ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Var:
		t, ok := ctx.Lookup(e.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUnboundVariable{Range: e.Range, Name: e.Name, Stage: ilerr.Type})
		}
		return t, nil
	case *ast.NumLit:
		return ast.Nat, nil
	case *ast.BoolLit:
		return ast.Bool, nil
	case *ast.Lambda:
		bodyType, err := Typecheck(ctx.Extend(e.Param, e.ParamType), e.Body)
		if err != nil {
			return nil, err
		}
		return ast.Arrow(bodyType, e.ParamType), nil
	case *ast.Apply:
		return checkApply(ctx, e)
	case *ast.If:
		return checkIf(ctx, e)
	case *ast.RecordLit:
		fields := make(map[string]ast.Type, len(e.Fields))
		for _, field := range e.Fields {
			t, err := Typecheck(ctx, field.Value)
			if err != nil {
				return nil, err
			}
			fields[field.Name] = t
		}
		return &ast.RecordType{Fields: fields}, nil
	case *ast.Project:
		return checkProject(ctx, e)
	case *ast.Inject:
		// the payload is still checked so that it cannot reference unbound names
		if _, err := Typecheck(ctx, e.Payload); err != nil {
			return nil, err
		}
		logger.Debug("unchecked union construction", "variant", e.Variant, "expr", e)
		return &ast.UnionType{Variants: map[string]ast.Type{}}, nil
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func checkApply(ctx Ctx, e *ast.Apply) (ast.Type, error) {
	headType, err := Typecheck(ctx, e.Head)
	if err != nil {
		return nil, err
	}
	// every argument is checked before the shape of the application
	argTypes := make([]ast.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i], err = Typecheck(ctx, arg)
		if err != nil {
			return nil, err
		}
	}
	arrow, ok := headType.(*ast.ArrowType)
	if !ok {
		return nil, ilerr.New(ilerr.NewNotAFunction{
			Range: e.Range,
			Found: ast.TypeString(headType),
			Stage: ilerr.Type,
		})
	}
	if len(arrow.Inputs) != len(e.Args) {
		return nil, ilerr.New(ilerr.NewArityMismatch{
			Range:    e.Range,
			Expected: len(arrow.Inputs),
			Found:    len(e.Args),
			Stage:    ilerr.Type,
		})
	}
	for i, arg := range e.Args {
		if !ast.TypesEqual(arrow.Inputs[i], argTypes[i]) {
			return nil, ilerr.New(ilerr.NewTypeMismatch{
				Range:    ast.RangeOf(arg),
				Expected: arrow.Inputs[i],
				Found:    argTypes[i],
				Where:    fmt.Sprintf("argument %d of %s", i+1, ast.ExprString(e)),
			})
		}
	}
	return arrow.Output, nil
}

func checkIf(ctx Ctx, e *ast.If) (ast.Type, error) {
	condType, err := Typecheck(ctx, e.Cond)
	if err != nil {
		return nil, err
	}
	if !ast.TypesEqual(ast.Bool, condType) {
		return nil, ilerr.New(ilerr.NewTypeMismatch{
			Range:    ast.RangeOf(e.Cond),
			Expected: ast.Bool,
			Found:    condType,
			Where:    "the guard of " + ast.ExprString(e),
		})
	}
	thenType, err := Typecheck(ctx, e.Then)
	if err != nil {
		return nil, err
	}
	elseType, err := Typecheck(ctx, e.Else)
	if err != nil {
		return nil, err
	}
	if !ast.TypesEqual(thenType, elseType) {
		return nil, ilerr.New(ilerr.NewTypeMismatch{
			Range:    ast.RangeOf(e.Else),
			Expected: thenType,
			Found:    elseType,
			Where:    "the else-branch of " + ast.ExprString(e),
		})
	}
	return thenType, nil
}

func checkProject(ctx Ctx, e *ast.Project) (ast.Type, error) {
	targetType, err := Typecheck(ctx, e.Target)
	if err != nil {
		return nil, err
	}
	switch t := targetType.(type) {
	case *ast.RecordType:
		fieldType, ok := t.Fields[e.Name]
		if !ok {
			return nil, ilerr.New(ilerr.NewMissingMember{
				Range: e.Range,
				Name:  e.Name,
				In:    ast.TypeString(t),
				Stage: ilerr.Type,
			})
		}
		return fieldType, nil
	case *ast.UnionType:
		variantType, ok := t.Variants[e.Name]
		if !ok {
			return nil, ilerr.New(ilerr.NewMissingMember{
				Range:     e.Range,
				Name:      e.Name,
				In:        ast.TypeString(t),
				IsVariant: true,
				Stage:     ilerr.Type,
			})
		}
		return variantType, nil
	default:
		return nil, ilerr.New(ilerr.NewNotProjectable{
			Range: e.Range,
			Found: ast.TypeString(targetType),
			Name:  e.Name,
			Stage: ilerr.Type,
		})
	}
}

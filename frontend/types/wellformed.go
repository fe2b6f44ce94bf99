package types

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
)

// CheckWF typechecks the statements of prog in order, threading ctx forward:
// a define is visible to the statements after it, never to the ones before.
// The returned context includes every top-level define of prog.
func CheckWF(ctx Ctx, prog ast.Program) (Ctx, error) {
	for _, stmt := range prog.Stmts {
		var err error
		ctx, err = CheckStmt(ctx, stmt)
		if err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

// CheckStmt typechecks a single statement and returns the context
// for the statements that follow it
func CheckStmt(ctx Ctx, stmt ast.Stmt) (Ctx, error) {
	switch s := stmt.(type) {
	case *ast.Define:
		t, err := Typecheck(ctx, s.Value)
		if err != nil {
			return ctx, err
		}
		logger.Debug("define", "name", s.Name, "type", t)
		return ctx.Extend(s.Name, t), nil
	case *ast.Assign:
		t, err := Typecheck(ctx, s.Value)
		if err != nil {
			return ctx, err
		}
		target, ok := s.Target.(*ast.Var)
		if !ok {
			return ctx, ilerr.New(ilerr.NewInvalidAssignTarget{
				Range:  ast.RangeOf(s.Target),
				Target: ast.ExprString(s.Target),
				Stage:  ilerr.Type,
			})
		}
		declared, ok := ctx.Lookup(target.Name)
		if !ok {
			return ctx, ilerr.New(ilerr.NewUnboundVariable{Range: target.Range, Name: target.Name, Stage: ilerr.Type})
		}
		if !ast.TypesEqual(declared, t) {
			return ctx, ilerr.New(ilerr.NewTypeMismatch{
				Range:    s.Range,
				Expected: declared,
				Found:    t,
				Where:    "the assignment to " + target.Name,
			})
		}
		return ctx, nil
	case *ast.Print:
		_, err := Typecheck(ctx, s.Value)
		return ctx, err
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

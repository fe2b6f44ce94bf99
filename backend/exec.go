package backend

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
)

// Output holds the rendering of every evaluated print statement, in order
type Output []string

// Execute runs the statements of prog in order against env.
// It stops at the first failing statement and then returns no output.
func Execute(env Env, prog ast.Program) (Output, error) {
	out := make(Output, 0)
	for _, stmt := range prog.Stmts {
		printed, err := execStmt(env, stmt)
		if err != nil {
			logger.Debug("statement failed", "stmt", ast.StmtString(stmt), "error", err)
			return nil, err
		}
		if printed != nil {
			out = append(out, *printed)
		}
	}
	return out, nil
}

// execStmt returns the rendered value for print statements, and nil otherwise
func execStmt(env Env, stmt ast.Stmt) (*string, error) {
	switch s := stmt.(type) {
	case *ast.Define:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return nil, err
		}
		return nil, env.Define(s.Range, s.Name, v)
	case *ast.Assign:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return nil, err
		}
		target, ok := s.Target.(*ast.Var)
		if !ok {
			return nil, ilerr.New(ilerr.NewInvalidAssignTarget{
				Range:  ast.RangeOf(s.Target),
				Target: ast.ExprString(s.Target),
				Stage:  ilerr.Runtime,
			})
		}
		if !env.Has(target.Name) {
			return nil, ilerr.New(ilerr.NewUnboundVariable{Range: target.Range, Name: target.Name, Stage: ilerr.Runtime})
		}
		return nil, env.Update(target.Name, v)
	case *ast.Print:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return nil, err
		}
		printed := Show(v)
		return &printed, nil
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

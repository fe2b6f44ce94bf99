package backend

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/internal/log"
)

var logger = log.DefaultLogger.With("section", log.SectionBackend)

// Evaluate reduces expr to a value under env.
//
// Evaluation is strict and left to right, except for conditionals,
// which only evaluate the branch that is taken.
func Evaluate(env Env, expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Var:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUnboundVariable{Range: e.Range, Name: e.Name, Stage: ilerr.Runtime})
		}
		return v, nil
	case *ast.NumLit:
		return Num(e.Value), nil
	case *ast.BoolLit:
		return Bool(e.Value), nil
	case *ast.Lambda:
		return &Closure{Param: e.Param, Body: e.Body, Env: env}, nil
	case *ast.Apply:
		return evalApply(env, e)
	case *ast.If:
		guard, err := Evaluate(env, e.Cond)
		if err != nil {
			return nil, err
		}
		b, ok := guard.(Bool)
		if !ok {
			return nil, ilerr.New(ilerr.NewNotABoolean{Range: ast.RangeOf(e.Cond), Found: Show(guard)})
		}
		if b {
			return Evaluate(env, e.Then)
		}
		return Evaluate(env, e.Else)
	case *ast.RecordLit:
		record := &Record{
			Names:  make([]string, 0, len(e.Fields)),
			Fields: make(map[string]Value, len(e.Fields)),
		}
		for _, field := range e.Fields {
			v, err := Evaluate(env, field.Value)
			if err != nil {
				return nil, err
			}
			record.Names = append(record.Names, field.Name)
			record.Fields[field.Name] = v
		}
		return record, nil
	case *ast.Project:
		return evalProject(env, e)
	case *ast.Inject:
		payload, err := Evaluate(env, e.Payload)
		if err != nil {
			return nil, err
		}
		return &Union{Variant: e.Variant, Payload: payload}, nil
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func evalApply(env Env, e *ast.Apply) (Value, error) {
	head, err := Evaluate(env, e.Head)
	if err != nil {
		return nil, err
	}
	switch fn := head.(type) {
	case *Closure:
		if len(e.Args) != 1 {
			return nil, ilerr.New(ilerr.NewArityMismatch{
				Range:    e.Range,
				Expected: 1,
				Found:    len(e.Args),
				Stage:    ilerr.Runtime,
			})
		}
		arg, err := Evaluate(env, e.Args[0])
		if err != nil {
			return nil, err
		}
		return Evaluate(fn.Env.Extend1(fn.Param, arg), fn.Body)
	case *Prim:
		args := make([]Value, len(e.Args))
		for i, argExpr := range e.Args {
			args[i], err = Evaluate(env, argExpr)
			if err != nil {
				return nil, err
			}
		}
		logger.Debug("calling primitive", "name", fn.Name, "expr", e)
		return fn.Fn(args)
	default:
		return nil, ilerr.New(ilerr.NewNotAFunction{
			Range: e.Range,
			Found: Show(head),
			Stage: ilerr.Runtime,
		})
	}
}

func evalProject(env Env, e *ast.Project) (Value, error) {
	target, err := Evaluate(env, e.Target)
	if err != nil {
		return nil, err
	}
	switch v := target.(type) {
	case *Record:
		field, ok := v.Get(e.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewMissingMember{
				Range: e.Range,
				Name:  e.Name,
				In:    Show(v),
				Stage: ilerr.Runtime,
			})
		}
		return field, nil
	case *Union:
		if v.Variant != e.Name {
			return nil, ilerr.New(ilerr.NewVariantMismatch{
				Range:     e.Range,
				Requested: e.Name,
				Actual:    v.Variant,
			})
		}
		return v.Payload, nil
	default:
		return nil, ilerr.New(ilerr.NewNotProjectable{
			Range: e.Range,
			Found: Show(target),
			Name:  e.Name,
			Stage: ilerr.Runtime,
		})
	}
}

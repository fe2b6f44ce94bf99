package tyl

import (
	"github.com/cottand/tyl/backend"
	"github.com/cottand/tyl/frontend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/types"
	"github.com/cottand/tyl/parser"
)

// Session runs programs incrementally against one typing context and one
// environment, so that later inputs see the defines of earlier ones
type Session struct {
	settings LoadSettings
	ctx      types.Ctx
	env      backend.Env
}

func NewSession(settings LoadSettings) *Session {
	return &Session{
		settings: settings,
		ctx:      types.Universe(),
		env:      backend.Universe(),
	}
}

// Eval typechecks and runs src, a sequence of statements.
//
// The whole input is typechecked before any of it runs. Statements then
// run one at a time, and the typing context moves forward with each one
// that succeeds, so after a runtime failure the checker knows exactly
// the names the environment holds.
func (s *Session) Eval(src string) (backend.Output, error) {
	prog, err := frontend.ParseToAST(src)
	if err != nil {
		return nil, err
	}
	ctxs := make([]types.Ctx, len(prog.Stmts))
	ctx := s.ctx
	for i, stmt := range prog.Stmts {
		if !s.settings.NoCheck {
			ctx, err = types.CheckStmt(ctx, stmt)
			if err != nil {
				return nil, err
			}
		}
		ctxs[i] = ctx
	}

	out := make(backend.Output, 0)
	for i, stmt := range prog.Stmts {
		printed, err := backend.Execute(s.env, ast.Program{Stmts: []ast.Stmt{stmt}})
		if err != nil {
			return nil, err
		}
		s.ctx = ctxs[i]
		out = append(out, printed...)
	}
	return out, nil
}

// TypeOf typechecks a single expression without running it
func (s *Session) TypeOf(src string) (ast.Type, error) {
	expr, err := frontend.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return types.Typecheck(s.ctx, expr)
}

// Legacy evaluates an expression of the legacy token grammar in the
// session's environment, and returns its rendering
func (s *Session) Legacy(src string) (string, error) {
	expr, err := parser.ParseLegacy(src)
	if err != nil {
		return "", err
	}
	if !s.settings.NoCheck {
		if _, err := types.Typecheck(s.ctx, expr); err != nil {
			return "", err
		}
	}
	v, err := backend.Evaluate(s.env, expr)
	if err != nil {
		return "", err
	}
	return backend.Show(v), nil
}

type SessionBinding struct {
	Name  string
	// Type is nil when the session does not typecheck
	Type  ast.Type
	Value string
}

// Bindings lists what the session defined so far, in definition order
func (s *Session) Bindings() []SessionBinding {
	envBindings := s.env.Bindings()
	bindings := make([]SessionBinding, 0, len(envBindings))
	for _, b := range envBindings {
		binding := SessionBinding{Name: b.Name, Value: backend.Show(b.Value)}
		if t, ok := s.ctx.Lookup(b.Name); ok && !s.settings.NoCheck {
			binding.Type = t
		}
		bindings = append(bindings, binding)
	}
	return bindings
}

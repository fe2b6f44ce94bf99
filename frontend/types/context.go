package types

import (
	"slices"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/tyl/frontend/ast"
)

// Ctx maps variable names to their static types.
//
// A Ctx is a value: Extend returns a new context and leaves the receiver
// untouched, so the context of an enclosing scope stays valid after
// checking a lambda body.
type Ctx struct {
	bindings *immutable.Map[string, ast.Type]
}

// NewCtx returns a context without any bindings, not even primitives.
// See Universe for the context programs are usually checked against.
func NewCtx() Ctx {
	return Ctx{bindings: immutable.NewMap[string, ast.Type](immutable.NewHasher(""))}
}

// Extend binds name to t, shadowing any previous binding of name
func (ctx Ctx) Extend(name string, t ast.Type) Ctx {
	return Ctx{bindings: ctx.m().Set(name, t)}
}

func (ctx Ctx) Lookup(name string) (ast.Type, bool) {
	return ctx.m().Get(name)
}

func (ctx Ctx) Len() int {
	return ctx.m().Len()
}

// Names returns every bound name, sorted
func (ctx Ctx) Names() []string {
	names := make([]string, 0, ctx.Len())
	it := ctx.m().Iterator()
	for !it.Done() {
		name, _, _ := it.Next()
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// m allows the zero Ctx to behave as NewCtx
func (ctx Ctx) m() *immutable.Map[string, ast.Type] {
	if ctx.bindings == nil {
		return NewCtx().bindings
	}
	return ctx.bindings
}

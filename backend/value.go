package backend

import "github.com/cottand/tyl/frontend/ast"

// Value is the result of evaluating an expression.
// The set of values is closed over Num, Bool, *Prim, *Closure, *Record and *Union.
type Value interface {
	valueNode()
}

var (
	_ Value = Num(0)
	_ Value = Bool(false)
	_ Value = (*Prim)(nil)
	_ Value = (*Closure)(nil)
	_ Value = (*Record)(nil)
	_ Value = (*Union)(nil)
)

type Num uint64

type Bool bool

// Prim is a built-in function implemented in Go.
// Unlike closures, primitives take any number of arguments.
type Prim struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Closure is a lambda together with the environment it was created in.
// Env is a handle, so the closure sees later changes to that environment.
type Closure struct {
	Param string
	Body  ast.Expr
	Env   Env
}

// Record keeps Names in construction order, so that printing is deterministic
type Record struct {
	Names  []string
	Fields map[string]Value
}

func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

type Union struct {
	Variant string
	Payload Value
}

func (Num) valueNode()      {}
func (Bool) valueNode()     {}
func (*Prim) valueNode()    {}
func (*Closure) valueNode() {}
func (*Record) valueNode()  {}
func (*Union) valueNode()   {}

package types

import "github.com/cottand/tyl/frontend/ast"

// primitiveTypes are the signatures of the built-in primitives,
// which the interpreter provides under the same names
var primitiveTypes = map[string]ast.Type{
	"+":     ast.Arrow(ast.Nat, ast.Nat, ast.Nat),
	"-":     ast.Arrow(ast.Nat, ast.Nat, ast.Nat),
	"*":     ast.Arrow(ast.Nat, ast.Nat, ast.Nat),
	"zero?": ast.Arrow(ast.Bool, ast.Nat),
	"==":    ast.Arrow(ast.Bool, ast.Nat, ast.Nat),
	"<":     ast.Arrow(ast.Bool, ast.Nat, ast.Nat),
	"&&":    ast.Arrow(ast.Bool, ast.Bool, ast.Bool),
	"||":    ast.Arrow(ast.Bool, ast.Bool, ast.Bool),
	"not":   ast.Arrow(ast.Bool, ast.Bool),
}

// Universe returns the context holding the types of all primitives
func Universe() Ctx {
	ctx := NewCtx()
	for name, t := range primitiveTypes {
		ctx = ctx.Extend(name, t)
	}
	return ctx
}

// PrimitiveNames returns the names bound by Universe
func PrimitiveNames() []string {
	return Universe().Names()
}

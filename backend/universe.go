package backend

import (
	"fmt"
	"math/bits"

	"github.com/cottand/tyl/frontend/ilerr"
)

// Universe returns a fresh environment for running programs.
// Primitives live in the root scope and programs run in a child of it,
// so a program may define its own "+" without a redefinition error.
func Universe() Env {
	root := NewEnv()
	for _, p := range primitives() {
		// the root scope is fresh, so Set cannot fail
		_ = root.Set(p.Name, p)
	}
	return root.Child()
}

func primitives() []*Prim {
	return []*Prim{
		natOp("+", func(a, b uint64) (Value, error) {
			sum, carry := bits.Add64(a, b, 0)
			if carry != 0 {
				return nil, overflow("+", a, b)
			}
			return Num(sum), nil
		}),
		// naturals do not go below zero
		natOp("-", func(a, b uint64) (Value, error) {
			if b > a {
				return Num(0), nil
			}
			return Num(a - b), nil
		}),
		natOp("*", func(a, b uint64) (Value, error) {
			hi, lo := bits.Mul64(a, b)
			if hi != 0 {
				return nil, overflow("*", a, b)
			}
			return Num(lo), nil
		}),
		natOp("==", func(a, b uint64) (Value, error) { return Bool(a == b), nil }),
		natOp("<", func(a, b uint64) (Value, error) { return Bool(a < b), nil }),
		boolOp("&&", func(a, b bool) bool { return a && b }),
		boolOp("||", func(a, b bool) bool { return a || b }),
		{Name: "zero?", Fn: func(args []Value) (Value, error) {
			if err := arity("zero?", 1, args); err != nil {
				return nil, err
			}
			n, ok := args[0].(Num)
			if !ok {
				return nil, misuse("zero?", fmt.Sprintf("expected a number but found '%s'", Show(args[0])))
			}
			return Bool(n == 0), nil
		}},
		{Name: "not", Fn: func(args []Value) (Value, error) {
			if err := arity("not", 1, args); err != nil {
				return nil, err
			}
			b, ok := args[0].(Bool)
			if !ok {
				return nil, misuse("not", fmt.Sprintf("expected a boolean but found '%s'", Show(args[0])))
			}
			return !b, nil
		}},
	}
}

func natOp(name string, op func(a, b uint64) (Value, error)) *Prim {
	return &Prim{Name: name, Fn: func(args []Value) (Value, error) {
		if err := arity(name, 2, args); err != nil {
			return nil, err
		}
		a, okA := args[0].(Num)
		b, okB := args[1].(Num)
		if !okA || !okB {
			return nil, misuse(name, fmt.Sprintf("expected two numbers but found '%s' and '%s'", Show(args[0]), Show(args[1])))
		}
		return op(uint64(a), uint64(b))
	}}
}

func boolOp(name string, op func(a, b bool) bool) *Prim {
	return &Prim{Name: name, Fn: func(args []Value) (Value, error) {
		if err := arity(name, 2, args); err != nil {
			return nil, err
		}
		a, okA := args[0].(Bool)
		b, okB := args[1].(Bool)
		if !okA || !okB {
			return nil, misuse(name, fmt.Sprintf("expected two booleans but found '%s' and '%s'", Show(args[0]), Show(args[1])))
		}
		return Bool(op(bool(a), bool(b))), nil
	}}
}

func arity(name string, expected int, args []Value) error {
	if len(args) != expected {
		return misuse(name, fmt.Sprintf("expected %d arguments but found %d", expected, len(args)))
	}
	return nil
}

func misuse(name, reason string) error {
	return ilerr.New(ilerr.NewPrimitiveMisuse{Name: name, Reason: reason})
}

func overflow(name string, a, b uint64) error {
	return misuse(name, fmt.Sprintf("result of %d %s %d does not fit in a Nat", a, name, b))
}

package types_test

import (
	"testing"

	"github.com/cottand/tyl/frontend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeOf(t *testing.T, ctx types.Ctx, src string) (ast.Type, error) {
	t.Helper()
	expr, err := frontend.ParseExpr(src)
	require.NoError(t, err)
	return types.Typecheck(ctx, expr)
}

func TestTypecheck(t *testing.T) {
	ctx := types.Universe().
		Extend("r", &ast.RecordType{Fields: map[string]ast.Type{"x": ast.Nat, "b": ast.Bool}}).
		Extend("u", &ast.UnionType{Variants: map[string]ast.Type{"left": ast.Nat, "right": ast.Bool}})

	cases := map[string]string{
		"1":                                    "Nat",
		"false":                                "Bool",
		"+":                                    "(-> Nat Nat Nat)",
		"(+ 1 2)":                              "Nat",
		"(zero? 0)":                            "Bool",
		"(lambda x Nat (+ x 1))":               "(-> Nat Nat)",
		"(lambda x Nat (lambda y Bool x))":     "(-> Nat (-> Bool Nat))",
		"((lambda x Nat (zero? x)) 3)":         "Bool",
		"(if true 1 2)":                        "Nat",
		"(if (== 1 2) not (lambda b Bool b))":  "(-> Bool Bool)",
		"(rec x 1 y true)":                     "(rec x Nat y Bool)",
		"(field (rec x 1 y 6 z 30) y)":         "Nat",
		"(field r b)":                          "Bool",
		"(field u right)":                      "Bool",
		"(union variant1 10)":                  "(union ())",
		"(lambda p (rec a Nat) (field p a))":   "(-> (rec a Nat) Nat)",
		"(lambda f (-> Nat Nat Bool) (f 1 2))": "(-> (-> Nat Nat Bool) Bool)",
	}
	for src, expected := range cases {
		t.Run(src, func(t *testing.T) {
			typ, err := typeOf(t, ctx, src)
			require.NoError(t, err)
			assert.Equal(t, expected, ast.TypeString(typ))
		})
	}
}

func TestTypecheckErrors(t *testing.T) {
	ctx := types.Universe().
		Extend("r", &ast.RecordType{Fields: map[string]ast.Type{"x": ast.Nat}}).
		Extend("u", &ast.UnionType{Variants: map[string]ast.Type{"left": ast.Nat}})

	cases := []struct {
		src  string
		code ilerr.ErrCode
	}{
		{"y", ilerr.UnboundVariable},
		{"(lambda x Nat y)", ilerr.UnboundVariable},
		{"(1 2)", ilerr.NotAFunction},
		{"(+ 1)", ilerr.ArityMismatch},
		{"((lambda x Nat x) 1 2)", ilerr.ArityMismatch},
		{"(+ 1 true)", ilerr.TypeMismatch},
		{"(if 1 2 3)", ilerr.TypeMismatch},
		{"(if true 1 false)", ilerr.TypeMismatch},
		{"(if true (rec a 1) (rec b 1))", ilerr.TypeMismatch},
		{"(field r y)", ilerr.MissingMember},
		{"(field u right)", ilerr.MissingMember},
		{"(field 1 x)", ilerr.NotProjectable},
		{"(field (union a 1) a)", ilerr.MissingMember},
		{"(union a missing)", ilerr.UnboundVariable},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := typeOf(t, ctx, c.src)
			require.Error(t, err)
			assert.Equal(t, c.code, ilerr.CodeOf(err), err.Error())
			kind, _ := ilerr.KindOf(err)
			assert.Equal(t, ilerr.Type, kind)
		})
	}
}

func TestApplicationChecksArgumentsFirst(t *testing.T) {
	for _, src := range []string{
		"((lambda x Nat x) 1 missing)",
		"(1 missing)",
		"(+ missing)",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := typeOf(t, types.Universe(), src)
			require.Error(t, err)
			assert.Equal(t, ilerr.UnboundVariable, ilerr.CodeOf(err), err.Error())
		})
	}
}

func TestTypecheckMismatchMessages(t *testing.T) {
	_, err := typeOf(t, types.Universe(), "(+ 1 true)")
	require.Error(t, err)
	assert.Equal(t, "type error: expected Nat but found Bool in argument 2 of (+ 1 true)", err.Error())

	_, err = typeOf(t, types.Universe(), "(if true (rec a 1 c 2) (rec b 1 c 2))")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(missing field a; unexpected field b)")

	_, err = typeOf(t, types.Universe(), "(1 2)")
	assert.Equal(t, "type error: expected arrow type but found 'Nat'", err.Error())
}

func TestTypecheckDoesNotLeakLambdaParam(t *testing.T) {
	ctx := types.Universe()
	_, err := typeOf(t, ctx, "(lambda x Nat x)")
	require.NoError(t, err)

	_, ok := ctx.Lookup("x")
	assert.False(t, ok)
}

func TestTypecheckShadowing(t *testing.T) {
	ctx := types.Universe().Extend("x", ast.Bool)
	typ, err := typeOf(t, ctx, "(lambda x Nat x)")
	require.NoError(t, err)
	assert.Equal(t, "(-> Nat Nat)", ast.TypeString(typ))

	typ, err = typeOf(t, ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, ast.Bool, typ)
}

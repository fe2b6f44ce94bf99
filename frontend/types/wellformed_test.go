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

func checkProgram(t *testing.T, src string) (types.Ctx, error) {
	t.Helper()
	prog, err := frontend.ParseToAST(src)
	require.NoError(t, err)
	return types.CheckWF(types.Universe(), prog)
}

func TestCheckWF(t *testing.T) {
	ctx, err := checkProgram(t, `
(define x 1)
(define y 1)
(print (+ x y))
(assign x 10)
(print (+ x y))
(define double (lambda n Nat (* n 2)))
(print (double x))
`)
	require.NoError(t, err)

	x, ok := ctx.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, ast.Nat, x)
	double, ok := ctx.Lookup("double")
	require.True(t, ok)
	assert.Equal(t, "(-> Nat Nat)", ast.TypeString(double))
}

func TestCheckWFErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code ilerr.ErrCode
	}{
		{"use before define", "(print x)\n(define x 1)", ilerr.UnboundVariable},
		{"assign unbound", "(assign x 1)", ilerr.UnboundVariable},
		{"assign non-location", "(assign 1 1)", ilerr.InvalidAssignTarget},
		{"assign different type", "(define x 1)\n(assign x true)", ilerr.TypeMismatch},
		{"assign different record", "(define r (rec a 1))\n(assign r (rec b 1))", ilerr.TypeMismatch},
		{"ill-typed print", "(print (+ 1 false))", ilerr.TypeMismatch},
		// a define does not see itself
		{"recursive define", "(define f (lambda n Nat (f n)))", ilerr.UnboundVariable},
		{"define inside lambda is invisible", "(define f (lambda n Nat n))\n(print n)", ilerr.UnboundVariable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := checkProgram(t, c.src)
			require.Error(t, err)
			assert.Equal(t, c.code, ilerr.CodeOf(err), err.Error())
			kind, _ := ilerr.KindOf(err)
			assert.Equal(t, ilerr.Type, kind)
		})
	}
}

func TestCheckWFIsForwardOnly(t *testing.T) {
	before := types.Universe()
	prog, err := frontend.ParseToAST("(define z true)")
	require.NoError(t, err)

	after, err := types.CheckWF(before, prog)
	require.NoError(t, err)

	_, ok := before.Lookup("z")
	assert.False(t, ok)
	_, ok = after.Lookup("z")
	assert.True(t, ok)
}

func TestCheckWFRedefineShadows(t *testing.T) {
	ctx, err := checkProgram(t, "(define x 1)\n(define x true)\n(print (not x))")
	require.NoError(t, err)
	x, _ := ctx.Lookup("x")
	assert.Equal(t, ast.Bool, x)
}

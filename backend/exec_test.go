package backend_test

import (
	"errors"
	"testing"

	"github.com/cottand/tyl/backend"
	"github.com/cottand/tyl/frontend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (backend.Output, error) {
	t.Helper()
	prog, err := frontend.ParseToAST(src)
	require.NoError(t, err)
	return backend.Execute(backend.Universe(), prog)
}

func TestExecute(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		expected backend.Output
	}{
		{"reassignment", `
(define x 1)
(define y 1)
(print (+ x y))
(assign x 10)
(print (+ x y))`, backend.Output{"2", "11"}},
		{"record field", "(define r (rec x 1 y (+ 2 4) z (* 3 10)))\n(print (field r y))", backend.Output{"6"}},
		{"union value", "(define d (union variant1 10))\n(print d)", backend.Output{"variant1, 10"}},
		{"sequential updates", `
(define x 1)
(define y 2)
(assign x (+ x y))
(assign y (* x y))
(print x)
(print y)`, backend.Output{"3", "6"}},
		{"recursive factorial", `
(define result 0)
(define factorial
  (lambda n Nat
    (if (zero? n)
        1
        (* n (factorial (- n 1))))))
(assign result (factorial 5))
(print result)`, backend.Output{"120"}},
		{"closure returns union", "(define boo (lambda w Nat (union variant3 w)))\n(print (boo 8))", backend.Output{"variant3, 8"}},
		{"union projection", "(print (field (union a 4) a))", backend.Output{"4"}},
		{"printing functions", "(print +)\n(print (lambda x Nat x))", backend.Output{"<prim +>", "<closure>"}},
		{"printing records in source order", "(print (rec z 1 a true))", backend.Output{"<rec z, 1, a, true>"}},
		{"no prints", "(define x 1)", backend.Output{}},
		{"truncated subtraction", "(print (- 2 5))", backend.Output{"0"}},
		{"shadowing a primitive", "(define + (lambda x Nat x))\n(print (+ 4))", backend.Output{"4"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.expected, out)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code ilerr.ErrCode
	}{
		{"assign unbound", "(assign x 1)", ilerr.UnboundVariable},
		{"assign literal", "(assign 1 2)", ilerr.InvalidAssignTarget},
		{"missing field", "(define r (rec x 1))\n(print (field r nonexistent))", ilerr.MissingMember},
		{"variant mismatch", "(print (field (union a 1) b))", ilerr.VariantMismatch},
		{"redefinition", "(define x 1)\n(define x 2)", ilerr.Redefinition},
		{"unbound variable", "(print y)", ilerr.UnboundVariable},
		{"apply number", "(print (1 2))", ilerr.NotAFunction},
		{"closure with two arguments", "(print ((lambda x Nat x) 1 2))", ilerr.ArityMismatch},
		{"numeric guard", "(print (if 1 2 3))", ilerr.NotABoolean},
		{"project from number", "(print (field 1 x))", ilerr.NotProjectable},
		{"primitive misuse", "(print (+ 1 true))", ilerr.PrimitiveMisuse},
		{"primitive arity", "(print (zero? 1 2))", ilerr.PrimitiveMisuse},
		{"addition overflow", "(print (+ 18446744073709551615 1))", ilerr.PrimitiveMisuse},
		{"multiplication overflow", "(print (* 4294967296 4294967296))", ilerr.PrimitiveMisuse},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := run(t, c.src)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, c.code, ilerr.CodeOf(err), err.Error())
			kind, _ := ilerr.KindOf(err)
			assert.Equal(t, ilerr.Runtime, kind)
		})
	}
}

func TestExecuteArithmeticBounds(t *testing.T) {
	out, err := run(t, "(print (+ 18446744073709551614 1))\n(print (* 4294967295 4294967297))\n(print (- 1 2))")
	require.NoError(t, err)
	assert.Equal(t, backend.Output{"18446744073709551615", "18446744073709551615", "0"}, out)

	_, err = run(t, "(print (* 4294967296 4294967296))")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not fit in a Nat")
}

func TestRedefinitionPointsAtTheDefine(t *testing.T) {
	src := "(define x 1)\n(define x 2)"
	_, err := run(t, src)
	require.Error(t, err)

	var ileErr ilerr.IleError
	require.True(t, errors.As(err, &ileErr))
	assert.Equal(t, "main.tyl:2:1: (E016) runtime error: redefinition of variable 'x'", ilerr.FormatWithCodeAndSource(ileErr, "main.tyl", src))
}

func TestExecuteDiscardsOutputOnFailure(t *testing.T) {
	out, err := run(t, "(print 1)\n(print 2)\n(print missing)")
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestExecuteIsDeterministic(t *testing.T) {
	src := `
(define r (rec b 2 a 1 c (rec y true x false)))
(print r)
(define count (lambda n Nat (if (zero? n) 0 (+ 1 (count (- n 1))))))
(print (count 20))
(print (union v r))`
	first, err := run(t, src)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := run(t, src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "<rec b, 2, a, 1, c, <rec y, true, x, false>>", first[0])
}

func TestExecuteOnePrintPerStatement(t *testing.T) {
	prog, err := frontend.ParseToAST("(print 1)\n(define x 2)\n(print x)\n(assign x 3)\n(print x)\n(print true)")
	require.NoError(t, err)

	prints := 0
	for _, stmt := range prog.Stmts {
		if _, ok := stmt.(*ast.Print); ok {
			prints++
		}
	}
	out, err := backend.Execute(backend.Universe(), prog)
	require.NoError(t, err)
	assert.Len(t, out, prints)
	assert.Equal(t, backend.Output{"1", "2", "3", "true"}, out)
}

func TestClosuresSeeLaterUpdates(t *testing.T) {
	out, err := run(t, `
(define base 1)
(define addBase (lambda n Nat (+ n base)))
(print (addBase 1))
(assign base 10)
(print (addBase 1))`)
	require.NoError(t, err)
	assert.Equal(t, backend.Output{"2", "11"}, out)
}

func TestExecuteSharesEnvAcrossRuns(t *testing.T) {
	env := backend.Universe()
	first, err := frontend.ParseToAST("(define x 41)")
	require.NoError(t, err)
	second, err := frontend.ParseToAST("(print (+ x 1))")
	require.NoError(t, err)

	_, err = backend.Execute(env, first)
	require.NoError(t, err)
	out, err := backend.Execute(env, second)
	require.NoError(t, err)
	assert.Equal(t, backend.Output{"42"}, out)
}

package backend_test

import (
	"testing"

	"github.com/cottand/tyl/backend"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSetGet(t *testing.T) {
	env := backend.NewEnv()
	require.NoError(t, env.Set("x", backend.Num(1)))

	v, err := env.Get("x")
	require.NoError(t, err)
	assert.Equal(t, backend.Num(1), v)
	assert.True(t, env.Has("x"))
	assert.False(t, env.Has("y"))

	_, err = env.Get("y")
	assert.Equal(t, ilerr.UnboundVariable, ilerr.CodeOf(err))
	kind, _ := ilerr.KindOf(err)
	assert.Equal(t, ilerr.Runtime, kind)
}

func TestEnvRedefinition(t *testing.T) {
	env := backend.NewEnv()
	require.NoError(t, env.Set("x", backend.Num(1)))

	err := env.Set("x", backend.Num(2))
	assert.Equal(t, ilerr.Redefinition, ilerr.CodeOf(err))

	// shadowing in a child scope is fine
	child := env.Child()
	require.NoError(t, child.Set("x", backend.Bool(true)))
	v, _ := child.Get("x")
	assert.Equal(t, backend.Bool(true), v)
	v, _ = env.Get("x")
	assert.Equal(t, backend.Num(1), v)
}

func TestEnvUpdateNearestOwner(t *testing.T) {
	root := backend.NewEnv()
	require.NoError(t, root.Set("x", backend.Num(1)))
	require.NoError(t, root.Set("y", backend.Num(1)))
	child := root.Extend1("x", backend.Num(100))

	require.NoError(t, child.Update("x", backend.Num(101)))
	require.NoError(t, child.Update("y", backend.Num(2)))

	x, _ := root.Get("x")
	assert.Equal(t, backend.Num(1), x, "the shadowed binding is untouched")
	x, _ = child.Get("x")
	assert.Equal(t, backend.Num(101), x)
	y, _ := root.Get("y")
	assert.Equal(t, backend.Num(2), y, "updates reach enclosing scopes")

	err := child.Update("z", backend.Num(0))
	assert.Equal(t, ilerr.UnboundVariable, ilerr.CodeOf(err))
}

func TestEnvExtend1(t *testing.T) {
	root := backend.NewEnv()
	child := root.Extend1("n", backend.Num(5))

	assert.True(t, child.Has("n"))
	assert.False(t, root.Has("n"))
	assert.Len(t, child.Bindings(), 1)

	parent, ok := child.Parent()
	require.True(t, ok)
	assert.Equal(t, root.ID(), parent.ID())
	_, ok = root.Parent()
	assert.False(t, ok)
}

func TestEnvHandlesShareScope(t *testing.T) {
	env := backend.NewEnv()
	alias := env
	require.NoError(t, env.Set("late", backend.Num(7)))

	v, err := alias.Get("late")
	require.NoError(t, err)
	assert.Equal(t, backend.Num(7), v)
}

func TestEnvBindingsInDefinitionOrder(t *testing.T) {
	env := backend.NewEnv()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, env.Set(name, backend.Num(0)))
	}
	var names []string
	for _, b := range env.Bindings() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestEnvManyScopes(t *testing.T) {
	env := backend.NewEnv()
	require.NoError(t, env.Set("base", backend.Num(0)))
	scopes := []backend.Env{env}
	for i := 1; i < 100; i++ {
		scopes = append(scopes, scopes[i-1].Extend1("x", backend.Num(uint64(i))))
	}
	// growing the arena does not invalidate earlier handles
	for i, scope := range scopes[1:] {
		v, err := scope.Get("x")
		require.NoError(t, err)
		assert.Equal(t, backend.Num(uint64(i+1)), v)
		assert.True(t, scope.Has("base"))
	}
}

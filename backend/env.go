package backend

import (
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
)

type ScopeID int

// noParent marks the root scope of a Store
const noParent ScopeID = -1

type scope struct {
	parent ScopeID
	// names in definition order
	names  []string
	values map[string]Value
}

// Store is an arena owning every scope created while running a program.
// Scopes refer to their parent by index, and are never freed before the
// Store itself, so closures can keep a scope alive by holding its Env.
type Store struct {
	scopes []scope
}

func (s *Store) newScope(parent ScopeID) ScopeID {
	s.scopes = append(s.scopes, scope{
		parent: parent,
		values: make(map[string]Value),
	})
	return ScopeID(len(s.scopes) - 1)
}

// Len is the number of scopes allocated so far
func (s *Store) Len() int {
	return len(s.scopes)
}

// Env is a handle to one scope of a Store. Copies of an Env refer to
// the same scope, so a define through one is visible through all.
type Env struct {
	store *Store
	id    ScopeID
}

// NewEnv returns the empty root scope of a new Store
func NewEnv() Env {
	store := &Store{}
	return Env{store: store, id: store.newScope(noParent)}
}

func (e Env) ID() ScopeID {
	return e.id
}

func (e Env) scope() *scope {
	return &e.store.scopes[e.id]
}

// owner returns the innermost scope, starting at e, that binds name
func (e Env) owner(name string) (*scope, bool) {
	for id := e.id; id != noParent; id = e.store.scopes[id].parent {
		if _, ok := e.store.scopes[id].values[name]; ok {
			return &e.store.scopes[id], true
		}
	}
	return nil, false
}

// Has reports whether name is bound in this scope or any enclosing one
func (e Env) Has(name string) bool {
	_, ok := e.owner(name)
	return ok
}

// Owns reports whether name is bound in this very scope
func (e Env) Owns(name string) bool {
	_, ok := e.scope().values[name]
	return ok
}

func (e Env) Lookup(name string) (Value, bool) {
	s, ok := e.owner(name)
	if !ok {
		return nil, false
	}
	return s.values[name], true
}

func (e Env) Get(name string) (Value, error) {
	v, ok := e.Lookup(name)
	if !ok {
		return nil, ilerr.New(ilerr.NewUnboundVariable{Name: name, Stage: ilerr.Runtime})
	}
	return v, nil
}

// Set binds name in this scope. Shadowing a binding of an enclosing
// scope is allowed, binding the same name twice in one scope is not.
func (e Env) Set(name string, v Value) error {
	return e.Define(ast.Range{}, name, v)
}

// Define is Set for a binding introduced at r, which a redefinition
// error then points to
func (e Env) Define(r ast.Range, name string, v Value) error {
	if e.Owns(name) {
		return ilerr.New(ilerr.NewRedefinition{Range: r, Name: name})
	}
	s := e.scope()
	s.names = append(s.names, name)
	s.values[name] = v
	return nil
}

// Update rebinds name in the innermost scope that binds it
func (e Env) Update(name string, v Value) error {
	s, ok := e.owner(name)
	if !ok {
		return ilerr.New(ilerr.NewUnboundVariable{Name: name, Stage: ilerr.Runtime})
	}
	s.values[name] = v
	return nil
}

// Extend1 returns a new child scope of e holding exactly one binding
func (e Env) Extend1(name string, v Value) Env {
	child := e.Child()
	s := child.scope()
	s.names = append(s.names, name)
	s.values[name] = v
	return child
}

// Child returns a new empty scope whose parent is e
func (e Env) Child() Env {
	return Env{store: e.store, id: e.store.newScope(e.id)}
}

// Parent returns the enclosing scope, if any
func (e Env) Parent() (Env, bool) {
	parent := e.scope().parent
	if parent == noParent {
		return Env{}, false
	}
	return Env{store: e.store, id: parent}, true
}

type Binding struct {
	Name  string
	Value Value
}

// Bindings lists the bindings of this scope only, in definition order
func (e Env) Bindings() []Binding {
	s := e.scope()
	bindings := make([]Binding, len(s.names))
	for i, name := range s.names {
		bindings[i] = Binding{Name: name, Value: s.values[name]}
	}
	return bindings
}

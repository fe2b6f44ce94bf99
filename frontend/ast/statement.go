package ast

// All statement types implement the Stmt interface

var (
	_ Stmt = (*Define)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*Print)(nil)
)

// Define introduces a new binding in the current scope.
type Define struct {
	Range
	Name  string
	Value Expr
}

func (*Define) stmtNode()        {}
func (*Define) Describe() string { return "define" }

// Assign mutates an existing binding. Target is an arbitrary expression
// so that non-variable targets can be reported by the typechecker
// and the interpreter rather than rejected while parsing.
type Assign struct {
	Range
	Target Expr
	Value  Expr
}

func (*Assign) stmtNode()        {}
func (*Assign) Describe() string { return "assign" }

type Print struct {
	Range
	Value Expr
}

func (*Print) stmtNode()        {}
func (*Print) Describe() string { return "print" }

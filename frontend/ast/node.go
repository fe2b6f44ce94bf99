package ast

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
	// Describe names the construct in diagnostics, like "lambda" or "record"
	Describe() string
}

// Expr is the interface for all expression nodes in the AST.
//
// The set of expressions is closed: only this package implements exprNode,
// and every consumer switches exhaustively over:
//   - *Var
//   - *NumLit
//   - *BoolLit
//   - *Lambda
//   - *Apply
//   - *If
//   - *RecordLit
//   - *Project
//   - *Inject
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is the interface for all statement nodes in the AST.
// It is closed over *Define, *Assign and *Print.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Program is an ordered sequence of statements, executed in order.
type Program struct {
	Stmts []Stmt
}

package ast

// when adding expressions here, you should add them to the switch cases in:
// - frontend/types:check.go/Typecheck
// - backend:eval.go/Evaluate
// - showExpr.go/showExprWalker

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*NumLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Apply)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*RecordLit)(nil)
	_ Expr = (*Project)(nil)
	_ Expr = (*Inject)(nil)
)

// Var is a reference to a bound name.
type Var struct {
	Range
	Name string
}

func (*Var) exprNode()        {}
func (*Var) Describe() string { return "variable" }

type NumLit struct {
	Range
	Value uint64
}

func (*NumLit) exprNode()        {}
func (*NumLit) Describe() string { return "numeric literal" }

type BoolLit struct {
	Range
	Value bool
}

func (*BoolLit) exprNode()        {}
func (*BoolLit) Describe() string { return "boolean literal" }

// Lambda binds exactly one parameter; multi-argument application
// is only available to primitives.
type Lambda struct {
	Range
	Param     string
	ParamType Type
	Body      Expr
}

func (*Lambda) exprNode()        {}
func (*Lambda) Describe() string { return "lambda" }

// Apply applies Head to Args, in order.
type Apply struct {
	Range
	Head Expr
	Args []Expr
}

func (*Apply) exprNode()        {}
func (*Apply) Describe() string { return "application" }

type If struct {
	Range
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) exprNode()        {}
func (*If) Describe() string { return "conditional" }

type FieldInit struct {
	Name  string
	Value Expr
}

// RecordLit constructs a record. Field names are unique and
// Fields keeps them in source order, which is also evaluation order.
type RecordLit struct {
	Range
	Fields []FieldInit
}

func (*RecordLit) exprNode()        {}
func (*RecordLit) Describe() string { return "record" }

// Project reads the field Name of a record, or the payload of a union
// value whose variant is Name.
type Project struct {
	Range
	Target Expr
	Name   string
}

func (*Project) exprNode()        {}
func (*Project) Describe() string { return "field projection" }

// Inject tags Payload with Variant. It is unchecked: nothing relates
// Variant to a declared union type.
type Inject struct {
	Range
	Variant string
	Payload Expr
}

func (*Inject) exprNode()        {}
func (*Inject) Describe() string { return "union injection" }

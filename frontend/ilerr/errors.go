package ilerr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/tyl/frontend/ast"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

// Kind is the pipeline stage an error belongs to.
// Every stage fails fast, so a run fails with exactly one Kind.
type Kind uint8

const (
	_ Kind = iota
	Lexical
	Parse
	Type
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Parse:
		return "parse"
	case Type:
		return "type"
	case Runtime:
		return "runtime"
	default:
		return "invalid"
	}
}

type ErrCode int

const (
	None ErrCode = iota
	UnexpectedChar
	Syntax
	UnexpectedEOF
	UnexpectedToken
	TrailingTokens
	MalformedForm
	UnknownForm
	BadLiteral
	UnboundVariable
	TypeMismatch
	NotAFunction
	ArityMismatch
	MissingMember
	NotProjectable
	InvalidAssignTarget
	Redefinition
	VariantMismatch
	NotABoolean
	PrimitiveMisuse
)

type IleError interface {
	Error() string
	Code() ErrCode
	Kind() Kind
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithCodeAndSource is FormatWithCode prefixed with the line and
// column of the error inside src, when the error has a position
func FormatWithCodeAndSource(e IleError, fileName, src string) string {
	line, col := ast.LineCol(src, e.Pos())
	if line == 0 {
		if fileName == "" {
			return FormatWithCode(e)
		}
		return fmt.Sprintf("%s: %s", fileName, FormatWithCode(e))
	}
	return fmt.Sprintf("%s:%d:%d: %s", fileName, line, col, FormatWithCode(e))
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

// KindOf returns the Kind of the first IleError in err's chain
func KindOf(err error) (Kind, bool) {
	var ileErr IleError
	if errors.As(err, &ileErr) {
		return ileErr.Kind(), true
	}
	return 0, false
}

// CodeOf returns the ErrCode of the first IleError in err's chain, or None
func CodeOf(err error) ErrCode {
	var ileErr IleError
	if errors.As(err, &ileErr) {
		return ileErr.Code()
	}
	return None
}

func message(k Kind, format string, args ...any) string {
	return k.String() + " error: " + fmt.Sprintf(format, args...)
}

type Unclassified struct {
	From error
	ast.Range
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Kind() Kind       { return Runtime }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnexpectedChar is raised by the legacy lexer when a keyword or operator
// is not followed by its expected continuation
type NewUnexpectedChar struct {
	ast.Range
	Expected string
	// Found is empty at the end of input
	Found string
	stack []byte
}

func (e NewUnexpectedChar) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	return message(Lexical, "unexpected value: expected %s but found %s", e.Expected, found)
}
func (e NewUnexpectedChar) Code() ErrCode    { return UnexpectedChar }
func (e NewUnexpectedChar) Kind() Kind       { return Lexical }
func (e NewUnexpectedChar) getStack() []byte { return e.stack }
func (e NewUnexpectedChar) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewSyntax is raised by the s-expression reader, for example on unbalanced parentheses
type NewSyntax struct {
	ast.Range
	ParserMessage string
	stack         []byte
}

func (e NewSyntax) Error() string    { return message(Parse, "%s", e.ParserMessage) }
func (e NewSyntax) Code() ErrCode    { return Syntax }
func (e NewSyntax) Kind() Kind       { return Parse }
func (e NewSyntax) getStack() []byte { return e.stack }
func (e NewSyntax) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnexpectedEOF struct {
	ast.Range
	// Expected describes what the parser was looking for, and may be empty
	Expected string
	stack    []byte
}

func (e NewUnexpectedEOF) Error() string {
	if e.Expected == "" {
		return message(Parse, "unexpected end of input")
	}
	return message(Parse, "unexpected end of input, expected %s", e.Expected)
}
func (e NewUnexpectedEOF) Code() ErrCode    { return UnexpectedEOF }
func (e NewUnexpectedEOF) Kind() Kind       { return Parse }
func (e NewUnexpectedEOF) getStack() []byte { return e.stack }
func (e NewUnexpectedEOF) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnexpectedToken struct {
	ast.Range
	Expected string
	Found    string
	// Index is the position of the offending token in the token sequence
	Index int
	stack []byte
}

func (e NewUnexpectedToken) Error() string {
	return message(Parse, "expected %s but found %q at token %d", e.Expected, e.Found, e.Index)
}
func (e NewUnexpectedToken) Code() ErrCode    { return UnexpectedToken }
func (e NewUnexpectedToken) Kind() Kind       { return Parse }
func (e NewUnexpectedToken) getStack() []byte { return e.stack }
func (e NewUnexpectedToken) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewTrailingTokens struct {
	ast.Range
	Remaining []string
	stack     []byte
}

func (e NewTrailingTokens) Error() string {
	return message(Parse, "unexpected tokens at end of input: %s", strings.Join(e.Remaining, " "))
}
func (e NewTrailingTokens) Code() ErrCode    { return TrailingTokens }
func (e NewTrailingTokens) Kind() Kind       { return Parse }
func (e NewTrailingTokens) getStack() []byte { return e.stack }
func (e NewTrailingTokens) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewMalformedForm reports a special form whose arity or argument shape is wrong
type NewMalformedForm struct {
	ast.Range
	Form     string
	Expected string
	Got      string
	stack    []byte
}

func (e NewMalformedForm) Error() string {
	return message(Parse, "'%s' expects %s but %s", e.Form, e.Expected, e.Got)
}
func (e NewMalformedForm) Code() ErrCode    { return MalformedForm }
func (e NewMalformedForm) Kind() Kind       { return Parse }
func (e NewMalformedForm) getStack() []byte { return e.stack }
func (e NewMalformedForm) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnknownForm reports a statement or type whose head selects no form
type NewUnknownForm struct {
	ast.Range
	What  string
	Form  string
	stack []byte
}

func (e NewUnknownForm) Error() string {
	return message(Parse, "unknown %s '%s'", e.What, e.Form)
}
func (e NewUnknownForm) Code() ErrCode    { return UnknownForm }
func (e NewUnknownForm) Kind() Kind       { return Parse }
func (e NewUnknownForm) getStack() []byte { return e.stack }
func (e NewUnknownForm) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewBadLiteral struct {
	ast.Range
	Text   string
	Reason string
	stack  []byte
}

func (e NewBadLiteral) Error() string {
	return message(Parse, "invalid literal '%s': %s", e.Text, e.Reason)
}
func (e NewBadLiteral) Code() ErrCode    { return BadLiteral }
func (e NewBadLiteral) Kind() Kind       { return Parse }
func (e NewBadLiteral) getStack() []byte { return e.stack }
func (e NewBadLiteral) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnboundVariable is raised both by the typechecker (Stage Type)
// and by the interpreter (Stage Runtime)
type NewUnboundVariable struct {
	ast.Range
	Name  string
	Stage Kind
	stack []byte
}

func (e NewUnboundVariable) Error() string {
	return message(e.Stage, "unbound variable '%s'", e.Name)
}
func (e NewUnboundVariable) Code() ErrCode    { return UnboundVariable }
func (e NewUnboundVariable) Kind() Kind       { return e.Stage }
func (e NewUnboundVariable) getStack() []byte { return e.stack }
func (e NewUnboundVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewTypeMismatch struct {
	ast.Range
	Expected ast.Type
	Found    ast.Type
	// Where describes the position of the mismatch, like "argument 2 of (+ x y)"
	Where string
	stack []byte
}

func (e NewTypeMismatch) Error() string {
	msg := fmt.Sprintf("expected %v but found %v in %s", e.Expected, e.Found, e.Where)
	expRec, ok1 := e.Expected.(*ast.RecordType)
	foundRec, ok2 := e.Found.(*ast.RecordType)
	if ok1 && ok2 {
		msg += memberDiffHint("field", expRec.Fields, foundRec.Fields)
	}
	expUnion, ok1 := e.Expected.(*ast.UnionType)
	foundUnion, ok2 := e.Found.(*ast.UnionType)
	if ok1 && ok2 {
		msg += memberDiffHint("variant", expUnion.Variants, foundUnion.Variants)
	}
	return message(Type, "%s", msg)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) Kind() Kind       { return Type }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

func memberDiffHint(what string, expected, found map[string]ast.Type) string {
	missing, extra := ast.MemberDiff(expected, found)
	var hints []string
	if len(missing) > 0 {
		hints = append(hints, fmt.Sprintf("missing %s %s", what, strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		hints = append(hints, fmt.Sprintf("unexpected %s %s", what, strings.Join(extra, ", ")))
	}
	if len(hints) == 0 {
		return ""
	}
	return " (" + strings.Join(hints, "; ") + ")"
}

type NewNotAFunction struct {
	ast.Range
	// Found is the offending type (Stage Type) or value (Stage Runtime)
	Found string
	Stage Kind
	stack []byte
}

func (e NewNotAFunction) Error() string {
	if e.Stage == Type {
		return message(e.Stage, "expected arrow type but found '%s'", e.Found)
	}
	return message(e.Stage, "cannot apply non-function value '%s'", e.Found)
}
func (e NewNotAFunction) Code() ErrCode    { return NotAFunction }
func (e NewNotAFunction) Kind() Kind       { return e.Stage }
func (e NewNotAFunction) getStack() []byte { return e.stack }
func (e NewNotAFunction) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	ast.Range
	Expected int
	Found    int
	Stage    Kind
	stack    []byte
}

func (e NewArityMismatch) Error() string {
	return message(e.Stage, "expected %d arguments but found %d", e.Expected, e.Found)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) Kind() Kind       { return e.Stage }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewMissingMember reports a record field or union variant absent from a type
// (Stage Type) or a record value (Stage Runtime)
type NewMissingMember struct {
	ast.Range
	Name      string
	In        string
	IsVariant bool
	Stage     Kind
	stack     []byte
}

func (e NewMissingMember) Error() string {
	what := "field"
	if e.IsVariant {
		what = "variant"
	}
	return message(e.Stage, "no %s '%s' in %s", what, e.Name, e.In)
}
func (e NewMissingMember) Code() ErrCode    { return MissingMember }
func (e NewMissingMember) Kind() Kind       { return e.Stage }
func (e NewMissingMember) getStack() []byte { return e.stack }
func (e NewMissingMember) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotProjectable struct {
	ast.Range
	Found string
	Name  string
	Stage Kind
	stack []byte
}

func (e NewNotProjectable) Error() string {
	return message(e.Stage, "expected record or union to project '%s' from but found '%s'", e.Name, e.Found)
}
func (e NewNotProjectable) Code() ErrCode    { return NotProjectable }
func (e NewNotProjectable) Kind() Kind       { return e.Stage }
func (e NewNotProjectable) getStack() []byte { return e.stack }
func (e NewNotProjectable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewInvalidAssignTarget struct {
	ast.Range
	Target string
	Stage  Kind
	stack  []byte
}

func (e NewInvalidAssignTarget) Error() string {
	return message(e.Stage, "assignment to non-location '%s'", e.Target)
}
func (e NewInvalidAssignTarget) Code() ErrCode    { return InvalidAssignTarget }
func (e NewInvalidAssignTarget) Kind() Kind       { return e.Stage }
func (e NewInvalidAssignTarget) getStack() []byte { return e.stack }
func (e NewInvalidAssignTarget) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewRedefinition struct {
	ast.Range
	Name  string
	stack []byte
}

func (e NewRedefinition) Error() string {
	return message(Runtime, "redefinition of variable '%s'", e.Name)
}
func (e NewRedefinition) Code() ErrCode    { return Redefinition }
func (e NewRedefinition) Kind() Kind       { return Runtime }
func (e NewRedefinition) getStack() []byte { return e.stack }
func (e NewRedefinition) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewVariantMismatch struct {
	ast.Range
	Requested string
	Actual    string
	stack     []byte
}

func (e NewVariantMismatch) Error() string {
	return message(Runtime, "requested variant '%s' but the union value holds '%s'", e.Requested, e.Actual)
}
func (e NewVariantMismatch) Code() ErrCode    { return VariantMismatch }
func (e NewVariantMismatch) Kind() Kind       { return Runtime }
func (e NewVariantMismatch) getStack() []byte { return e.stack }
func (e NewVariantMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotABoolean struct {
	ast.Range
	Found string
	stack []byte
}

func (e NewNotABoolean) Error() string {
	return message(Runtime, "expected a boolean guard but found '%s'", e.Found)
}
func (e NewNotABoolean) Code() ErrCode    { return NotABoolean }
func (e NewNotABoolean) Kind() Kind       { return Runtime }
func (e NewNotABoolean) getStack() []byte { return e.stack }
func (e NewNotABoolean) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewPrimitiveMisuse is returned by primitives called with the wrong
// number or shape of arguments, which only untyped runs can do
type NewPrimitiveMisuse struct {
	ast.Range
	Name   string
	Reason string
	stack  []byte
}

func (e NewPrimitiveMisuse) Error() string {
	return message(Runtime, "primitive '%s': %s", e.Name, e.Reason)
}
func (e NewPrimitiveMisuse) Code() ErrCode    { return PrimitiveMisuse }
func (e NewPrimitiveMisuse) Kind() Kind       { return Runtime }
func (e NewPrimitiveMisuse) getStack() []byte { return e.stack }
func (e NewPrimitiveMisuse) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

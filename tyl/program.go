package tyl

import (
	"errors"
	"io/fs"
	"path"

	"github.com/cottand/tyl/backend"
	"github.com/cottand/tyl/frontend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/frontend/types"
	"github.com/cottand/tyl/internal/log"
	"github.com/cottand/tyl/parser"
	pkgerrors "github.com/pkg/errors"
)

var programLogger = log.DefaultLogger.With("section", log.SectionFrontend+".program")

// Program is a translated, and possibly typechecked, source file
type Program struct {
	name    string
	source  string
	syntax  ast.Program
	checked bool

	// declarations holds the type of every top-level define, in order,
	// and is only populated for checked programs
	declarations []Declaration
}

type Declaration struct {
	Name string
	Type ast.Type
}

type LoadSettings struct {
	// NoCheck skips typechecking, so that programs the typechecker
	// rejects (like recursive defines) can still run
	NoCheck bool
}

func (p *Program) Name() string                { return p.name }
func (p *Program) Source() string              { return p.source }
func (p *Program) Syntax() ast.Program         { return p.syntax }
func (p *Program) Checked() bool               { return p.checked }
func (p *Program) Declarations() []Declaration { return p.declarations }

// Compile translates src and, unless settings.NoCheck, typechecks it
// against the primitives
func Compile(name, src string, settings LoadSettings) (*Program, error) {
	syntax, err := frontend.ParseToAST(src)
	if err != nil {
		return nil, err
	}
	p := &Program{
		name:   name,
		source: src,
		syntax: syntax,
	}
	if settings.NoCheck {
		return p, nil
	}

	ctx := types.Universe()
	for _, stmt := range syntax.Stmts {
		ctx, err = types.CheckStmt(ctx, stmt)
		if err != nil {
			return nil, err
		}
		if define, ok := stmt.(*ast.Define); ok {
			t, _ := ctx.Lookup(define.Name)
			p.declarations = append(p.declarations, Declaration{Name: define.Name, Type: t})
		}
	}
	p.checked = true
	programLogger.Debug("checked program", "name", name, "declarations", len(p.declarations))
	return p, nil
}

// Run executes p in a fresh environment
func (p *Program) Run() (backend.Output, error) {
	return backend.Execute(backend.Universe(), p.syntax)
}

// Interpret compiles and runs src in one go
func Interpret(src string, settings LoadSettings) (backend.Output, error) {
	p, err := Compile("", src, settings)
	if err != nil {
		return nil, err
	}
	return p.Run()
}

// LoadFile reads and compiles the file at filePath inside fsys
func LoadFile(fsys fs.FS, filePath string, settings LoadSettings) (*Program, error) {
	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not read %s", filePath)
	}
	p, err := Compile(path.Base(filePath), string(content), settings)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not load %s", filePath)
	}
	return p, nil
}

// EvalLegacy parses src with the legacy token grammar, typechecks it
// unless settings.NoCheck, and evaluates it
func EvalLegacy(src string, settings LoadSettings) (ast.Type, backend.Value, error) {
	expr, err := parser.ParseLegacy(src)
	if err != nil {
		return nil, nil, err
	}
	var t ast.Type
	if !settings.NoCheck {
		t, err = types.Typecheck(types.Universe(), expr)
		if err != nil {
			return nil, nil, err
		}
	}
	v, err := backend.Evaluate(backend.Universe(), expr)
	if err != nil {
		return nil, nil, err
	}
	return t, v, nil
}

// FormatError renders err with its error code and, when err carries
// a position, the line and column inside src
func FormatError(err error, fileName, src string) string {
	var ileErr ilerr.IleError
	if !errors.As(err, &ileErr) {
		return err.Error()
	}
	return ilerr.FormatWithCodeAndSource(ileErr, fileName, src)
}

package frontend

import (
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/internal/log"
	"github.com/cottand/tyl/parser"
)

var logger = log.DefaultLogger.With("section", log.SectionFrontend)

// ParseToAST reads src as a sequence of top-level s-expressions and
// translates them into a Program, without typechecking it
func ParseToAST(src string) (ast.Program, error) {
	sexps, err := parser.ReadSexps(src)
	if err != nil {
		return ast.Program{}, err
	}
	prog, err := TranslateProg(sexps)
	if err != nil {
		return ast.Program{}, err
	}
	logger.Debug("translated program", "statements", len(prog.Stmts))
	return prog, nil
}

// ParseExpr reads src as exactly one s-expression and translates it into an expression
func ParseExpr(src string) (ast.Expr, error) {
	sexps, err := parser.ReadSexps(src)
	if err != nil {
		return nil, err
	}
	if len(sexps) != 1 {
		return nil, expectedOneExpr(len(sexps))
	}
	expr, err := TranslateExp(sexps[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("translated expression", "expr", expr)
	return expr, nil
}

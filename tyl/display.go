package tyl

import (
	"fmt"
	"strings"

	"github.com/cottand/tyl/frontend/ast"
)

const playgroundFile = "program.tyl"

// ShowTypes typechecks src and renders the type of every top-level
// define, one per line. Errors are rendered in place of the types.
func ShowTypes(src string) string {
	p, err := Compile(playgroundFile, src, LoadSettings{})
	if err != nil {
		return "the program has the following errors:\n" + FormatError(err, playgroundFile, src)
	}
	sb := &strings.Builder{}
	for _, d := range p.Declarations() {
		_, _ = fmt.Fprintf(sb, "%s : %s\n", d.Name, ast.TypeString(d.Type))
	}
	return sb.String()
}

// ShowOutput runs src and renders what it printed, one line per print
func ShowOutput(src string, settings LoadSettings) string {
	p, err := Compile(playgroundFile, src, settings)
	if err != nil {
		return "the program has the following errors:\n" + FormatError(err, playgroundFile, src)
	}
	out, err := p.Run()
	if err != nil {
		return "the program failed:\n" + FormatError(err, playgroundFile, src)
	}
	return strings.Join(out, "\n")
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/internal/config"
	"github.com/cottand/tyl/internal/log"
	"github.com/cottand/tyl/tyl"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var ReplCmd = &cobra.Command{
	Use:          "repl",
	Short:        "Start an interactive tyl session",
	RunE:         runRepl,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var replLogger = log.DefaultLogger.With("section", log.SectionRepl)

const continuationPrompt = "...> "

func init() {
	ReplCmd.Flags().Bool("no-check", false, "run inputs without typechecking")
	ReplCmd.Flags().String("prompt", config.DefaultPrompt, "prompt to show")
	ReplCmd.Flags().String("history-file", "", "file to keep input history in")
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := newRepl(tyl.NewSession(loadSettings(cfg)), newStyles(cfg.Color), cmd.OutOrStdout(), cmd.ErrOrStderr())
	_, _ = fmt.Fprintln(r.out, r.st.faint.Render("tyl REPL. Type .help for commands, .quit to exit"))

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.pending.Reset()
			rl.SetPrompt(cfg.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if r.handleLine(line) {
			break
		}
		if r.pending.Len() > 0 {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(cfg.Prompt)
		}
	}
	return nil
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".env"),
		readline.PcItem(".type"),
		readline.PcItem(".legacy"),
		readline.PcItem(".quit"),
		readline.PcItem("(define"),
		readline.PcItem("(assign"),
		readline.PcItem("(print"),
	)
}

type repl struct {
	session *tyl.Session
	st      styles
	out     io.Writer
	errOut  io.Writer

	// pending holds the lines of an input whose parentheses are not closed yet
	pending strings.Builder
}

func newRepl(session *tyl.Session, st styles, out, errOut io.Writer) *repl {
	return &repl{session: session, st: st, out: out, errOut: errOut}
}

// handleLine processes one line of input and reports whether the session should end
func (r *repl) handleLine(line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if r.pending.Len() == 0 {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return r.handleDotCommand(trimmed)
		}
	}

	r.pending.WriteString(line)
	r.pending.WriteString("\n")
	if parenDepth(r.pending.String()) > 0 {
		return false
	}
	src := r.pending.String()
	r.pending.Reset()

	out, err := r.session.Eval(src)
	if err != nil {
		r.st.printErr(r.errOut, tyl.FormatError(err, "<repl>", src))
		return false
	}
	for _, l := range out {
		_, _ = fmt.Fprintln(r.out, l)
	}
	return false
}

func (r *repl) handleDotCommand(line string) (quit bool) {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	replLogger.Debug("dot command", "command", command, "arg", arg)

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(r.out)

	case ".env":
		r.printEnv()

	case ".type":
		if arg == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .type <expr>")
			return false
		}
		t, err := r.session.TypeOf(arg)
		if err != nil {
			r.st.printErr(r.errOut, tyl.FormatError(err, "<repl>", arg))
			return false
		}
		_, _ = fmt.Fprintln(r.out, r.st.typ.Render(ast.TypeString(t)))

	case ".legacy":
		if arg == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .legacy <expr>")
			return false
		}
		shown, err := r.session.Legacy(arg)
		if err != nil {
			r.st.printErr(r.errOut, tyl.FormatError(err, "<repl>", arg))
			return false
		}
		_, _ = fmt.Fprintln(r.out, shown)

	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (r *repl) printEnv() {
	bindings := r.session.Bindings()
	if len(bindings) == 0 {
		_, _ = fmt.Fprintln(r.out, "(no bindings)")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "Value"})
	for _, b := range bindings {
		typ := "-"
		if b.Type != nil {
			typ = ast.TypeString(b.Type)
		}
		t.AppendRow(table.Row{b.Name, typ, b.Value})
	}
	t.Render()
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .env            List the bindings defined so far
  .type <expr>    Show the type of an expression
  .legacy <expr>  Evaluate an expression in the legacy grammar
  .quit / .exit   Exit the REPL

Anything else is read as statements, for example (define x 1) or (print x).
Input continues over several lines until its parentheses are balanced.
`
	_, _ = fmt.Fprintln(w, help)
}

// parenDepth counts the parentheses left open in src, ignoring comments
func parenDepth(src string) int {
	depth := 0
	inComment := false
	for _, c := range src {
		switch {
		case inComment:
			inComment = c != '\n'
		case c == ';':
			inComment = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth
}

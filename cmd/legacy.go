package cmd

import (
	"fmt"

	"github.com/cottand/tyl/backend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/tyl"
	"github.com/spf13/cobra"
)

var LegacyCmd = &cobra.Command{
	Use:          "legacy \"(if (== 1 1) then 2 else 3)\"",
	Short:        "Evaluate an expression written in the legacy token grammar",
	RunE:         runLegacy,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func init() {
	LegacyCmd.Flags().Bool("no-check", false, "evaluate without typechecking")
}

func runLegacy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := newStyles(cfg.Color)

	t, v, err := tyl.EvalLegacy(args[0], loadSettings(cfg))
	if err != nil {
		st.printErr(cmd.ErrOrStderr(), tyl.FormatError(err, "<expr>", args[0]))
		return fmt.Errorf("could not evaluate expression")
	}
	if t == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), backend.Show(v))
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s : %s\n", backend.Show(v), st.typ.Render(ast.TypeString(t)))
	return nil
}

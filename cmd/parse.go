package cmd

import (
	"fmt"
	"os"

	"github.com/cottand/tyl/frontend"
	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/tyl"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var ParseCmd = &cobra.Command{
	Use:          "parse file.tyl",
	Short:        "Print the program as parsed",
	RunE:         runParse,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var dumpAST *bool

func init() {
	dumpAST = ParseCmd.Flags().Bool("dump", false, "dump the syntax tree instead of printing it back")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read file: %w", err)
	}
	prog, err := frontend.ParseToAST(string(content))
	if err != nil {
		newStyles(cfg.Color).printErr(cmd.ErrOrStderr(), tyl.FormatError(err, args[0], string(content)))
		return fmt.Errorf("could not parse %s", args[0])
	}

	if *dumpAST {
		dumper := litter.Options{
			HidePrivateFields: false,
			StripPackageNames: true,
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), dumper.Sdump(prog))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ast.ProgramString(prog))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/cottand/tyl/frontend/ast"
	"github.com/cottand/tyl/frontend/ilerr"
	"github.com/cottand/tyl/tyl"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.tyl...",
	Short:        "Typecheck tyl programs without running them",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := newStyles(cfg.Color)

	var errs *ilerr.Errors
	for _, target := range args {
		// typecheck regardless of the config
		p, err := loadTarget(target, tyl.LoadSettings{})
		if err != nil {
			st.printErr(cmd.ErrOrStderr(), describeLoadError(target, err))
			errs = errs.WithErr(err)
			continue
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), st.header.Render(p.Name()))
		for _, d := range p.Declarations() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s : %s\n", d.Name, st.typ.Render(ast.TypeString(d.Type)))
		}
	}
	if errs.HasError() {
		logger.Debug("check failed", "errors", errs)
		return fmt.Errorf("errors found in %d of %d files", len(errs.Errors()), len(args))
	}
	return nil
}

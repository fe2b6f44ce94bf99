package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cottand/tyl/internal/log"
	"github.com/cottand/tyl/tyl"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", log.SectionCli)

var RunCmd = &cobra.Command{
	Use:          "run file.tyl...",
	Short:        "Typecheck and run tyl programs",
	RunE:         runRun,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	RunCmd.Flags().Bool("no-check", false, "run without typechecking")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := newStyles(cfg.Color)

	for _, target := range args {
		p, err := loadTarget(target, loadSettings(cfg))
		if err != nil {
			st.printErr(cmd.ErrOrStderr(), describeLoadError(target, err))
			return fmt.Errorf("could not load %s", target)
		}
		out, err := p.Run()
		if err != nil {
			st.printErr(cmd.ErrOrStderr(), tyl.FormatError(err, p.Name(), p.Source()))
			return fmt.Errorf("%s failed", target)
		}
		for _, line := range out {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	return nil
}

// loadTarget compiles the file at target
func loadTarget(target string, settings tyl.LoadSettings) (*tyl.Program, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute path of target: %w", err)
	}
	p, err := tyl.LoadFile(os.DirFS(filepath.Dir(abs)), filepath.Base(abs), settings)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded program", "name", p.Name(), "checked", p.Checked())
	return p, nil
}

// describeLoadError formats err with its position in target when the
// file can still be read
func describeLoadError(target string, err error) string {
	src, readErr := os.ReadFile(target)
	if readErr != nil {
		return err.Error()
	}
	return tyl.FormatError(err, filepath.Base(target), string(src))
}

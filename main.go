//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/tyl/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tyl [subcommand]",
	Short:        "tyl, a small typed s-expression language",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./tyl.yaml if present)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "error", "log level: debug, info, warn or error")

	rootCmd.AddCommand(cmd.RunCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ParseCmd)
	rootCmd.AddCommand(cmd.LegacyCmd)
	rootCmd.AddCommand(cmd.ReplCmd)
}

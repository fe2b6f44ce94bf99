package cmd

import (
	"fmt"

	"github.com/cottand/tyl/internal/config"
	"github.com/cottand/tyl/tyl"
	"github.com/spf13/cobra"
)

// loadConfig resolves the configuration for c from its flags, including
// the persistent --config and --log-level of the root command
func loadConfig(c *cobra.Command) (*config.Config, error) {
	cfgFile, _ := c.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, c.Flags())
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	if err := cfg.Apply(); err != nil {
		return nil, err
	}
	logger.Debug("loaded configuration", "file", cfg.FileUsed, "typecheck", cfg.Typecheck)
	return cfg, nil
}

func loadSettings(cfg *config.Config) tyl.LoadSettings {
	return tyl.LoadSettings{NoCheck: !cfg.Typecheck}
}

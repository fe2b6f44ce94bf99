// Package config loads the settings of the tyl command line tool.
//
// Precedence (highest to lowest): flags > TYL_ env vars > tyl.yaml > defaults
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cottand/tyl/internal/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultFile   = "tyl.yaml"
	DefaultPrompt = "tyl> "
	envPrefix     = "TYL_"
)

type Config struct {
	// Typecheck programs before running them
	Typecheck   bool   `koanf:"typecheck"`
	LogLevel    string `koanf:"log_level"`
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
	Color       bool   `koanf:"color"`

	// FileUsed is the config file that was read, if any
	FileUsed string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"typecheck":    true,
		"log_level":    "error",
		"prompt":       DefaultPrompt,
		"history_file": "",
		"color":        true,
	}
}

// Load reads the config file at cfgFile, or tyl.yaml in the working
// directory when cfgFile is empty, then applies env vars and any
// flags in flags that were explicitly set.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			cfgFile = DefaultFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// TYL_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// --no-check reads better on the command line than --typecheck=false
			if f.Name == "no-check" {
				noCheck, _ := flags.GetBool(f.Name)
				return "typecheck", !noCheck
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Apply sets the global log level from c
func (c *Config) Apply() error {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}

// Package config loads settings from an optional YAML file, LINGODECK_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/lingodeck/internal/deck"
	"github.com/conorfennell/lingodeck/internal/reveal"
)

// EnvPrefix is the prefix of environment variables read by Load.
// LINGODECK_DATA_DIR maps to data.dir.
const EnvPrefix = "LINGODECK_"

// Config holds all application configuration.
type Config struct {
	Language string        `koanf:"language" validate:"required,oneof=spanish-english english-turkish"`
	Data     DataConfig    `koanf:"data"`
	Reveal   RevealConfig  `koanf:"reveal"`
	Save     SaveConfig    `koanf:"save"`
	Log      LogConfig     `koanf:"log"`
	Journal  JournalConfig `koanf:"journal"`
	Dataset  DatasetConfig `koanf:"dataset"`
}

// DataConfig locates master datasets and progress snapshots.
type DataConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// RevealConfig sets how long a card shows its source side.
type RevealConfig struct {
	Delay time.Duration `koanf:"delay" validate:"gt=0"`
}

// SaveConfig is the retry policy for progress snapshot writes.
type SaveConfig struct {
	Retries int `koanf:"retries" validate:"gte=0,lte=5"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// JournalConfig enables the SQLite review journal when Path is set.
type JournalConfig struct {
	Path string `koanf:"path"`
}

// DatasetConfig points at a git repository holding master datasets.
type DatasetConfig struct {
	Repo string `koanf:"repo"`
}

// Flags returns a flag set carrying every setting and its default.
// The "config" flag names an optional YAML file.
func Flags(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.String("config", "", "Path to a YAML configuration file")
	f.String("language", "spanish-english", "Language pair to train (spanish-english, english-turkish)")
	f.String("data-dir", "data", "Directory holding datasets and progress snapshots")
	f.Duration("reveal-delay", reveal.DefaultDelay, "How long a card is shown before its translation is revealed")
	f.Int("save-retries", deck.DefaultRetries, "Extra attempts at writing progress before reporting a failure")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("journal-path", "", "SQLite file for the review journal; empty disables it")
	f.String("dataset-repo", "", "Git URL to fetch master datasets from")
	return f
}

// Load builds a Config from a parsed flag set. A .env file in the working
// directory, if present, is loaded into the environment first.
func Load(f *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Unchanged flags only fill keys that are still unset, so flag defaults
	// never override the file or the environment.
	if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagKey(f)), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps LINGODECK_DATA_DIR to data.dir. Only the first underscore
// separates levels.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// flagKey maps --data-dir to data.dir and drops --config.
func flagKey(set *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return strings.Replace(f.Name, "-", ".", 1), posflag.FlagVal(set, f)
	}
}

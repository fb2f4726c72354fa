package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const AppName = "boostnote-to-obsidian"

// Viper keys. Flags and environment variables bind to the same names.
const (
	KeyNotes       = "notes"
	KeyFolders     = "folders"
	KeyOutput      = "output"
	KeyFrontmatter = "frontmatter"
	KeyTimestamps  = "timestamps"
	KeyProgress    = "progress"
	KeyLogLevel    = "log_level"
	KeyFailOnError = "fail_on_error"
)

// EnvPrefix is prepended to upper-cased keys, e.g. BOOSTNOTE2OBSIDIAN_LOG_LEVEL.
const EnvPrefix = "BOOSTNOTE2OBSIDIAN"

type Config struct {
	NotesDir    string `mapstructure:"notes"`
	FolderIndex string `mapstructure:"folders"`
	OutputDir   string `mapstructure:"output"`
	Frontmatter bool   `mapstructure:"frontmatter"`
	Timestamps  bool   `mapstructure:"timestamps"`
	ProgressBar bool   `mapstructure:"progress"`
	LogLevel    string `mapstructure:"log_level"`
	FailOnError bool   `mapstructure:"fail_on_error"`
}

// SetDefaults registers every key so environment variables are seen by
// Unmarshal even when no config file or flag mentions them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyNotes, "")
	v.SetDefault(KeyFolders, "")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyFrontmatter, false)
	v.SetDefault(KeyTimestamps, false)
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyFailOnError, false)
}

// ConfigureSources points v at the config file (explicit, or searched in the
// working directory and the user config directories) and the environment.
func ConfigureSources(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load unmarshals, expands and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return Config{}, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes directory cannot be empty")
	}
	if c.FolderIndex == "" {
		return fmt.Errorf("folder index cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if filepath.Clean(c.OutputDir) == filepath.Clean(c.NotesDir) {
		return fmt.Errorf("output directory must differ from the notes directory")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	return nil
}

// ExpandPaths expands a leading ~ and makes the paths absolute.
func (c *Config) ExpandPaths() error {
	var err error

	c.NotesDir, err = expandPath(c.NotesDir)
	if err != nil {
		return fmt.Errorf("failed to expand notes: %w", err)
	}

	c.FolderIndex, err = expandPath(c.FolderIndex)
	if err != nil {
		return fmt.Errorf("failed to expand folders: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output: %w", err)
	}

	return nil
}

func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}

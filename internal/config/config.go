package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// Cleaning bounds used when a clean run does not override them.
	AgeMin float64 `mapstructure:"age_min" yaml:"age_min"`
	AgeMax float64 `mapstructure:"age_max" yaml:"age_max"`
	ExpMin float64 `mapstructure:"exp_min" yaml:"exp_min"`
	ExpMax float64 `mapstructure:"exp_max" yaml:"exp_max"`

	WorkspaceDir      string `mapstructure:"workspace_dir" yaml:"workspace_dir"`
	ScatterSampleSize int    `mapstructure:"scatter_sample_size" yaml:"scatter_sample_size"`
	PreviewRows       int    `mapstructure:"preview_rows" yaml:"preview_rows"`

	// HTTP/Retry configuration for remote datasets
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"age_min", "age_max", "exp_min", "exp_max",
	"workspace_dir", "scatter_sample_size", "preview_rows",
	"http_timeout_sec", "retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms",
	"log_level", "log_format",
}

// CleaningParameters returns the configured cleaning bounds.
func (c *Global) CleaningParameters() dataset.CleaningParameters {
	return dataset.CleaningParameters{AgeMin: c.AgeMin, AgeMax: c.AgeMax, ExpMin: c.ExpMin, ExpMax: c.ExpMax}
}

// HTTPTimeout returns the remote fetch timeout.
func (c *Global) HTTPTimeout() time.Duration { return time.Duration(c.HTTPTimeoutSec) * time.Second }

// RetryBaseDelay returns the initial retry backoff.
func (c *Global) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMs) * time.Millisecond
}

// RetryMaxDelay returns the backoff cap.
func (c *Global) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMs) * time.Millisecond
}

// SessionPath is the SQLite file holding the workspace tables.
func (c *Global) SessionPath() string { return filepath.Join(c.WorkspaceDir, "session.db") }

// Dir returns ~/.tidyset.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tidyset"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tidyset/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from .env, file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is applied to the environment first;
// variables already set are not overridden.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TIDYSET")
	v.AutomaticEnv()

	d := dataset.DefaultParameters()
	v.SetDefault("age_min", d.AgeMin)
	v.SetDefault("age_max", d.AgeMax)
	v.SetDefault("exp_min", d.ExpMin)
	v.SetDefault("exp_max", d.ExpMax)
	v.SetDefault("workspace_dir", "")
	v.SetDefault("scatter_sample_size", 400)
	v.SetDefault("preview_rows", 200)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve workspace_dir default: ~/.tidyset/workspace
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = filepath.Join(dir, "workspace")
	}
	return &c, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// CONFIG — File, environment, and default layering
// ============================================================================
// Precedence: env (PLOTLINE_*) > config file > defaults. The config file
// is optional; a missing file is not an error.
// ============================================================================

// Global configuration structure.
type Global struct {
	// Gemini classification. An empty APIKey selects the keyword strategy.
	GeminiAPIKey   string `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel    string `mapstructure:"gemini_model" yaml:"gemini_model"`
	GeminiEndpoint string `mapstructure:"gemini_endpoint" yaml:"gemini_endpoint"`

	// Pipeline limits.
	ChartBudget     int `mapstructure:"chart_budget" yaml:"chart_budget"`
	FetchTimeoutSec int `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"`
	TaskTimeoutSec  int `mapstructure:"task_timeout_sec" yaml:"task_timeout_sec"`
	MaxTableRows    int `mapstructure:"max_table_rows" yaml:"max_table_rows"`

	// Columnar store.
	StoreDSN         string `mapstructure:"store_dsn" yaml:"store_dsn"`
	StorePathPattern string `mapstructure:"store_path_pattern" yaml:"store_path_pattern"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.plotline/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".plotline")
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

// Load loads configuration from file, env, and defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PLOTLINE")
	v.AutomaticEnv()

	// Defaults. Every key needs one so AutomaticEnv feeds Unmarshal.
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("gemini_endpoint", "")
	v.SetDefault("chart_budget", 100_000)
	v.SetDefault("fetch_timeout_sec", 30)
	v.SetDefault("task_timeout_sec", 180)
	v.SetDefault("max_table_rows", 10_000)
	v.SetDefault("store_dsn", "")
	v.SetDefault("store_path_pattern", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".plotline"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

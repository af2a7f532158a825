// Package config loads toolkit settings from the analysis config file,
// environment variables, and flag bindings, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is where the analysis config file lives relative to the
// workspace root.
const DefaultPath = "config/analysis.config.json"

// Config holds every knob the subcommands share. Zero-config runs work:
// a missing config file falls back to these defaults.
type Config struct {
	PluginsDir      string        `mapstructure:"plugins_dir"`
	ExcludePatterns []string      `mapstructure:"exclude_patterns"`
	ReportsDir      string        `mapstructure:"reports_dir"`
	CheckpointsDir  string        `mapstructure:"checkpoints_dir"`
	PartnersDir     string        `mapstructure:"partners_dir"`
	GitHubToken     string        `mapstructure:"github_token"`
	OpenRouterKey   string        `mapstructure:"openrouter_api_key"`
	ResearchModel   string        `mapstructure:"research_model"`
	RequestDelay    time.Duration `mapstructure:"request_delay"`
}

// Load reads the config file at path, layering ELIZA_-prefixed environment
// variables on top. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("plugins_dir", "packages")
	v.SetDefault("exclude_patterns", []string{})
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("checkpoints_dir", "checkpoints")
	v.SetDefault("partners_dir", "packages/docs/docs/partners")
	v.SetDefault("research_model", "perplexity/sonar-reasoning-pro:online")
	v.SetDefault("request_delay", 5*time.Second)
	// Empty defaults keep the keys visible to AutomaticEnv during Unmarshal.
	v.SetDefault("github_token", "")
	v.SetDefault("openrouter_api_key", "")

	v.SetEnvPrefix("ELIZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Conventional unprefixed variables win only when nothing else set them.
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.OpenRouterKey == "" {
		cfg.OpenRouterKey = os.Getenv("OPENROUTER_API_KEY")
	}
	return &cfg, nil
}

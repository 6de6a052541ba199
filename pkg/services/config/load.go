package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

const envPrefix = "AGRO"

type LoadOptions struct {
	// ConfigFile optionally overlays the defaults (yaml, json or toml).
	ConfigFile string
	// ProfilesFile optionally overrides the per environment endpoints (ini).
	ProfilesFile string
	Environment  Environment
}

// Load builds the application configuration: embedded defaults, then the optional
// config file, then AGRO_* environment variables, then the environment profile for
// any endpoint left empty.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	env := opts.Environment
	if env == "" {
		env = EnvironmentProduction
	}
	cfg.Environment = env

	registry, err := NewProfileRegistry(opts.ProfilesFile)
	if err != nil {
		return nil, err
	}
	profile, err := registry.GetProfile(env)
	if err != nil {
		return nil, err
	}

	if cfg.HTTP.BaseURL == "" {
		cfg.HTTP.BaseURL = profile.BaseURL
	}
	if cfg.PublicRuntime.BaseURL == "" {
		cfg.PublicRuntime.BaseURL = profile.BaseURL
	}
	if cfg.PublicRuntime.PDFServiceURL == "" {
		cfg.PublicRuntime.PDFServiceURL = profile.PDFServiceURL
	}

	return &cfg, nil
}

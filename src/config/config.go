// Package config loads runtime settings from an optional YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/recall-labs/go-recall/src/render"
)

// Config is the full runtime configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Memory MemoryConfig `mapstructure:"memory"`
	Render RenderConfig `mapstructure:"render"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MemoryConfig struct {
	// File is the JSON document served as the default candidate collection.
	File string `mapstructure:"file"`
	// StoreFile backs the agent memory store.
	StoreFile   string `mapstructure:"store_file"`
	DefaultTopK int    `mapstructure:"default_top_k"`
}

type RenderConfig struct {
	MaxConcurrency int                      `mapstructure:"max_concurrency"`
	Presets        map[string]render.Preset `mapstructure:"presets"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8087")
	v.SetDefault("log.level", "info")
	v.SetDefault("memory.file", "memories.json")
	v.SetDefault("memory.store_file", "agent_memory.json")
	v.SetDefault("memory.default_top_k", 5)
	v.SetDefault("render.max_concurrency", 4)
}

// Load reads configuration from the given file, or from recall.yaml in the
// working directory when path is empty. A missing config file is not an
// error; defaults and RECALL_* environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("recall")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("RECALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Presets returns the default quality table with configured overrides applied.
func (c *Config) Presets() render.Presets {
	return render.DefaultPresets().Merge(c.Render.Presets)
}

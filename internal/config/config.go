package config

import (
	"fmt"
	"strings"

	"github.com/Alireza013/Mood-Playlist/internal/emotion"
	"github.com/Alireza013/Mood-Playlist/internal/models"
	"github.com/Alireza013/Mood-Playlist/internal/mood"
	"github.com/Alireza013/Mood-Playlist/internal/recommend"
	"github.com/Alireza013/Mood-Playlist/internal/service"
)

// Config represents the complete configuration for the mood playlist
// application. It covers all commands (analyze, serve, stats, models) and
// supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir" json:"models_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Catalog source
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog" json:"catalog"`

	// Emotion model settings
	Models ModelsConfig `mapstructure:"models" yaml:"models" json:"models"`

	// Recommendation settings
	Recommend RecommendConfig `mapstructure:"recommend" yaml:"recommend" json:"recommend"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// CatalogConfig contains catalog file settings.
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// ModelsConfig contains emotion model settings.
type ModelsConfig struct {
	Enabled    bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	MaxSeqLen  int  `mapstructure:"max_seq_len" yaml:"max_seq_len" json:"max_seq_len"`
	NumThreads int  `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
}

// RecommendConfig contains recommendation settings.
type RecommendConfig struct {
	Limit int   `mapstructure:"limit" yaml:"limit" json:"limit"`
	Seed  int64 `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyKB       int    `mapstructure:"max_body_kb" yaml:"max_body_kb" json:"max_body_kb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// BatchConfig contains batch analysis settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ModelsDir: models.DefaultModelsDir,
		LogLevel:  "info",
		Verbose:   false,
		Catalog: CatalogConfig{
			Path: "",
		},
		Models: ModelsConfig{
			Enabled:    true,
			MaxSeqLen:  emotion.DefaultMaxSeqLen,
			NumThreads: 0,
		},
		Recommend: RecommendConfig{
			Limit: recommend.DefaultLimit,
			Seed:  0,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyKB:       64,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.Models.MaxSeqLen < emotion.MinSeqLen {
		return fmt.Errorf("invalid max sequence length: %d (must be at least %d)", c.Models.MaxSeqLen, emotion.MinSeqLen)
	}
	if c.Models.NumThreads < 0 {
		return fmt.Errorf("invalid model thread count: %d (must not be negative)", c.Models.NumThreads)
	}

	if c.Recommend.Limit < 0 {
		return fmt.Errorf("invalid recommendation limit: %d (must not be negative)", c.Recommend.Limit)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxBodyKB <= 0 {
		return fmt.Errorf("invalid max body size: %d (must be positive)", c.Server.MaxBodyKB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// ToServiceConfig converts the config to the internal service configuration.
func (c *Config) ToServiceConfig() service.Config {
	cfg := service.DefaultConfig()
	cfg.ModelsDir = models.GetModelsDir(c.ModelsDir)
	cfg.CatalogPath = c.Catalog.Path
	cfg.EnableModels = c.Models.Enabled
	cfg.Workers = c.Batch.Workers
	cfg.RandSeed = c.Recommend.Seed
	for i := range cfg.Predictors {
		cfg.Predictors[i].MaxSeqLen = c.Models.MaxSeqLen
		cfg.Predictors[i].NumThreads = c.Models.NumThreads
	}
	return cfg
}

// PredictorConfigs builds per-language predictor configs for the configured
// models directory.
func (c *Config) PredictorConfigs() []emotion.PredictorConfig {
	dir := models.GetModelsDir(c.ModelsDir)
	configs := []emotion.PredictorConfig{
		emotion.DefaultPredictorConfig(mood.English),
		emotion.DefaultPredictorConfig(mood.Persian),
	}
	for i := range configs {
		configs[i].MaxSeqLen = c.Models.MaxSeqLen
		configs[i].NumThreads = c.Models.NumThreads
		configs[i].UpdateModelPath(dir)
	}
	return configs
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

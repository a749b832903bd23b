// Package config provides configuration management for the sssp-lab service.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// SolverConfig holds SSSP engine configuration.
type SolverConfig struct {
	DefaultThreads int `mapstructure:"default_threads"`
	MaxThreads     int `mapstructure:"max_threads"`
}

// PipelineConfig holds the three-stage pipeline runtime configuration.
type PipelineConfig struct {
	ResultDir   string `mapstructure:"result_dir"`
	WorkerCount int    `mapstructure:"worker_count"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Determine config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sssp-lab")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Check if it's a "file not found" error (either viper's type or os error)
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			fmt.Println("Config file not found, using defaults")
		} else if os.IsNotExist(err) {
			// File specified but doesn't exist, use defaults
			fmt.Printf("Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow environment variables to override config
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Solver defaults, matching the engine's default/max thread counts.
	v.SetDefault("solver.default_threads", 1)
	v.SetDefault("solver.max_threads", 64)

	// Pipeline defaults
	v.SetDefault("pipeline.result_dir", "./results")
	v.SetDefault("pipeline.worker_count", 1)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Solver.DefaultThreads < 1 {
		return fmt.Errorf("solver default_threads must be at least 1")
	}
	if c.Solver.MaxThreads < c.Solver.DefaultThreads {
		return fmt.Errorf("solver max_threads must be >= default_threads")
	}
	if c.Solver.MaxThreads > 64 {
		return fmt.Errorf("solver max_threads must not exceed 64")
	}
	if c.Pipeline.ResultDir == "" {
		return fmt.Errorf("pipeline result_dir is required")
	}
	return nil
}

// EnsureResultDir creates the pipeline's result directory if it doesn't exist.
func (c *Config) EnsureResultDir() error {
	if c.Pipeline.ResultDir == "" {
		return nil
	}
	return os.MkdirAll(c.Pipeline.ResultDir, 0755)
}

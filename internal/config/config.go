// Package config holds the qgates configuration.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"qgates/export"
)

// Config defines the tool configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Backend  string `yaml:"backend"`
	GateName string `yaml:"gate_name"`
	Shots    int    `yaml:"shots"`
	Seed     uint64 `yaml:"seed"`
	Color    bool   `yaml:"color"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Backend:  "qasm",
		GateName: "qc",
		Shots:    1024,
		Seed:     1,
		Color:    true,
	}
}

// Load loads configuration with priority: env > file > defaults. An
// empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, errors.Wrap(err, "read config")
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				return config, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	if err := loadFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "invalid config")
	}
	return config, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

func loadFromEnv(config *Config) error {
	if v := os.Getenv("QGATES_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("QGATES_BACKEND"); v != "" {
		config.Backend = v
	}
	if v := os.Getenv("QGATES_SHOTS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "QGATES_SHOTS")
		}
		config.Shots = i
	}
	if v := os.Getenv("QGATES_SEED"); v != "" {
		i, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "QGATES_SEED")
		}
		config.Seed = i
	}
	return nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level")
	}
	if _, err := export.ParseBackend(c.Backend); err != nil {
		return err
	}
	if len(c.GateName) == 0 {
		return errors.New("gate_name is empty")
	}
	if c.Shots <= 0 {
		return errors.Errorf("shots must be positive: %d", c.Shots)
	}
	return nil
}

// Logger builds the console logger for the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log_level")
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if !c.Color {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}

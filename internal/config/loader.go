package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is tried when CONFIG_PATH is unset.
const DefaultPath = "./config.yaml"

// Load resolves the file from CONFIG_PATH and delegates to LoadFile.
// An unset CONFIG_PATH makes the default file optional.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFile(path, true)
	}
	return LoadFile(DefaultPath, false)
}

// LoadFile reads path as YAML, overlays the environment and validates the
// result. Precedence is ENV, then file, then env-default tags. A missing
// file is an error only when required is set.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist) && !required:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Describe lists every environment variable the service reads, with its
// default, for the -env-help flag.
func Describe() (string, error) {
	header := "MindCure backend environment:"
	return cleanenv.GetDescription(&Config{}, &header)
}

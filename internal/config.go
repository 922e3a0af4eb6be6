package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var ErrMissingConfig = errors.New("missing_config")

var configSections = map[string]bool{
	"dynamodb":  true,
	"database":  true,
	"queue":     true,
	"sender":    true,
	"execution": true,
	"log":       true,
}

const (
	ExecutionContextRegular = "regular"
	ExecutionContextLow     = "low"
)

type Config struct {
	DynamoDB struct {
		Flights string `koanf:"flights"`
	} `koanf:"dynamodb"`
	Database struct {
		DSN string `koanf:"dsn"`
	} `koanf:"database"`
	Queue struct {
		Boarding string `koanf:"boarding"`
	} `koanf:"queue"`
	Sender struct {
		Email string `koanf:"email"`
	} `koanf:"sender"`
	Execution struct {
		Context string `koanf:"context"`
	} `koanf:"execution"`
	Log struct {
		Level  string `koanf:"level"`
		Pretty bool   `koanf:"pretty"`
	} `koanf:"log"`

	k *koanf.Koanf
}

// LoadConfig reads configuration with increasing priority from defaults, the
// given YAML files and the environment. Missing files are skipped.
// Environment variables map UPPER_CASE to lower.case, so DYNAMODB_FLIGHTS sets
// dynamodb.flights.
func LoadConfig(paths ...string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"execution.context": ExecutionContextRegular,
		"log.level":         "info",
		"log.pretty":        false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, p := range paths {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			continue
		}
	}

	if err := k.Load(envprovider.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	return &cfg, nil
}

// Require fails with ErrMissingConfig naming the first key that is empty.
func (c *Config) Require(keys ...string) error {
	for _, key := range keys {
		if c.k == nil || IsBlank(c.k.String(key)) {
			return fmt.Errorf("%w: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

// MustLoadConfig loads configuration and panics when a required key is empty.
func MustLoadConfig(required ...string) *Config {
	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		panic(err)
	}
	if err := cfg.Require(required...); err != nil {
		panic(err)
	}
	return cfg
}

// envKey maps DYNAMODB_FLIGHTS to dynamodb.flights. Variables outside the
// known sections are ignored.
func envKey(name string) string {
	key := strings.ToLower(name)
	section, _, found := strings.Cut(key, "_")
	if !found || !configSections[section] {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

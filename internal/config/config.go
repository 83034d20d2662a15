// Package config handles loading and validation of sentiserver.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ddbstore "github.com/feedworks/sentiserver/internal/store/dynamodb"
)

// Config is the serve-mode project configuration.
type Config struct {
	Server     *ServerConfig     `yaml:"server,omitempty"`
	Store      string            `yaml:"store"`
	DynamoDB   *ddbstore.Config  `yaml:"dynamodb,omitempty"`
	Comprehend *ComprehendConfig `yaml:"comprehend,omitempty"`
	Worker     *WorkerConfig     `yaml:"worker,omitempty"`
	Alerts     *AlertConfig      `yaml:"alerts,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// ComprehendConfig holds classifier settings.
type ComprehendConfig struct {
	Region       string `yaml:"region,omitempty"`
	LanguageCode string `yaml:"languageCode,omitempty"`
}

// WorkerConfig tunes the in-process classification worker.
type WorkerConfig struct {
	BatchSize    int    `yaml:"batchSize,omitempty"`
	PollInterval string `yaml:"pollInterval,omitempty"`
	Buffer       int    `yaml:"buffer,omitempty"`
}

// AlertConfig holds alert sink settings.
type AlertConfig struct {
	SNSTopicARN string `yaml:"snsTopicArn,omitempty"`
}

// Load reads and parses sentiserver.yaml from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "sentiserver.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store {
	case "dynamodb":
		if cfg.DynamoDB == nil {
			return fmt.Errorf("dynamodb config is required when store is dynamodb")
		}
		if cfg.DynamoDB.TableName == "" {
			return fmt.Errorf("dynamodb.tableName is required")
		}
	case "memory":
	case "":
		return fmt.Errorf("store is required")
	default:
		return fmt.Errorf("unknown store %q", cfg.Store)
	}
	return nil
}

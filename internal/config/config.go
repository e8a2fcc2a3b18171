package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds gateway configuration.
type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	BackendURL    string `yaml:"backend_url"`
	SessionSecret string `yaml:"session_secret"`
	RabbitMQURL   string `yaml:"rabbitmq_url"`
	SnapshotPath  string `yaml:"snapshot_path"`
}

const (
	DefaultListenAddr   = ":8080"
	DefaultBackendURL   = "http://localhost:8000"
	DefaultSnapshotPath = "appointments.json"
)

// Load reads config from an optional YAML file, then applies environment
// overrides. You can override with LISTEN_ADDR, CLINIC_BACKEND_URL,
// SESSION_SECRET, RABBITMQ_URL and SNAPSHOT_PATH.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:   DefaultListenAddr,
		BackendURL:   DefaultBackendURL,
		SnapshotPath: DefaultSnapshotPath,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CLINIC_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQURL = v
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}

	cfg.BackendURL = strings.TrimSuffix(cfg.BackendURL, "/")

	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("missing session secret (set SESSION_SECRET or session_secret)")
	}

	return cfg, nil
}

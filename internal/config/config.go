package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level node configuration loaded from file/env.
type Config struct {
	// NodeName is this node's cluster-wide identifier, e.g. "broker@host-1".
	NodeName string `json:"nodeName" yaml:"nodeName"`
	// Peers are the node names of the other cluster members.
	Peers []string `json:"peers" yaml:"peers"`
	// ClientAddr is the client-facing listener address.
	ClientAddr string `json:"clientAddr" yaml:"clientAddr"`
	// HTTPAddr is the admin HTTP API listen address.
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// GRPCAddr is the gRPC health listen address.
	GRPCAddr string `json:"grpcAddr" yaml:"grpcAddr"`
	// DataDir holds the node's local store.
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// DrainReason is the message sent to clients whose connections are
	// closed when the node enters maintenance.
	DrainReason string `json:"drainReason" yaml:"drainReason"`
	LogLevel    string `json:"logLevel" yaml:"logLevel"`
	LogFormat   string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return Config{
		NodeName:    "broker@" + host,
		ClientAddr:  ":5672",
		HTTPAddr:    ":15672",
		GRPCAddr:    ":15673",
		DrainReason: "node is being put into maintenance mode",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

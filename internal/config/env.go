package config

import (
	"os"
	"strings"
)

// FromEnv overlays BROKER_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("BROKER_NODE_NAME"); v != "" {
		cfg.NodeName = v
	}
	if v := os.Getenv("BROKER_PEERS"); v != "" {
		parts := strings.Split(v, ",")
		cfg.Peers = nil
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Peers = append(cfg.Peers, p)
			}
		}
	}
	if v := os.Getenv("BROKER_CLIENT_ADDR"); v != "" {
		cfg.ClientAddr = v
	}
	if v := os.Getenv("BROKER_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("BROKER_GRPC_ADDR"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := os.Getenv("BROKER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BROKER_DRAIN_REASON"); v != "" {
		cfg.DrainReason = v
	}
	if v := os.Getenv("BROKER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BROKER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

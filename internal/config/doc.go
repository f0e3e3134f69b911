// Package config provides loading and environment overlay for broker node
// configuration. It exposes a Default() baseline, file loading (JSON or
// YAML by extension), and a BROKER_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/broker.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config

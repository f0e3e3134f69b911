// Package log provides the broker's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Entries flow through a
// formatter/outputs pipeline so the same call sites can emit text for
// terminals or JSON for log shippers.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("maintenance"))
//	l.Info("node drained", log.Int("connections_closed", 3))
package log

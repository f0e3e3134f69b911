// Package serverrun exposes a shared Run entrypoint used by the CLI to start
// the broker runtime with its client listener, gRPC health server, and admin
// HTTP server, handling lifecycle and shutdown.
//
// Example:
//
//	opts := serverrun.Options{DataDir: "./data", GRPCAddr: ":15673", HTTPAddr: ":15672", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun

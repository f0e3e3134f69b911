// Package runtime wires storage, config, the cluster view, and the
// maintenance subsystem into a single broker node instance. It exposes
// Open/Close, basic health checks, and accessors used by the servers.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	_ = rt.Maintenance().Drain(context.Background())
package runtime

// Package httpserver provides the admin HTTP API for a broker node: health,
// maintenance (drain/revive/status), queue management, and Prometheus
// metrics.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: config.Default()})
//	s := httpserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":15672")
package httpserver

// Package grpcserver hosts the broker's gRPC surface, currently the standard
// health service. Health reports NOT_SERVING while the local node is draining
// so load balancers stop routing clients to it before the listener suspension
// even matters.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()})
//	s := grpcserver.New(rt)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":15673")
package grpcserver

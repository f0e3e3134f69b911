package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/prakultomar-web/rabbitmq-server/internal/config"
	"github.com/prakultomar-web/rabbitmq-server/internal/runtime"
	grpcserver "github.com/prakultomar-web/rabbitmq-server/internal/server/grpc"
	httpserver "github.com/prakultomar-web/rabbitmq-server/internal/server/http"
	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type Options struct {
	DataDir       string
	ClientAddr    string
	GRPCAddr      string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// buildLogger constructs the process-wide logger from config, with env
// overrides for level and format.
func buildLogger(cfg cfgpkg.Config) logpkg.Logger {
	levelStr := getenvDefault("BROKER_LOG_LEVEL", cfg.LogLevel)
	lvl, err := logpkg.ParseLevel(levelStr)
	if err != nil {
		lvl = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if getenvDefault("BROKER_LOG_FORMAT", cfg.LogFormat) == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	return logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(formatter))
}

// Run starts the client listener plus gRPC and HTTP servers and blocks until
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers without
	// a signal-aware context still shut down cleanly.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.DataDir == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.ClientAddr != "" {
		opts.Config.ClientAddr = opts.ClientAddr
	}
	if opts.GRPCAddr == "" {
		opts.GRPCAddr = opts.Config.GRPCAddr
	}
	if opts.HTTPAddr == "" {
		opts.HTTPAddr = opts.Config.HTTPAddr
	}

	procLogger := buildLogger(opts.Config)

	storeDir := filepath.Join(opts.DataDir, "store")
	rt, err := runtime.Open(runtime.Options{
		DataDir:       storeDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
		Logger:        procLogger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.StartClientListener(); err != nil {
		return err
	}

	procLogger.Info("Starting broker node",
		logpkg.Str("node", opts.Config.NodeName),
		logpkg.Str("client", rt.ClientAddr()),
		logpkg.Str("grpc", opts.GRPCAddr),
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
	)

	gsrv := grpcserver.New(rt)
	hsrv := httpserver.New(rt, procLogger.With(logpkg.Component("http")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := gsrv.ListenAndServe(sctx, opts.GRPCAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("grpc server stopped", logpkg.Err(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server stopped", logpkg.Err(err))
		}
	}()

	<-sctx.Done()
	// Stop servers before the runtime so in-flight handlers never see a
	// closed store.
	gsrv.Close()
	hsrv.Close()
	wg.Wait()
	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	serverrun "github.com/prakultomar-web/rabbitmq-server/internal/cmd/server"
	cfgpkg "github.com/prakultomar-web/rabbitmq-server/internal/config"
	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "broker",
		Short: "Broker node CLI",
		Long:  "broker is a single-binary message broker node. This CLI manages the server and maintenance operations.",
	}

	rootCmd.AddCommand(newServerCommand())
	rootCmd.AddCommand(newMaintenanceCommand())
	rootCmd.AddCommand(newQueueCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServerCommand() *cobra.Command {
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	startCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the broker node (client listener, gRPC health, admin HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			nodeName, _ := cmd.Flags().GetString("node-name")
			peers, _ := cmd.Flags().GetString("peers")
			clientAddr, _ := cmd.Flags().GetString("client")
			grpcAddr, _ := cmd.Flags().GetString("grpc")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			cfg := cfgpkg.Default()
			if configPath != "" {
				loaded, err := cfgpkg.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			cfgpkg.FromEnv(&cfg)
			if nodeName != "" {
				cfg.NodeName = nodeName
			}
			if peers != "" {
				cfg.Peers = strings.Split(peers, ",")
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				ClientAddr:    clientAddr,
				GRPCAddr:      grpcAddr,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	startCmd.Flags().String("config", "", "Config file path (JSON or YAML)")
	startCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	startCmd.Flags().String("node-name", "", "Cluster node name (default broker@<hostname>)")
	startCmd.Flags().String("peers", "", "Comma-separated peer node names")
	startCmd.Flags().String("client", "", "Client listener address (default :5672)")
	startCmd.Flags().String("grpc", "", "gRPC health listen address (default :15673)")
	startCmd.Flags().String("http", "", "Admin HTTP listen address (default :15672)")
	startCmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
	startCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms (default 5)")
	startCmd.Flags().String("log-level", os.Getenv("BROKER_LOG_LEVEL"), "Log level: debug|info|warn|error")
	startCmd.Flags().String("log-format", os.Getenv("BROKER_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(startCmd)
	return serverCmd
}

func newMaintenanceCommand() *cobra.Command {
	maintCmd := &cobra.Command{Use: "maintenance", Short: "Maintenance mode operations"}

	drainCmd := &cobra.Command{
		Use:   "drain",
		Short: "Put the node into maintenance mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/v1/maintenance/drain", nil)
		},
	}
	reviveCmd := &cobra.Command{
		Use:   "revive",
		Short: "Take the node out of maintenance mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/v1/maintenance/revive", nil)
		},
	}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show maintenance status",
		RunE: func(cmd *cobra.Command, args []string) error {
			node, _ := cmd.Flags().GetString("node")
			consistent, _ := cmd.Flags().GetBool("consistent")
			q := url.Values{}
			if node != "" {
				q.Set("node", node)
			}
			if consistent {
				q.Set("consistent", "true")
			}
			path := "/v1/maintenance/status"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			return getJSON(path)
		},
	}
	statusCmd.Flags().String("node", "", "Node to query (default the local node)")
	statusCmd.Flags().Bool("consistent", false, "Use a consistent read instead of a local one")

	maintCmd.AddCommand(drainCmd, reviveCmd, statusCmd)
	return maintCmd
}

func newQueueCommand() *cobra.Command {
	queueCmd := &cobra.Command{Use: "queue", Short: "Queue operations"}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Declare a queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			kind, _ := cmd.Flags().GetString("kind")
			return postJSON("/v1/queues/create", map[string]string{"name": name, "kind": kind})
		},
	}
	createCmd.Flags().String("name", "", "Queue name")
	createCmd.Flags().String("kind", "classic", "Queue kind: classic|quorum")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/v1/queues")
		},
	}

	queueCmd.AddCommand(createCmd, listCmd)
	return queueCmd
}

func postJSON(path string, body any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	resp, err := http.Post(apiURL()+path, "application/json", reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func getJSON(path string) error {
	resp, err := http.Get(apiURL() + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Println("status:", resp.Status)
	if len(bytes.TrimSpace(b)) > 0 {
		fmt.Println(string(bytes.TrimSpace(b)))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return nil
}

func apiURL() string {
	if v := os.Getenv("BROKER_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:15672"
}

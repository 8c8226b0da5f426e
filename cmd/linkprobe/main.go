// linkprobe connects to a server and streams state transitions and
// messages to the console.
// Usage: go run ./cmd/linkprobe --config configs/client.local.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hublink/hublink-go/internal/config"
	"github.com/hublink/hublink-go/internal/connection"
	"github.com/hublink/hublink-go/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/client.example.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// Load config
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	conn, err := connection.New(cfg, connection.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create connection", "error", err)
		os.Exit(1)
	}

	for _, state := range []string{
		connection.EventConnecting,
		connection.EventConnected,
		connection.EventDisconnected,
		connection.EventFailed,
		connection.EventClosing,
	} {
		name := state
		conn.On(name, func(ev connection.Event) {
			if ev.Err != nil {
				logger.Info("state changed", "state", name, "error", ev.Err)
				return
			}
			logger.Info("state changed", "state", name)
		})
	}

	conn.On(connection.EventError, func(ev connection.Event) {
		logger.Warn("connection error", "error", ev.Err)
	})

	conn.On(connection.EventMessage, func(ev connection.Event) {
		if *verbose {
			data, _ := json.MarshalIndent(ev.Envelope, "", "  ")
			fmt.Println(string(data))
			return
		}
		logger.Info("message received", "action", ev.Envelope.Action())
	})

	closed := make(chan struct{})
	conn.On(connection.EventClosed, func(connection.Event) {
		close(closed)
	})

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")
	if err := conn.Close(); err != nil {
		logger.Error("close failed", "error", err)
		os.Exit(1)
	}
	<-closed
}

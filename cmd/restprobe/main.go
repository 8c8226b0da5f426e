// restprobe issues one authenticated GET against the companion REST
// endpoint and prints the response body.
// Usage: go run ./cmd/restprobe --config configs/client.local.yaml --path /status
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hublink/hublink-go/internal/config"
	"github.com/hublink/hublink-go/internal/rest"
	"github.com/hublink/hublink-go/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/client.example.yaml", "path to config file")
	path := flag.String("path", "", "endpoint path to request")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := rest.NewFromConfig(cfg, rest.WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := client.Get(ctx, *path)
	if err != nil {
		logger.Error("request failed", "error", err)
		os.Exit(1)
	}

	// Pretty-print when the body is JSON; otherwise pass it through.
	var pretty json.RawMessage
	if json.Unmarshal(body, &pretty) == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Println(string(body))
}

// Package main is the entry point for the taskman CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskman/internal/backend/httpapi"
	"taskman/internal/cli"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/logging"
	"taskman/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return httpapi.New(cfg.BaseURL,
			httpapi.WithTimeout(cfg.Timeout),
			httpapi.WithLogger(logging.FromContext(ctx)),
		)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

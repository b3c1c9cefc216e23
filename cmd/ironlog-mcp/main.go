package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/backend"
	"github.com/claude/ironlog/internal/config"
	ironmcp "github.com/claude/ironlog/internal/mcp"
	"github.com/claude/ironlog/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrationsDir := flag.String("migrations", "migrations", "path to SQL migrations (postgres only)")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("IronLog MCP starting", "version", Version)

	loc, err := cfg.Session.Location()
	if err != nil {
		log.Error("invalid session timezone", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := backend.Open(ctx, cfg.Database, *migrationsDir, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	engine := session.New(store, log, session.WithLocation(loc))
	if err := engine.Load(ctx); err != nil {
		log.Warn("initial plan load failed", "error", err)
	}

	if err := server.ServeStdio(ironmcp.New(engine, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		closeStore()
		os.Exit(1)
	}
}

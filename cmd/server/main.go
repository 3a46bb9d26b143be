// Package main is the entry point for the educational resource hub server.
//
// The main package stays minimal — its job is to:
// 1. Read configuration (from env vars)
// 2. Create dependencies (logger, AI client)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/service, ...), which keeps the components testable.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lgsobral/eduhub/internal/ai"
	"github.com/lgsobral/eduhub/internal/server"
)

func main() {
	// === 1. LOGGING ===
	// Structured text logs to stdout. Debug level is fine for a service
	// this size; switch to Info in production to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. CONFIGURATION ===
	// Five env vars; for a config surface this small, reading them here
	// beats pulling in a config library.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH is the datastore connection string — for SQLite, a file
	// path. Example production override: DB_PATH=/var/lib/eduhub/prod.db
	dbPath := "data/eduhub.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// CORS_ORIGINS is a comma-separated list of allowed frontend
	// origins. Defaults cover the usual local dev servers.
	corsOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if envOrigins := os.Getenv("CORS_ORIGINS"); envOrigins != "" {
		corsOrigins = corsOrigins[:0]
		for _, origin := range strings.Split(envOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	// === 3. AI CLIENT ===
	// The Gemini key is optional: without it the server still starts,
	// wired with the deterministic offline client, so the whole app is
	// usable in demo mode. With a key, Smart Assist talks to the real
	// model (GEMINI_MODEL overrides the default model id).
	var aiClient ai.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := ai.NewGemini(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			logger.Error("failed to create Gemini client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		aiClient = client
	} else {
		logger.Warn("GEMINI_API_KEY not set — Smart Assist runs in offline demo mode")
		aiClient = ai.Offline{}
	}

	// === 4. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:        port,
		DBPath:      dbPath,
		CORSOrigins: corsOrigins,
	}

	srv, err := server.New(cfg, logger, aiClient)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

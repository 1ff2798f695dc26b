// Package main is the entry point for the SheetPress server. It loads
// configuration, authorizes the Google Sheets client, wires up the stores
// and authentication manager, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"sheetpress/internal/auth"
	"sheetpress/internal/config"
	"sheetpress/internal/handlers"
	"sheetpress/internal/router"
	"sheetpress/internal/sheets"
	"sheetpress/internal/store"
)

func main() {
	// Structured logger with color when attached to a terminal.
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables. Missing spreadsheet
	// credentials or the signing secret abort startup here.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"posts_tab", cfg.PostsTab,
		"admins_tab", cfg.AdminsTab,
	)

	ctx := context.Background()

	// Authorize the Sheets client once; it is shared for the process
	// lifetime and handles its own token refresh.
	client, err := sheets.NewGoogleClient(ctx, cfg.SheetID, cfg.ServiceAccountMail, cfg.ServiceAccountKey)
	if err != nil {
		slog.Error("failed to initialize sheets client", "error", err)
		os.Exit(1)
	}

	postStore := store.NewPostStore(client, cfg.PostsTab)
	adminStore := store.NewAdminStore(client, cfg.AdminsTab)

	// Bootstrap an initial admin if the admins tab has no active account.
	if err := store.SeedAdmin(ctx, adminStore, cfg.AdminSeedEmail, cfg.AdminSeedPassword); err != nil {
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	manager := auth.NewManager(adminStore, cfg.SessionSecret, secureCookies)

	authHandlers := handlers.NewAuth(manager)
	postHandlers := handlers.NewPosts(postStore)

	r := router.New(manager, authHandlers, postHandlers)

	// Every repository call re-reads the full sheet over the network, so
	// the write timeout is generous.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

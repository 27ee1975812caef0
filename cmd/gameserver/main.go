package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/openrealm/internal/config"
	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/db"
	"github.com/udisondev/openrealm/internal/game/itemhandler"
	"github.com/udisondev/openrealm/internal/gateway"
	"github.com/udisondev/openrealm/internal/world"
)

const GameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := GameConfigPath
	if p := os.Getenv("OPENREALM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("openrealm server starting", "log_level", cfg.LogLevel)

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// Initialize item handler registry
	itemhandler.Init()
	slog.Info("item handlers initialized")

	// Create repositories
	templates := data.Templates{}
	charRepo := db.NewCharacterRepository(database.Pool())
	itemRepo := db.NewItemRepository(database.Pool(), templates)

	// Continue item object IDs past everything already persisted
	ids := world.IDGenerator()
	maxID, err := itemRepo.MaxObjectID(ctx)
	if err != nil {
		return fmt.Errorf("reading max item object id: %w", err)
	}
	ids.EnsureItemFloor(maxID)

	hub := gateway.NewHub()
	ground := world.NewGround()
	server := gateway.NewServer(hub, ground, ids, templates, itemRepo, charRepo)

	addr := net.JoinHostPort(cfg.BindAddress, strconv.Itoa(cfg.Port))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting gateway", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("gateway: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.SaveAll(shutdownCtx)
		return httpServer.Shutdown(shutdownCtx)
	})

	// Periodic inventory persistence
	g.Go(func() error {
		interval := time.Duration(cfg.PersistInterval) * time.Second
		if interval <= 0 {
			interval = time.Minute
		}
		slog.Info("starting persist loop", "interval", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				server.SaveAll(gctx)
			}
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

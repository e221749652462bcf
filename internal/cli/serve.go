package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conquergate/conquergate/internal/dependencies/clock"
	"github.com/conquergate/conquergate/internal/dependencies/random"
	"github.com/conquergate/conquergate/internal/gateway"
	"github.com/conquergate/conquergate/internal/server"
	"github.com/conquergate/conquergate/internal/services/account"
	"github.com/conquergate/conquergate/internal/storage"
	"github.com/conquergate/conquergate/internal/storage/memory"
	redisstorage "github.com/conquergate/conquergate/internal/storage/redis"
)

func newServeCmd() *cobra.Command {
	cfg := DefaultCLIConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run both gateways",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.AuthPort, "auth-port", cfg.AuthPort, "Authentication gateway port (env: CONQUERGATE_AUTH_PORT)")
	cmd.Flags().IntVar(&cfg.GamePort, "game-port", cfg.GamePort, "Session gateway port (env: CONQUERGATE_GAME_PORT)")
	cmd.Flags().StringVar(&cfg.PublicAddr, "public-addr", cfg.PublicAddr, "Session gateway address sent to clients (env: CONQUERGATE_PUBLIC_ADDR)")
	cmd.Flags().StringVar(&cfg.ServerName, "server-name", cfg.ServerName, "Server name clients must target (env: CONQUERGATE_SERVER_NAME)")
	cmd.Flags().IntVar(&cfg.StatusPort, "status-port", cfg.StatusPort, "HTTP status endpoint port, 0 disables (env: CONQUERGATE_STATUS_PORT)")
	cmd.Flags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: CONQUERGATE_STORAGE)")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL when storage is redis (env: CONQUERGATE_REDIS_URL)")

	return cmd
}

func runServe(cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	serverCfg := server.DefaultConfig()
	serverCfg.Auth.Port = cfg.AuthPort
	serverCfg.Auth.RedirectAddr = cfg.PublicAddr
	serverCfg.Auth.RedirectPort = cfg.GamePort
	serverCfg.Session.Port = cfg.GamePort
	serverCfg.Account.ServerName = cfg.ServerName
	serverCfg.StatusPort = cfg.StatusPort

	srv := server.New(store, clock.New(), random.New(), gateway.Handlers{}, serverCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.String("error", err.Error()))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")

	return srv.Shutdown(context.Background())
}

// openStorage builds the configured storage backend and a close func
func openStorage(cfg *Config) (storage.Storage, func(), error) {
	switch cfg.StorageType {
	case StorageTypeMemory:
		return memory.New(), func() {}, nil
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("redis storage: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, errors.New("invalid storage type: must be 'memory' or 'redis'")
	}
}

// accountServiceFor builds an account service for offline CLI commands
func accountServiceFor(cfg *Config, store storage.Storage, logger *slog.Logger) *account.Service {
	acctCfg := account.DefaultConfig()
	acctCfg.ServerName = cfg.ServerName
	return account.New(store, clock.New(), acctCfg, logger)
}

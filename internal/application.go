package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/config"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/repository"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-dashboard/transport/rest"
	"github.com/rocketscienceinc/tictactoe-dashboard/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrModuleNotFound = errors.New("chain module address is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if conf.Chain.ModuleAddress == "" {
		return ErrModuleNotFound
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.SnapshotTTL)
	chainClient := chain.NewClient(logger, conf.Chain)
	gameUseCase := usecase.NewGameManager(logger, conf.Chain, chainClient, gameRepo)

	group, ctx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		if httpErr := rest.New(logger, gameUseCase, conf.Chain).Start(ctx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}

		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)

		if wsErr := websocket.New(logger, gameUseCase).Start(ctx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/config"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	QueryGame(ctx context.Context, owner string) (*entity.GameView, error)
	LastKnownGame(ctx context.Context, owner string) (*entity.GameView, error)
	GameExists(ctx context.Context, owner string) (bool, error)
	Messages() *chain.Messages
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	chain  config.Chain
}

func New(logger *slog.Logger, uGame uGame, chainConf config.Chain) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
		chain:  chainConf,
	}
}

// Handler - returns the dashboard API routes.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /chain", that.handleChainInfo)
	mux.HandleFunc("GET /games/{owner}", that.handleGetGame)
	mux.HandleFunc("GET /games/{owner}/exists", that.handleGameExists)
	mux.HandleFunc("POST /games", that.handleCreateGame)
	mux.HandleFunc("POST /games/{owner}/moves", that.handleMakeMove)

	return mux
}

// Start - serves the API until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

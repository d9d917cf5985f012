package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/tictactoe"
)

// handleWatch - streams dashboard updates of one game until it finishes or the client leaves.
func (that *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	viewer := r.URL.Query().Get("viewer")

	log := that.logger.With("method", "handleWatch", "owner", owner)

	if !address.IsValidInput(owner) {
		http.Error(w, apperror.ErrInvalidAddress.Error(), http.StatusBadRequest)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// the client never sends anything; reading only notices when it goes away
	go func() {
		defer cancel()

		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	log.Info("WebSocket connection established")

	var last tictactoe.Dashboard

	err = that.uGame.Watch(ctx, owner, func(game *entity.GameView) {
		last = tictactoe.Describe(game, viewer)

		if err := sendMessage(conn, actionGameUpdate, last); err != nil {
			log.Error("failed to send game update", "error", err)
			cancel()
		}
	})

	switch {
	case errors.Is(err, context.Canceled):
		log.Info("watch stopped")
		return
	case err != nil:
		log.Warn("watch failed", "error", err)

		if err = sendError(conn, err); err != nil {
			log.Error("failed to send error", "error", err)
		}
	default:
		if err = sendMessage(conn, actionGameFinished, last); err != nil {
			log.Error("failed to send game result", "error", err)
		}
	}

	closeNormally(conn, "watch ended")
}

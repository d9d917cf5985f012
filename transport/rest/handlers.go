package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/tictactoe"
)

const maxRequestBody = 1 << 16

type chainInfoResponse struct {
	ChainID       string `json:"chain_id"`
	RESTURL       string `json:"rest_url"`
	ModuleAddress string `json:"module_address"`
	ModuleName    string `json:"module_name"`
	GasPrices     string `json:"gas_prices"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type createGameRequest struct {
	Sender  string `json:"sender"`
	PlayerO string `json:"player_o"`
}

type makeMoveRequest struct {
	Sender   string `json:"sender"`
	Position *int   `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleChainInfo(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, chainInfoResponse{
		ChainID:       that.chain.ChainID,
		RESTURL:       that.chain.RESTURL,
		ModuleAddress: that.chain.ModuleAddress,
		ModuleName:    that.chain.ModuleName,
		GasPrices:     that.chain.GasPrices,
	})
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetGame")
	ctx := r.Context()

	owner := r.PathValue("owner")
	if !address.IsValidInput(owner) {
		that.writeError(w, http.StatusBadRequest, apperror.ErrInvalidAddress)
		return
	}

	viewer := r.URL.Query().Get("viewer")

	game, err := that.uGame.QueryGame(ctx, owner)
	if err == nil {
		that.writeJSON(w, http.StatusOK, tictactoe.Describe(game, viewer))
		return
	}

	if status, ok := statusFor(err); ok {
		that.writeError(w, status, err)
		return
	}

	log.Error("failed to query game", "owner", owner, "error", err)

	cached, cacheErr := that.uGame.LastKnownGame(ctx, owner)
	if cacheErr != nil {
		that.writeError(w, http.StatusBadGateway, err)
		return
	}

	dashboard := tictactoe.Describe(cached, viewer)
	dashboard.Stale = true
	that.writeJSON(w, http.StatusOK, dashboard)
}

func (that *Server) handleGameExists(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGameExists")

	owner := r.PathValue("owner")
	if !address.IsValidInput(owner) {
		that.writeError(w, http.StatusBadRequest, apperror.ErrInvalidAddress)
		return
	}

	exists, err := that.uGame.GameExists(r.Context(), owner)
	if err != nil {
		if status, ok := statusFor(err); ok {
			that.writeError(w, status, err)
			return
		}

		log.Error("failed to check game", "owner", owner, "error", err)
		that.writeError(w, http.StatusBadGateway, err)
		return
	}

	that.writeJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if !address.IsValidInput(req.Sender) || !address.IsValidInput(req.PlayerO) {
		that.writeError(w, http.StatusBadRequest, apperror.ErrInvalidAddress)
		return
	}

	msg, err := that.uGame.Messages().CreateGame(req.Sender, req.PlayerO)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.writeJSON(w, http.StatusOK, msg)
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")

	var req makeMoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if !address.IsValidInput(req.Sender) || !address.IsValidInput(owner) {
		that.writeError(w, http.StatusBadRequest, apperror.ErrInvalidAddress)
		return
	}

	if req.Position == nil {
		that.writeError(w, http.StatusBadRequest, apperror.ErrInvalidPosition)
		return
	}

	msg, err := that.uGame.Messages().MakeMove(req.Sender, owner, *req.Position)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.writeJSON(w, http.StatusOK, msg)
}

// statusFor - maps errors the caller can act on to a status code.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, apperror.ErrDecode), errors.Is(err, apperror.ErrInvalidPosition):
		return http.StatusBadRequest, true
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, chain.ErrRequestRejected):
		return http.StatusNotFound, true
	case errors.Is(err, apperror.ErrMalformedGameState):
		return http.StatusBadGateway, true
	default:
		return 0, false
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/config"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/tictactoe"
)

const (
	playerX = "0x1"
	playerO = "0x2"
)

type mockGame struct {
	mock.Mock
	messages *chain.Messages
}

func (m *mockGame) QueryGame(ctx context.Context, owner string) (*entity.GameView, error) {
	ret := m.Called(ctx, owner)

	game, _ := ret.Get(0).(*entity.GameView)

	return game, ret.Error(1)
}

func (m *mockGame) LastKnownGame(ctx context.Context, owner string) (*entity.GameView, error) {
	ret := m.Called(ctx, owner)

	game, _ := ret.Get(0).(*entity.GameView)

	return game, ret.Error(1)
}

func (m *mockGame) GameExists(ctx context.Context, owner string) (bool, error) {
	ret := m.Called(ctx, owner)

	return ret.Bool(0), ret.Error(1)
}

func (m *mockGame) Messages() *chain.Messages {
	return m.messages
}

func newTestServer(t *testing.T) (*httptest.Server, *mockGame) {
	t.Helper()

	conf := config.Chain{
		RESTURL:       "https://rest.testnet.initia.xyz",
		ChainID:       "initiation-2",
		ModuleAddress: "0xa074bebd5af4f6d50750ad57d334bd980b23569d",
		ModuleName:    "tictactoe",
		GasPrices:     "0.015uinit",
	}

	game := &mockGame{messages: chain.NewMessages(conf.ModuleAddress, conf.ModuleName)}
	t.Cleanup(func() { game.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(logger, game, conf).Handler())
	t.Cleanup(srv.Close)

	return srv, game
}

func activeGame() *entity.GameView {
	return &entity.GameView{
		Board:       entity.Board{entity.CellX, entity.CellEmpty, entity.CellEmpty, entity.CellEmpty, entity.CellO},
		PlayerX:     playerX,
		PlayerO:     playerO,
		CurrentTurn: entity.CellX,
		Status:      entity.StatusActive,
		MoveCount:   2,
	}
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestPing(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestChainInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/chain")
	require.NoError(t, err)
	defer resp.Body.Close()

	info := decodeBody[chainInfoResponse](t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "initiation-2", info.ChainID)
	assert.Equal(t, "tictactoe", info.ModuleName)
	assert.Equal(t, "0.015uinit", info.GasPrices)
}

func TestGetGame(t *testing.T) {
	t.Run("Viewer sees the dashboard for their turn", func(t *testing.T) {
		// Given
		srv, game := newTestServer(t)
		game.On("QueryGame", mock.Anything, playerX).Return(activeGame(), nil).Once()

		// When
		resp, err := http.Get(srv.URL + "/games/" + playerX + "?viewer=" + playerX)
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		dashboard := decodeBody[tictactoe.Dashboard](t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Active", dashboard.StatusText)
		assert.True(t, dashboard.YourTurn)
		assert.True(t, dashboard.ViewerIsX)
		assert.Equal(t, entity.SymbolX, dashboard.ViewerSymbol)
		assert.False(t, dashboard.Stale)
	})

	t.Run("Invalid owner is rejected before querying", func(t *testing.T) {
		// Given
		srv, _ := newTestServer(t)

		// When
		resp, err := http.Get(srv.URL + "/games/bob")
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Errors map to status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{err: apperror.ErrGameNotFound, code: http.StatusNotFound},
			{err: fmt.Errorf("%w: 400 EGAME_NOT_FOUND", chain.ErrRequestRejected), code: http.StatusNotFound},
			{err: fmt.Errorf("%w: bad hex", apperror.ErrDecode), code: http.StatusBadRequest},
			{err: apperror.ErrMalformedGameState, code: http.StatusBadGateway},
		}

		for _, tc := range cases {
			// Given
			srv, game := newTestServer(t)
			game.On("QueryGame", mock.Anything, playerX).Return(nil, tc.err).Once()

			// When
			resp, err := http.Get(srv.URL + "/games/" + playerX)
			require.NoError(t, err)
			resp.Body.Close()

			// Then
			assert.Equal(t, tc.code, resp.StatusCode, tc.err.Error())
		}
	})

	t.Run("Chain outage falls back to the cached snapshot", func(t *testing.T) {
		// Given
		srv, game := newTestServer(t)
		game.On("QueryGame", mock.Anything, playerX).Return(nil, errors.New("rpc down")).Once()
		game.On("LastKnownGame", mock.Anything, playerX).Return(activeGame(), nil).Once()

		// When
		resp, err := http.Get(srv.URL + "/games/" + playerX + "?viewer=" + playerO)
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		dashboard := decodeBody[tictactoe.Dashboard](t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, dashboard.Stale)
		assert.True(t, dashboard.ViewerIsO)
		assert.False(t, dashboard.YourTurn)
	})

	t.Run("Chain outage without a snapshot is a bad gateway", func(t *testing.T) {
		// Given
		srv, game := newTestServer(t)
		game.On("QueryGame", mock.Anything, playerX).Return(nil, errors.New("rpc down")).Once()
		game.On("LastKnownGame", mock.Anything, playerX).Return(nil, apperror.ErrGameNotFound).Once()

		// When
		resp, err := http.Get(srv.URL + "/games/" + playerX)
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		body := decodeBody[errorResponse](t, resp)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "rpc down", body.Error)
	})
}

func TestGameExists(t *testing.T) {
	t.Run("Reports the module answer", func(t *testing.T) {
		srv, game := newTestServer(t)
		game.On("GameExists", mock.Anything, playerX).Return(true, nil).Once()

		resp, err := http.Get(srv.URL + "/games/" + playerX + "/exists")
		require.NoError(t, err)
		defer resp.Body.Close()

		body := decodeBody[existsResponse](t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, body.Exists)
	})

	t.Run("Rejected query is not found", func(t *testing.T) {
		srv, game := newTestServer(t)
		game.On("GameExists", mock.Anything, playerX).
			Return(false, fmt.Errorf("%w: 400 aborted", chain.ErrRequestRejected)).Once()

		resp, err := http.Get(srv.URL + "/games/" + playerX + "/exists")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Transport failure is a bad gateway", func(t *testing.T) {
		srv, game := newTestServer(t)
		game.On("GameExists", mock.Anything, playerX).Return(false, errors.New("rpc down")).Once()

		resp, err := http.Get(srv.URL + "/games/" + playerX + "/exists")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestCreateGame(t *testing.T) {
	t.Run("Returns the unsigned create_game message", func(t *testing.T) {
		// Given
		srv, _ := newTestServer(t)
		body := `{"sender":"0x1","player_o":"0x2"}`

		// When
		resp, err := http.Post(srv.URL+"/games", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		msg := decodeBody[chain.EncodeObject](t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, chain.MsgExecuteTypeURL, msg.TypeURL)
		assert.Equal(t, chain.FunctionCreateGame, msg.Value.FunctionName)
		assert.Equal(t, playerX, msg.Value.Sender)
		assert.Len(t, msg.Value.Args, 1)
	})

	t.Run("Opponent that is not an address is rejected", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Post(srv.URL+"/games", "application/json", strings.NewReader(`{"sender":"0x1","player_o":"bob"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Broken body is rejected", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Post(srv.URL+"/games", "application/json", strings.NewReader(`{`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestMakeMove(t *testing.T) {
	t.Run("Returns the unsigned make_move message", func(t *testing.T) {
		// Given
		srv, _ := newTestServer(t)

		// When
		resp, err := http.Post(srv.URL+"/games/"+playerX+"/moves", "application/json",
			strings.NewReader(`{"sender":"0x2","position":4}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then
		msg := decodeBody[chain.EncodeObject](t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, chain.FunctionMakeMove, msg.Value.FunctionName)
		require.Len(t, msg.Value.Args, 2)
		assert.Equal(t, "BA==", msg.Value.Args[1])
	})

	t.Run("Position outside the board is rejected", func(t *testing.T) {
		for _, body := range []string{`{"sender":"0x2","position":9}`, `{"sender":"0x2","position":-1}`, `{"sender":"0x2"}`} {
			srv, _ := newTestServer(t)

			resp, err := http.Post(srv.URL+"/games/"+playerX+"/moves", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		}
	})
}

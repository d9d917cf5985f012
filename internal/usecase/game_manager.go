// Package usecase reads tictactoe games from the chain and follows them while they are played.
// Connect, CreateGame and MakeMove are for embedders that hold a Wallet in-process; the servers
// only hand unsigned messages to the browser wallet.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/config"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/tictactoe"
)

type chainClient interface {
	View(ctx context.Context, module, function string, typeArgs, args []string) (json.RawMessage, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, owner string, game *entity.GameView) error
	GetByOwner(ctx context.Context, owner string) (*entity.GameView, error)
}

// Wallet is the connected user's wallet. It signs and broadcasts transactions; this package never holds keys.
type Wallet interface {
	Address() string
	IsConnected() bool
	OpenConnect(ctx context.Context) error
	RequestTxBlock(ctx context.Context, messages []chain.EncodeObject) (string, error)
	WaitForTxConfirmation(ctx context.Context, txHash string, timeout time.Duration) error
}

type GameManager struct {
	logger   *slog.Logger
	chain    chainClient
	gameRepo gameRepo
	messages *chain.Messages

	moduleName   string
	pollInterval time.Duration
	txTimeout    time.Duration
}

const defaultPollInterval = 3 * time.Second

func NewGameManager(logger *slog.Logger, conf config.Chain, chainClient chainClient, gameRepo gameRepo) *GameManager {
	if conf.PollInterval <= 0 {
		conf.PollInterval = defaultPollInterval
	}

	return &GameManager{
		logger:   logger.With("component", "game-manager"),
		chain:    chainClient,
		gameRepo: gameRepo,
		messages: chain.NewMessages(conf.ModuleAddress, conf.ModuleName),

		moduleName:   conf.ModuleName,
		pollInterval: conf.PollInterval,
		txTimeout:    conf.TxTimeout,
	}
}

// Messages - returns the builder of unsigned tictactoe messages.
func (that *GameManager) Messages() *chain.Messages {
	return that.messages
}

// GameExists - asks the module whether owner has a game.
func (that *GameManager) GameExists(ctx context.Context, owner string) (bool, error) {
	data, err := that.view(ctx, chain.FunctionGameExists, owner)
	if err != nil {
		return false, err
	}

	if data == nil {
		return false, nil
	}

	var exists bool
	if err = json.Unmarshal(data, &exists); err != nil {
		return false, fmt.Errorf("failed to unmarshal game_exists result: %w", err)
	}

	return exists, nil
}

// QueryGame - reads the game owned by owner and remembers the snapshot.
func (that *GameManager) QueryGame(ctx context.Context, owner string) (*entity.GameView, error) {
	log := that.logger.With("method", "QueryGame", "owner", owner)

	data, err := that.view(ctx, chain.FunctionViewGame, owner)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, apperror.ErrGameNotFound
	}

	raw, err := entity.ParseRawGame(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedGameState, err)
	}

	game, err := tictactoe.AssembleValidView(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, owner, &game); err != nil {
		log.Warn("failed to cache game snapshot", "error", err)
	}

	return &game, nil
}

// LastKnownGame - returns the last snapshot read for owner.
func (that *GameManager) LastKnownGame(ctx context.Context, owner string) (*entity.GameView, error) {
	game, err := that.gameRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached game: %w", err)
	}

	return game, nil
}

// Connect - opens the wallet connection when it is not open yet.
func (that *GameManager) Connect(ctx context.Context, wallet Wallet) error {
	if wallet.IsConnected() {
		return nil
	}

	if err := wallet.OpenConnect(ctx); err != nil {
		return fmt.Errorf("failed to connect wallet: %w", err)
	}

	if !wallet.IsConnected() {
		return apperror.ErrWalletNotConnected
	}

	return nil
}

// CreateGame - creates a game against playerO with the wallet owner as X and waits for the tx.
func (that *GameManager) CreateGame(ctx context.Context, wallet Wallet, playerO string) (string, error) {
	if !isConnected(wallet) {
		return "", apperror.ErrWalletNotConnected
	}

	msg, err := that.messages.CreateGame(wallet.Address(), playerO)
	if err != nil {
		return "", fmt.Errorf("failed to build create_game message: %w", err)
	}

	return that.submit(ctx, wallet, msg)
}

// MakeMove - writes the wallet owner's symbol to position in the game owned by owner and waits for the tx.
func (that *GameManager) MakeMove(ctx context.Context, wallet Wallet, owner string, position int) (string, error) {
	if !isConnected(wallet) {
		return "", apperror.ErrWalletNotConnected
	}

	if owner == "" {
		return "", apperror.ErrNoGameLoaded
	}

	msg, err := that.messages.MakeMove(wallet.Address(), owner, position)
	if err != nil {
		return "", fmt.Errorf("failed to build make_move message: %w", err)
	}

	return that.submit(ctx, wallet, msg)
}

// Watch - polls the game while it is active and calls onUpdate with every changed snapshot.
// It returns nil once the game is finished, or the context error when ctx ends first.
func (that *GameManager) Watch(ctx context.Context, owner string, onUpdate func(game *entity.GameView)) error {
	log := that.logger.With("method", "Watch", "owner", owner)

	ticker := time.NewTicker(that.pollInterval)
	defer ticker.Stop()

	var last *entity.GameView

	for {
		game, err := that.QueryGame(ctx, owner)

		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case isPermanent(err):
			return err
		case err != nil:
			log.Warn("failed to poll game", "error", err)
		default:
			if last == nil || *last != *game {
				onUpdate(game)
				last = game
			}

			if game.IsFinished() {
				log.Info("game finished", "status", game.Status.String())
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (that *GameManager) view(ctx context.Context, function, owner string) (json.RawMessage, error) {
	arg, err := address.EncodeForWire(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to encode game owner: %w", err)
	}

	data, err := that.chain.View(ctx, that.moduleName, function, nil, []string{arg})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", function, err)
	}

	return data, nil
}

func (that *GameManager) submit(ctx context.Context, wallet Wallet, msg chain.EncodeObject) (string, error) {
	log := that.logger.With("method", "submit", "function", msg.Value.FunctionName)

	txHash, err := wallet.RequestTxBlock(ctx, []chain.EncodeObject{msg})
	if err != nil {
		return "", fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	if err = wallet.WaitForTxConfirmation(ctx, txHash, that.txTimeout); err != nil {
		return "", fmt.Errorf("failed to confirm transaction %s: %w", txHash, err)
	}

	log.Info("transaction confirmed", "tx", txHash)

	return txHash, nil
}

func isConnected(wallet Wallet) bool {
	return wallet != nil && wallet.IsConnected() && wallet.Address() != ""
}

func isPermanent(err error) bool {
	return errors.Is(err, apperror.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrMalformedGameState) ||
		errors.Is(err, apperror.ErrDecode) ||
		errors.Is(err, chain.ErrRequestRejected)
}

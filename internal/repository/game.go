package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

// GameRepository keeps the last snapshot read from the chain for every game owner.
// The servers only write and read snapshots; DeleteByOwner is for embedders that evict them.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, owner string, game *entity.GameView) error
	GetByOwner(ctx context.Context, owner string) (*entity.GameView, error)
	DeleteByOwner(ctx context.Context, owner string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - snapshots expire after ttl, zero keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, owner string, game *entity.GameView) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	err = that.client.Set(ctx, gameKey(owner), gameJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByOwner(ctx context.Context, owner string) (*entity.GameView, error) {
	response, err := that.client.Get(ctx, gameKey(owner)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by owner: %w", err)
	}

	var existingGame entity.GameView
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByOwner(ctx context.Context, owner string) error {
	deleted, err := that.client.Del(ctx, gameKey(owner)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by owner: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}

// gameKey - keys by canonical owner so bech32 and hex lookups hit the same entry.
func gameKey(owner string) string {
	return "game:" + address.Canonicalize(owner)
}

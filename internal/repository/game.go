package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const gameKeyPrefix = "game:"

var (
	ErrGameNotFound = apperror.ErrGameNotFound
	ErrGameConflict = apperror.ErrGameConflict
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	CompareAndUpdate(ctx context.Context, game *entity.Game, movesBefore int) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - games are stored as JSON and expire ttl after their last update.
// A zero ttl keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

// CompareAndUpdate - saves game only if the stored copy still has movesBefore moves.
// A move saved by someone else in the meantime yields ErrGameConflict.
func (that *dbGame) CompareAndUpdate(ctx context.Context, game *entity.Game, movesBefore int) error {
	key := gameKeyPrefix + game.ID

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	update := func(tx *redis.Tx) error {
		stored, err := that.decode(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}

		if len(stored.Moves) != movesBefore {
			return ErrGameConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, that.ttl)
			return nil
		})

		return err
	}

	err = that.client.Watch(ctx, update, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return ErrGameConflict
	case errors.Is(err, ErrGameConflict), errors.Is(err, ErrGameNotFound):
		return err
	default:
		return fmt.Errorf("failed to update game: %w", err)
	}
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return that.decode(that.client.Get(ctx, gameKeyPrefix+id).Bytes())
}

func (that *dbGame) decode(response []byte, err error) (*entity.Game, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

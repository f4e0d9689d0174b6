package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	CompareAndUpdate(ctx context.Context, game *entity.Game, movesBefore int) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	NewGame(id string, humanFirst bool) (*entity.Game, error)
	PlayHuman(game *entity.Game, cell int) error
}

// GameManager loads games from storage, lets the controller play them and saves the result.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	controller gameController
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, humanFirst bool) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	game, err := that.controller.NewGame(uuid.NewString(), humanFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game created", "gameID", game.ID, "humanFirst", humanFirst, "humanMark", game.HumanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human's cell and the computer's reply, then stores the game.
// A rejected move returns the unchanged game together with the error. When another turn
// for the same game was saved first, nothing is stored and ErrGameConflict is returned.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	movesBefore := len(game.Moves)

	if err = that.controller.PlayHuman(game, cell); err != nil {
		log.Debug("turn rejected", "cell", cell, "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameRepo.CompareAndUpdate(ctx, game, movesBefore); err != nil {
		if errors.Is(err, apperror.ErrGameConflict) {
			log.Info("concurrent turn lost", "cell", cell)
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "result", game.Result(), "moves", game.Moves)
	}

	return game, nil
}

// DeleteGame - abandons a game before it expires.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

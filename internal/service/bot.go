package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	logger *slog.Logger
	opts   []minimax.Option
}

// NewBotService - the returned bot plays perfectly; opts tune the underlying search.
func NewBotService(logger *slog.Logger, opts ...minimax.Option) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		opts:   opts,
	}
}

// MakeTurn - searches the game's board for the computer's mark and plays the best cell.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	if game.Board.IsTerminal() {
		return minimax.NoMove, ErrNoAvailableMoves
	}

	engine := minimax.NewEngine(game.AIMark, that.opts...)

	cell, score := engine.Search(&game.Board, true)
	if cell == minimax.NoMove {
		return minimax.NoMove, ErrNoAvailableMoves
	}

	that.logger.Debug("move chosen",
		"gameID", game.ID, "mark", game.AIMark.String(), "cell", cell, "score", score, "nodes", engine.Nodes())

	if err := game.MakeTurn(game.AIMark, cell); err != nil {
		return minimax.NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

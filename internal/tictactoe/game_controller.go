package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type botService interface {
	MakeTurn(game *entity.Game) (int, error)
}

// GameController runs the turn order of a human-versus-computer game: after every
// human move that leaves the game going, the computer replies.
type GameController struct {
	bot botService
}

func NewGameController(bot botService) *GameController {
	return &GameController{
		bot: bot,
	}
}

// NewGame - starts a game. When the computer moves first its opening move is already played.
func (that *GameController) NewGame(id string, humanFirst bool) (*entity.Game, error) {
	game := entity.NewGame(id, humanFirst)

	if game.IsAITurn() {
		if _, err := that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed to make first turn: %w", err)
		}
	}

	return game, nil
}

// PlayHuman - plays the human's cell and, unless the game is over, the computer's reply.
// On error the game is unchanged and the human may try again.
func (that *GameController) PlayHuman(game *entity.Game, cell int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if !game.IsHumanTurn() {
		return apperror.ErrNotYourTurn
	}

	snapshot := *game
	snapshot.Moves = slices.Clone(game.Moves)

	if err := game.MakeTurn(game.HumanMark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if game.IsFinished() {
		return nil
	}

	if _, err := that.bot.MakeTurn(game); err != nil {
		*game = snapshot
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

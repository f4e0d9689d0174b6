package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type GameState string

const (
	StateHumanTurn GameState = "human_turn"
	StateAITurn    GameState = "ai_turn"
	StateWon       GameState = "won"
	StateDrawn     GameState = "drawn"
)

const (
	ResultHuman = "human"
	ResultAI    = "ai"
	ResultDraw  = "draw"
)

// Game is one human-versus-computer session. X always moves first, so the side that
// opens the game plays X.
type Game struct {
	ID        string    `json:"id"`
	Board     Board     `json:"board"`
	State     GameState `json:"state"`
	HumanMark Mark      `json:"human_mark"`
	AIMark    Mark      `json:"ai_mark"`
	Moves     []int     `json:"moves"`
}

func NewGame(id string, humanFirst bool) *Game {
	game := &Game{
		ID:    id,
		Moves: make([]int, 0, BoardSize),
	}

	if humanFirst {
		game.HumanMark, game.AIMark = PlayerX, PlayerO
		game.State = StateHumanTurn
	} else {
		game.HumanMark, game.AIMark = PlayerO, PlayerX
		game.State = StateAITurn
	}

	return game
}

// MakeTurn - plays mark at cell. The game is left unchanged when an error is returned.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if mark != that.TurnMark() {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.Board.ApplyMove(cell, mark) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Moves = append(that.Moves, cell)
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	switch {
	case that.Board.HasWinner():
		that.State = StateWon
	case that.Board.IsFull():
		that.State = StateDrawn
	case that.State == StateHumanTurn:
		that.State = StateAITurn
	case that.State == StateAITurn:
		that.State = StateHumanTurn
	}
}

// TurnMark - the mark expected to move next, Empty once the game is over.
func (that *Game) TurnMark() Mark {
	switch that.State {
	case StateHumanTurn:
		return that.HumanMark
	case StateAITurn:
		return that.AIMark
	default:
		return Empty
	}
}

func (that *Game) IsHumanTurn() bool {
	return that.State == StateHumanTurn
}

func (that *Game) IsAITurn() bool {
	return that.State == StateAITurn
}

func (that *Game) IsFinished() bool {
	return that.State == StateWon || that.State == StateDrawn
}

func (that *Game) ConfirmOngoingState() error {
	switch that.State {
	case StateHumanTurn, StateAITurn:
		return nil
	case StateWon, StateDrawn:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownStatus, that.State)
	}
}

// Result - who the game ended for, or "" while it is still going.
func (that *Game) Result() string {
	switch that.State {
	case StateWon:
		if that.Board.Winner == that.HumanMark {
			return ResultHuman
		}
		return ResultAI
	case StateDrawn:
		return ResultDraw
	default:
		return ""
	}
}

package console

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel() Model {
	bot := service.NewBotService(slog.New(slog.NewTextHandler(io.Discard, nil)), minimax.WithPruning(), minimax.WithMoveOrder(minimax.CenterFirst))
	return NewModel(tictactoe.NewGameController(bot))
}

func press(t *testing.T, model tea.Model, key string) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	m, ok := next.(Model)
	require.True(t, ok)

	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

type failingController struct{}

func (failingController) NewGame(string, bool) (*entity.Game, error) {
	return nil, errors.New("boom")
}

func (failingController) PlayHuman(*entity.Game, int) error {
	return nil
}

func TestModel_ChooseOrder(t *testing.T) {
	t.Run("Asks who goes first", func(t *testing.T) {
		model := newModel()

		assert.Nil(t, model.Init())
		assert.Contains(t, model.View(), "Do you want to go first? (y/n)")
		assert.Contains(t, model.View(), "| 0 | 1 | 2 |")
	})

	t.Run("Human goes first", func(t *testing.T) {
		// When: the player answers yes
		model, cmd := press(t, newModel(), "y")

		// Then: an empty game starts with the human as X
		assert.Nil(t, cmd)
		require.NotNil(t, model.Game())
		assert.Equal(t, entity.PlayerX, model.Game().HumanMark)
		assert.Empty(t, model.Game().Moves)
		assert.Contains(t, model.View(), "Your turn, you are 'X'!")
	})

	t.Run("Computer goes first", func(t *testing.T) {
		// When: the player answers no
		model, _ := press(t, newModel(), "n")

		// Then: the computer has already opened in the center
		require.NotNil(t, model.Game())
		assert.Equal(t, []int{4}, model.Game().Moves)
		assert.Contains(t, model.View(), "Computer placed an 'X' at position 4")
		assert.Contains(t, model.View(), "Your turn, you are 'O'!")
	})

	t.Run("Other keys are ignored", func(t *testing.T) {
		model, cmd := press(t, newModel(), "z")

		assert.Nil(t, cmd)
		assert.Nil(t, model.Game())
		assert.Contains(t, model.View(), "Do you want to go first?")
	})

	t.Run("Failure to start quits with the error", func(t *testing.T) {
		model, cmd := press(t, NewModel(failingController{}), "y")

		assert.True(t, isQuit(cmd))
		assert.Error(t, model.Err())
	})
}

func TestModel_Play(t *testing.T) {
	t.Run("Non-numeric input re-prompts", func(t *testing.T) {
		model, _ := press(t, newModel(), "y")

		model, cmd := press(t, model, "a")

		assert.Nil(t, cmd)
		assert.Empty(t, model.Game().Moves)
		assert.Contains(t, model.View(), msgInvalidInput)
	})

	t.Run("Out of range cell re-prompts", func(t *testing.T) {
		model, _ := press(t, newModel(), "y")

		model, _ = press(t, model, "9")

		assert.Empty(t, model.Game().Moves)
		assert.Contains(t, model.View(), msgInvalidMove)
	})

	t.Run("Occupied cell re-prompts", func(t *testing.T) {
		// Given: the computer holds the center
		model, _ := press(t, newModel(), "n")

		// When: the human picks the center
		model, _ = press(t, model, "4")

		// Then: the move is refused
		assert.Equal(t, []int{4}, model.Game().Moves)
		assert.Contains(t, model.View(), msgInvalidMove)
	})

	t.Run("Accepted move is answered by the computer", func(t *testing.T) {
		model, _ := press(t, newModel(), "y")

		model, _ = press(t, model, "0")

		// Then: the human move and the reply are both on the board
		require.Len(t, model.Game().Moves, 2)
		assert.Equal(t, entity.PlayerX, model.Game().Board.Cells[0])
		assert.Equal(t, entity.PlayerO, model.Game().Board.Cells[4])
		assert.Contains(t, model.View(), "Computer placed an 'O' at position 4")
	})
}

func TestModel_PlaysToTheEnd(t *testing.T) {
	// Given: a human that always takes the lowest free cell
	model, _ := press(t, newModel(), "y")

	for model.phase == phasePlaying {
		moves := model.Game().Board.AvailableMoves()
		require.NotEmpty(t, moves)

		model, _ = press(t, model, string(rune('0'+moves[0])))
	}

	// Then: the game ends without a human win and the result is shown
	assert.True(t, model.Game().IsFinished())
	assert.NotEqual(t, entity.ResultHuman, model.Game().Result())
	assert.Contains(t, model.View(), "Press any key to exit.")

	_, cmd := press(t, model, "x")
	assert.True(t, isQuit(cmd))
}

func TestModel_Quit(t *testing.T) {
	model := newModel()

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))

	_, cmd = press(t, model, "q")
	assert.True(t, isQuit(cmd))
}

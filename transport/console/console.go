package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run - plays one game in the terminal; it returns when the game is over, the player quits,
// or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, controller gameController, in io.Reader, out io.Writer) error {
	log := logger.With("component", "console")

	program := tea.NewProgram(NewModel(controller), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return nil
	}

	if model.Err() != nil {
		return model.Err()
	}

	if game := model.Game(); game != nil {
		log.Info("console game ended", "gameID", game.ID, "state", game.State, "result", game.Result(), "moves", game.Moves)
	}

	return nil
}

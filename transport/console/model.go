package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameController interface {
	NewGame(id string, humanFirst bool) (*entity.Game, error)
	PlayHuman(game *entity.Game, cell int) error
}

type phase int

const (
	phaseChooseOrder phase = iota
	phasePlaying
	phaseOver
)

const (
	msgInvalidInput = "Invalid input. Please enter a number."
	msgInvalidMove  = "Invalid move. Try again."
)

// Model is the terminal front end of one game: it asks who moves first, reads cells,
// and shows the board after every exchange.
type Model struct {
	controller gameController
	game       *entity.Game
	phase      phase
	notice     string
	err        error
}

func NewModel(controller gameController) Model {
	return Model{
		controller: controller,
	}
}

func (m Model) Game() *entity.Game {
	return m.game
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	}

	switch m.phase {
	case phaseChooseOrder:
		return m.chooseOrder(keyMsg.String())
	case phasePlaying:
		return m.play(keyMsg.String())
	default:
		return m, tea.Quit
	}
}

func (m Model) chooseOrder(key string) (tea.Model, tea.Cmd) {
	var humanFirst bool

	switch strings.ToLower(key) {
	case "y", "enter":
		humanFirst = true
	case "n":
		humanFirst = false
	default:
		return m, nil
	}

	game, err := m.controller.NewGame(uuid.NewString(), humanFirst)
	if err != nil {
		m.err = fmt.Errorf("failed to start game: %w", err)
		return m, tea.Quit
	}

	m.game = game
	m.phase = phasePlaying
	m.notice = ""
	if !humanFirst {
		m.notice = fmt.Sprintf("Computer placed an '%s' at position %d", game.AIMark, game.Moves[0])
	}

	return m, nil
}

func (m Model) play(key string) (tea.Model, tea.Cmd) {
	cell, err := strconv.Atoi(key)
	if err != nil {
		m.notice = msgInvalidInput
		return m, nil
	}

	moves := len(m.game.Moves)
	if err = m.controller.PlayHuman(m.game, cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied) {
			m.notice = msgInvalidMove
			return m, nil
		}

		m.err = err
		return m, tea.Quit
	}

	m.notice = ""
	if len(m.game.Moves) > moves+1 {
		last := m.game.Moves[len(m.game.Moves)-1]
		m.notice = fmt.Sprintf("Computer placed an '%s' at position %d", m.game.AIMark, last)
	}

	if m.game.IsFinished() {
		m.phase = phaseOver
	}

	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString("Welcome to Tic Tac Toe!\n")
	sb.WriteString(entity.CellNumbers())
	sb.WriteString("To play, enter a number corresponding to the position on the board.\n\n")

	switch m.phase {
	case phaseChooseOrder:
		sb.WriteString("Do you want to go first? (y/n): ")
		return sb.String()
	case phasePlaying, phaseOver:
		sb.WriteString(m.game.Board.String())
		sb.WriteString("\n")
	}

	if m.notice != "" {
		sb.WriteString(m.notice + "\n")
	}

	switch m.game.Result() {
	case entity.ResultHuman:
		sb.WriteString("You win!\n")
	case entity.ResultAI:
		sb.WriteString("Computer wins!\n")
	case entity.ResultDraw:
		sb.WriteString("It's a tie!\n")
	default:
		fmt.Fprintf(&sb, "Your turn, you are '%s'! (Enter position 0-8)\n", m.game.HumanMark)
	}

	if m.phase == phaseOver {
		sb.WriteString("Press any key to exit.\n")
	}

	return sb.String()
}

package entity

import "strings"

const BoardSize = 9

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row by row: row = index / 3, column = index % 3.
// Winner is set only by the move that completes a line.
type Board struct {
	Cells  [BoardSize]Mark `json:"cells"`
	Winner Mark            `json:"winner"`
}

// AvailableMoves - returns the empty cells in ascending index order.
func (that *Board) AvailableMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that.Cells {
		if cell == Empty {
			moves = append(moves, i)
		}
	}

	return moves
}

func (that *Board) EmptyCount() int {
	count := 0
	for _, cell := range that.Cells {
		if cell == Empty {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that *Board) HasWinner() bool {
	return that.Winner != Empty
}

// IsTerminal - the game on this board is over: someone won or no cell is left.
func (that *Board) IsTerminal() bool {
	return that.HasWinner() || that.IsFull()
}

// ApplyMove - places mark on an empty cell and records the winner if the move completes a line.
// It returns false and leaves the board untouched when the cell cannot take the mark.
func (that *Board) ApplyMove(index int, mark Mark) bool {
	if index < 0 || index >= BoardSize || mark == Empty {
		return false
	}

	if that.Cells[index] != Empty {
		return false
	}

	that.Cells[index] = mark
	if that.CheckWin(index, mark) {
		that.Winner = mark
	}

	return true
}

// RetractMove - undoes the most recent ApplyMove. Winner is a single value, so retractions
// must happen in reverse order of application.
func (that *Board) RetractMove(index int) {
	if index < 0 || index >= BoardSize {
		return
	}

	that.Cells[index] = Empty
	that.Winner = Empty
}

// CheckWin - reports whether the line(s) through index are filled with mark.
// Only the lines crossing the last placed cell can have been completed by it.
func (that *Board) CheckWin(index int, mark Mark) bool {
	row := index / 3 * 3
	if that.Cells[row] == mark && that.Cells[row+1] == mark && that.Cells[row+2] == mark {
		return true
	}

	col := index % 3
	if that.Cells[col] == mark && that.Cells[col+3] == mark && that.Cells[col+6] == mark {
		return true
	}

	// even indices are the corners and the center
	if index%2 == 0 {
		if that.Cells[0] == mark && that.Cells[4] == mark && that.Cells[8] == mark {
			return true
		}
		if that.Cells[2] == mark && that.Cells[4] == mark && that.Cells[6] == mark {
			return true
		}
	}

	return false
}

// String - renders the board as three rows of three cells.
func (that *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		sb.WriteString("|")
		for col := 0; col < 3; col++ {
			cell := that.Cells[row*3+col].String()
			if cell == "" {
				cell = " "
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CellNumbers - renders the index of every cell, the reference grid shown to players.
func CellNumbers() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		sb.WriteString("|")
		for col := 0; col < 3; col++ {
			sb.WriteString(" ")
			sb.WriteByte(byte('0' + row*3 + col))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

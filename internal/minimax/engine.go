// Package minimax implements exhaustive game-tree search for tic-tac-toe.
//
// The engine explores every continuation of a position on a single board, applying
// and retracting moves in place, and scores terminal positions by how many cells are
// still empty: an earlier win scores higher than a later one, an earlier loss lower.
package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// NoMove is returned as the move of a terminal position.
const NoMove = -1

var (
	// AscendingOrder tries cells by index, so ties go to the lowest index.
	AscendingOrder = [entity.BoardSize]int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	// CenterFirst tries the center, then the corners, then the edges.
	CenterFirst = [entity.BoardSize]int{4, 0, 2, 6, 8, 1, 3, 5, 7}
)

type Option func(*Engine)

// WithPruning - enables alpha-beta cutoffs. The chosen move and score are the same as
// without it.
func WithPruning() Option {
	return func(e *Engine) {
		e.pruning = true
	}
}

// WithMoveOrder - sets the order candidates are tried in; among equal scores the first
// candidate in this order wins.
func WithMoveOrder(order [entity.BoardSize]int) Option {
	return func(e *Engine) {
		e.order = order
	}
}

// Engine searches for the MAX mark. MIN is always the opponent of MAX.
type Engine struct {
	max, min entity.Mark
	pruning  bool
	order    [entity.BoardSize]int
	nodes    int
}

func NewEngine(maxMark entity.Mark, opts ...Option) *Engine {
	engine := &Engine{
		max:   maxMark,
		min:   maxMark.Opponent(),
		order: AscendingOrder,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

func (that *Engine) MaxMark() entity.Mark {
	return that.max
}

// Nodes - number of positions visited by the last Search.
func (that *Engine) Nodes() int {
	return that.nodes
}

// Search - returns the best move for the side to move and the score of the position for
// MAX. maximizing tells whether MAX is to move. A terminal position yields NoMove.
// The board is modified during the search and restored before returning.
func (that *Engine) Search(board *entity.Board, maximizing bool) (int, int) {
	that.nodes = 0

	if that.pruning {
		return that.alphaBeta(board, maximizing, math.MinInt, math.MaxInt)
	}

	return that.minimax(board, maximizing)
}

// Score - value of a terminal position for MAX. ok is false if the game is not over.
func (that *Engine) Score(board *entity.Board) (score int, ok bool) {
	switch {
	case board.Winner == that.max:
		return board.EmptyCount() + 1, true
	case board.Winner == that.min:
		return -(board.EmptyCount() + 1), true
	case board.IsFull():
		return 0, true
	default:
		return 0, false
	}
}

func (that *Engine) mover(maximizing bool) entity.Mark {
	if maximizing {
		return that.max
	}
	return that.min
}

func (that *Engine) minimax(board *entity.Board, maximizing bool) (int, int) {
	that.nodes++

	if score, ok := that.Score(board); ok {
		return NoMove, score
	}

	bestMove, bestScore := NoMove, math.MaxInt
	if maximizing {
		bestScore = math.MinInt
	}

	mark := that.mover(maximizing)
	for _, cell := range that.order {
		if !board.ApplyMove(cell, mark) {
			continue
		}
		_, score := that.minimax(board, !maximizing)
		board.RetractMove(cell)

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestMove, bestScore = cell, score
		}
	}

	return bestMove, bestScore
}

func (that *Engine) alphaBeta(board *entity.Board, maximizing bool, alpha, beta int) (int, int) {
	that.nodes++

	if score, ok := that.Score(board); ok {
		return NoMove, score
	}

	bestMove, bestScore := NoMove, math.MaxInt
	if maximizing {
		bestScore = math.MinInt
	}

	mark := that.mover(maximizing)
	for _, cell := range that.order {
		if !board.ApplyMove(cell, mark) {
			continue
		}
		_, score := that.alphaBeta(board, !maximizing, alpha, beta)
		board.RetractMove(cell)

		if maximizing {
			if score > bestScore {
				bestMove, bestScore = cell, score
			}
			alpha = max(alpha, bestScore)
		} else {
			if score < bestScore {
				bestMove, bestScore = cell, score
			}
			beta = min(beta, bestScore)
		}

		if alpha >= beta {
			break
		}
	}

	return bestMove, bestScore
}

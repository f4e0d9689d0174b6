package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrGameNotFound  = errors.New("game not found")
	ErrUnknownStatus = errors.New("unknown game state")
	ErrGameConflict  = errors.New("game was changed by another move")
)

package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// newGameRequest - the human moves first unless human_first is false.
type newGameRequest struct {
	HumanFirst *bool `json:"human_first"`
}

func (that newGameRequest) humanFirst() bool {
	return that.HumanFirst == nil || *that.HumanFirst
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	ID             string           `json:"id"`
	Board          [9]entity.Mark   `json:"board"`
	State          entity.GameState `json:"state"`
	HumanMark      entity.Mark      `json:"human_mark"`
	AIMark         entity.Mark      `json:"ai_mark"`
	Winner         entity.Mark      `json:"winner"`
	Result         string           `json:"result,omitempty"`
	Moves          []int            `json:"moves"`
	AvailableMoves []int            `json:"available_moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(game *entity.Game) gameResponse {
	available := []int{}
	if !game.IsFinished() {
		available = game.Board.AvailableMoves()
	}

	return gameResponse{
		ID:             game.ID,
		Board:          game.Board.Cells,
		State:          game.State,
		HumanMark:      game.HumanMark,
		AIMark:         game.AIMark,
		Winner:         game.Board.Winner,
		Result:         game.Result(),
		Moves:          game.Moves,
		AvailableMoves: available,
	}
}

func (that *Server) handlePing(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

func (that *Server) handleNewGame(ctx echo.Context) error {
	log := that.logger.With("method", "handleNewGame")

	var req newGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	game, err := that.gameUseCase.CreateGame(ctx.Request().Context(), req.humanFirst())
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newGameResponse(game))
}

func (that *Server) handleGetGame(ctx echo.Context) error {
	game, err := that.gameUseCase.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleTurn(ctx echo.Context) error {
	var req turnRequest
	if err := ctx.Bind(&req); err != nil || req.Cell == nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "cell is required"})
	}

	game, err := that.gameUseCase.MakeTurn(ctx.Request().Context(), ctx.Param("id"), *req.Cell)
	if err != nil {
		return that.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleDeleteGame(ctx echo.Context) error {
	if err := that.gameUseCase.DeleteGame(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// writeError - storage and other unexpected failures are logged and answered with a bare 500.
func (that *Server) writeError(ctx echo.Context, err error) error {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(status, errorResponse{Error: http.StatusText(status)})
	}

	return ctx.JSON(status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

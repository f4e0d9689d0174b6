package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var errCellRequired = errors.New("cell is required")

// dispatch - runs the handler of the message's action and replies with the game or the error.
// Only a failure to write the reply is returned.
func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "dispatch", "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		return that.send(conn, actionError, ResponsePayload{Error: "unknown action: " + msg.Action})
	}

	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return that.send(conn, msg.Action, ResponsePayload{Error: "invalid payload"})
		}
	}

	game, err := handler(ctx, payload)
	if err != nil {
		log.Debug("action failed", "error", err)
		return that.send(conn, msg.Action, ResponsePayload{Game: game, Error: clientError(err)})
	}

	return that.send(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleNewGame(ctx context.Context, payload RequestPayload) (*entity.Game, error) {
	humanFirst := payload.HumanFirst == nil || *payload.HumanFirst

	game, err := that.gameUseCase.CreateGame(ctx, humanFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload RequestPayload) (*entity.Game, error) {
	game, err := that.gameUseCase.GetGame(ctx, payload.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload RequestPayload) (*entity.Game, error) {
	if payload.Cell == nil {
		return nil, errCellRequired
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payload.GameID, *payload.Cell)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

// clientError - the message shown to the player; storage failures are not exposed.
func clientError(err error) string {
	for _, known := range []error{
		apperror.ErrInvalidCell,
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
		apperror.ErrGameNotFound,
		apperror.ErrGameConflict,
		errCellRequired,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

func (that *Server) send(conn *websocket.Conn, action string, payload ResponsePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

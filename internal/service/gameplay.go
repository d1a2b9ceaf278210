package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/repository"
	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

// GamePlayService - the move transaction and the polled state read.
type GamePlayService interface {
	MakeTurn(ctx context.Context, code, playerID string, cell int) (*entity.Room, error)
	GetState(ctx context.Context, code, playerID string) (*entity.Room, error)
}

type gamePlayService struct {
	logger *slog.Logger

	roomRepo repository.RoomRepository
	locker   *RoomLocker
}

func NewGamePlayService(logger *slog.Logger, roomRepo repository.RoomRepository, locker *RoomLocker) GamePlayService {
	return &gamePlayService{
		logger:   logger.With("component", "gameplay-service"),
		roomRepo: roomRepo,
		locker:   locker,
	}
}

// MakeTurn - validates and applies one move as a single transaction against the room.
//
// Checks run in a fixed order: room exists, game active, player seated,
// player's turn, cell on the board, cell free. The winner check runs before
// the fullness check, so a move that both wins and fills the board is a win.
func (that *gamePlayService) MakeTurn(ctx context.Context, code, playerID string, cell int) (*entity.Room, error) {
	code = strings.ToUpper(code)

	unlock := that.locker.Lock(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	if !room.IsActive() {
		return nil, apperror.ErrGameNotActive
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, apperror.ErrInvalidPlayer
	}

	if player.Symbol != room.Turn {
		return nil, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(room.Board) {
		return nil, apperror.ErrInvalidCell
	}

	if !tictactoe.IsLegalMove(room.Board, cell) {
		return nil, apperror.ErrCellOccupied
	}

	now := time.Now()
	room.Board[cell] = player.Symbol
	player.LastSeen = now

	switch {
	case tictactoe.Winner(room.Board) != entity.EmptyCell:
		room.Status = entity.StatusFinished
		room.Winner = player.Symbol
	case tictactoe.IsFull(room.Board):
		room.Status = entity.StatusFinished
		room.Winner = ""
	default:
		room.Turn = tictactoe.ToggleMark(room.Turn)
	}

	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	if room.IsFinished() {
		that.logger.Info("game finished", "room", room.Code, "winner", room.Winner)
	}

	return room, nil
}

// GetState - the poll read. Counts as a heartbeat: it refreshes the caller's
// LastSeen and the room's UpdatedAt, so an actively polled room never expires.
func (that *gamePlayService) GetState(ctx context.Context, code, playerID string) (*entity.Room, error) {
	code = strings.ToUpper(code)

	unlock := that.locker.Lock(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	now := time.Now()
	if player := room.PlayerByID(playerID); player != nil {
		player.LastSeen = now
	}
	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/pkg"
	"github.com/rocketscienceinc/arcade-backend/internal/repository"
)

// RoomService - the room lifecycle: create, join, restart, cosmetic style.
type RoomService interface {
	CreateRoom(ctx context.Context, ownerName string, symbolPairIndex int) (*entity.Room, string, error)
	JoinRoom(ctx context.Context, code, playerName string) (*entity.Room, string, error)
	RestartRoom(ctx context.Context, code, playerID string) (*entity.Room, error)
	SetSymbolStyle(ctx context.Context, code, playerID string, symbolPairIndex int) (*entity.Room, error)
}

type roomService struct {
	logger *slog.Logger

	roomRepo repository.RoomRepository
	locker   *RoomLocker
}

func NewRoomService(logger *slog.Logger, roomRepo repository.RoomRepository, locker *RoomLocker) RoomService {
	return &roomService{
		logger:   logger.With("component", "room-service"),
		roomRepo: roomRepo,
		locker:   locker,
	}
}

// CreateRoom - mints a fresh waiting room with the creator seated as X.
func (that *roomService) CreateRoom(ctx context.Context, ownerName string, symbolPairIndex int) (*entity.Room, string, error) {
	code, err := that.uniqueRoomCode(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate room code: %w", err)
	}

	now := time.Now()
	playerID := pkg.GenerateNewPlayerID()

	room := entity.NewRoom(code, symbolPairIndex)
	room.Players = []*entity.Player{{
		ID:       playerID,
		Name:     entity.SanitizeName(ownerName),
		Symbol:   entity.PlayerX,
		LastSeen: now,
	}}
	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, "", fmt.Errorf("failed to create room: %w", err)
	}

	that.logger.Info("room created", "room", room.Code)

	return room, playerID, nil
}

// JoinRoom - seats the joiner as O and flips the room to active.
func (that *roomService) JoinRoom(ctx context.Context, code, playerName string) (*entity.Room, string, error) {
	code = strings.ToUpper(code)

	unlock := that.locker.Lock(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get room by code: %w", err)
	}

	if room.IsFull() {
		return nil, "", apperror.ErrRoomFull
	}

	now := time.Now()
	playerID := pkg.GenerateNewPlayerID()

	room.Players = append(room.Players, &entity.Player{
		ID:       playerID,
		Name:     entity.SanitizeName(playerName),
		Symbol:   entity.PlayerO,
		LastSeen: now,
	})
	room.Status = entity.StatusActive
	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, "", fmt.Errorf("failed to update room: %w", err)
	}

	that.logger.Info("player joined", "room", room.Code)

	return room, playerID, nil
}

// RestartRoom - wipes the board for the same two seats. Either player may ask.
func (that *roomService) RestartRoom(ctx context.Context, code, playerID string) (*entity.Room, error) {
	code = strings.ToUpper(code)

	unlock := that.locker.Lock(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	if len(room.Players) < entity.MaxPlayers {
		return nil, apperror.ErrNotEnoughPlayers
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, apperror.ErrInvalidPlayer
	}

	now := time.Now()
	room.Reset()
	player.LastSeen = now
	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// SetSymbolStyle - updates the cosmetic symbol pair; only the X seat may do this.
func (that *roomService) SetSymbolStyle(ctx context.Context, code, playerID string, symbolPairIndex int) (*entity.Room, error) {
	code = strings.ToUpper(code)

	unlock := that.locker.Lock(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, apperror.ErrInvalidPlayer
	}

	if player.Symbol != entity.PlayerX {
		return nil, apperror.ErrStyleForbidden
	}

	now := time.Now()
	room.SymbolPairIndex = entity.NormalizeSymbolPairIndex(symbolPairIndex)
	player.LastSeen = now
	room.Touch(now)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// uniqueRoomCode - retries candidate codes until one is unused.
func (that *roomService) uniqueRoomCode(ctx context.Context) (string, error) {
	for {
		code := pkg.GenerateRoomCode()

		_, err := that.roomRepo.GetByCode(ctx, code)
		if errors.Is(err, apperror.ErrRoomNotFound) {
			return code, nil
		}

		if err != nil {
			return "", fmt.Errorf("failed to check room code: %w", err)
		}
	}
}

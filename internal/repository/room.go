package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

// RoomRepository - the room store. Lookups are case-insensitive on the code.
type RoomRepository interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type dbRoom struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomRepository - a redis-backed room store; the room TTL maps onto native
// key expiry, refreshed on every mutation.
func NewRoomRepository(client *redis.Client, ttl time.Duration) RoomRepository {
	return &dbRoom{
		client: client,
		ttl:    ttl,
	}
}

func roomKey(code string) string {
	return "room:" + strings.ToUpper(code)
}

func (that *dbRoom) CreateOrUpdate(ctx context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	if err = that.client.Set(ctx, roomKey(room.Code), roomJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (that *dbRoom) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	response, err := that.client.Get(ctx, roomKey(code)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	var existingRoom entity.Room
	if err = json.Unmarshal([]byte(response), &existingRoom); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &existingRoom, nil
}

func (that *dbRoom) DeleteByCode(ctx context.Context, code string) error {
	if err := that.client.Del(ctx, roomKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete room by code: %w", err)
	}

	return nil
}

// SweepExpired - a no-op for redis; key expiry already does the sweeping.
func (that *dbRoom) SweepExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

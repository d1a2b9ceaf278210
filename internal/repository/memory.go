package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

type memoryRoom struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
	ttl   time.Duration

	now func() time.Time
}

// NewMemoryRoomRepository - the default room store: a process-local map with
// TTL-based expiry. Rooms vanish on restart, which is fine for this service.
func NewMemoryRoomRepository(ttl time.Duration) RoomRepository {
	return &memoryRoom{
		rooms: make(map[string]*entity.Room),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryRoom) CreateOrUpdate(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[strings.ToUpper(room.Code)] = room.Clone()

	return nil
}

func (that *memoryRoom) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	key := strings.ToUpper(code)

	that.mu.RLock()
	room, ok := that.rooms[key]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	// a room past its TTL is unreachable even before the next sweep runs
	if that.now().Sub(room.UpdatedAt) > that.ttl {
		that.mu.Lock()
		delete(that.rooms, key)
		that.mu.Unlock()

		return nil, apperror.ErrRoomNotFound
	}

	return room.Clone(), nil
}

func (that *memoryRoom) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, strings.ToUpper(code))

	return nil
}

// SweepExpired - drops every room idle longer than the TTL, returning how many died.
func (that *memoryRoom) SweepExpired(_ context.Context, now time.Time) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	swept := 0
	for code, room := range that.rooms {
		if now.Sub(room.UpdatedAt) > that.ttl {
			delete(that.rooms, code)
			swept++
		}
	}

	return swept, nil
}

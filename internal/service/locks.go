package service

import "sync"

// RoomLocker - hands out one mutex per room code. Every read-modify-write of a
// room happens under its lock, so two requests against the same room never
// interleave, while requests against different rooms stay independent.
type RoomLocker struct {
	locks sync.Map // room code -> *sync.Mutex
}

func NewRoomLocker() *RoomLocker {
	return &RoomLocker{}
}

// Lock - locks the given room code and returns the matching unlock.
func (that *RoomLocker) Lock(code string) func() {
	value, _ := that.locks.LoadOrStore(code, &sync.Mutex{})

	mu, ok := value.(*sync.Mutex)
	if !ok {
		panic("room locker holds a non-mutex value")
	}

	mu.Lock()

	return mu.Unlock
}

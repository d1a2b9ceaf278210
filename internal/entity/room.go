package entity

import (
	"strings"
	"time"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	MaxPlayers = 2

	// MaxSymbolPairIndex - highest valid index into the cosmetic symbol pair list.
	MaxSymbolPairIndex = 2

	MaxNameLength = 20
	DefaultName   = "Guest"
)

// Player - an ephemeral seat in a room; no account system behind it.
type Player struct {
	ID       string    `json:"playerId"`
	Name     string    `json:"name"`
	Symbol   string    `json:"symbol"`
	LastSeen time.Time `json:"lastSeen"`
}

// Room - the server-side record of one online match.
type Room struct {
	Code            string    `json:"roomId"`
	Board           [9]string `json:"board"`
	SymbolPairIndex int       `json:"symbolPairIndex"`
	Turn            string    `json:"currentTurn"`
	Status          string    `json:"status"`
	Winner          string    `json:"winner"`
	Players         []*Player `json:"players"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewRoom - creates a waiting room with an empty board and X to move.
func NewRoom(code string, symbolPairIndex int) *Room {
	return &Room{
		Code:            code,
		Board:           [9]string{},
		SymbolPairIndex: NormalizeSymbolPairIndex(symbolPairIndex),
		Turn:            PlayerX,
		Status:          StatusWaiting,
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// PlayerByID - finds the seated player with the given id, or nil.
func (that *Room) PlayerByID(id string) *Player {
	if id == "" {
		return nil
	}

	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// PlayerBySymbol - finds the seated player holding the given mark, or nil.
func (that *Room) PlayerBySymbol(symbol string) *Player {
	for _, player := range that.Players {
		if player.Symbol == symbol {
			return player
		}
	}

	return nil
}

// Reset - wipes the board for a rematch; seats and symbols stay as they are.
func (that *Room) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Status = StatusActive
	that.Winner = ""
}

// Clone - deep-copies the room so stored state never aliases a caller's copy.
func (that *Room) Clone() *Room {
	clone := *that

	clone.Players = make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		playerCopy := *player
		clone.Players = append(clone.Players, &playerCopy)
	}

	return &clone
}

// Touch - stamps the last-mutation time used for expiry.
func (that *Room) Touch(now time.Time) {
	that.UpdatedAt = now
}

// SanitizeName - trims and truncates a display name, falling back to a default.
func SanitizeName(rawName string) string {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return DefaultName
	}

	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}

	return name
}

// NormalizeSymbolPairIndex - clamps an out-of-range cosmetic pair index to the default.
func NormalizeSymbolPairIndex(value int) int {
	if value < 0 || value > MaxSymbolPairIndex {
		return 0
	}

	return value
}

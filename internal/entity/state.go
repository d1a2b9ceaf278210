package entity

import "time"

// WaitingForOpponent - value of RoomState.WaitingFor while the second seat is empty.
const WaitingForOpponent = "opponent"

// PlayerState - what one seat looks like from the outside; player ids stay private.
type PlayerState struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Connected bool   `json:"connected"`
}

// RoomState - the per-viewer projection of a room returned by every endpoint.
type RoomState struct {
	RoomID            string        `json:"roomId"`
	Board             [9]string     `json:"board"`
	SymbolPairIndex   int           `json:"symbolPairIndex"`
	CurrentTurn       string        `json:"currentTurn"`
	Status            string        `json:"status"`
	Winner            string        `json:"winner"`
	Players           []PlayerState `json:"players"`
	YourSymbol        string        `json:"yourSymbol"`
	YourTurn          bool          `json:"yourTurn"`
	WaitingFor        string        `json:"waitingFor,omitempty"`
	CurrentPlayerName string        `json:"currentPlayerName,omitempty"`
}

// State - projects the room for the given viewer.
//
// Connected is a soft liveness heuristic: a player counts as online while their
// last heartbeat is within onlineWindow.
func (that *Room) State(playerID string, now time.Time, onlineWindow time.Duration) *RoomState {
	state := &RoomState{
		RoomID:          that.Code,
		Board:           that.Board,
		SymbolPairIndex: that.SymbolPairIndex,
		CurrentTurn:     that.Turn,
		Status:          that.Status,
		Winner:          that.Winner,
		Players:         make([]PlayerState, 0, len(that.Players)),
	}

	for _, player := range that.Players {
		state.Players = append(state.Players, PlayerState{
			Name:      player.Name,
			Symbol:    player.Symbol,
			Connected: now.Sub(player.LastSeen) <= onlineWindow,
		})
	}

	if you := that.PlayerByID(playerID); you != nil {
		state.YourSymbol = you.Symbol
		state.YourTurn = that.IsActive() && that.Turn == you.Symbol
	}

	if that.IsWaiting() {
		state.WaitingFor = WaitingForOpponent
	}

	if current := that.PlayerBySymbol(that.Turn); current != nil {
		state.CurrentPlayerName = current.Name
	}

	return state
}

package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameNotActive    = errors.New("game is not active")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidCell      = errors.New("invalid move index")
	ErrCellOccupied     = errors.New("cell already used")
	ErrNotEnoughPlayers = errors.New("need 2 players to restart")
	ErrStyleForbidden   = errors.New("only the room creator can change symbol style")
	ErrMalformedRequest = errors.New("invalid JSON body")
	ErrEndpointNotFound = errors.New("endpoint not found")
)

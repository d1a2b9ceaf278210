package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

// maxBodyBytes - request bodies larger than this are rejected mid-stream.
const maxBodyBytes = 1 << 20

type roomResponse struct {
	OK       bool              `json:"ok"`
	Room     *entity.RoomState `json:"room"`
	PlayerID string            `json:"playerId,omitempty"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// decodeJSON - reads a size-capped JSON body into dst; an empty body is fine.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return apperror.ErrMalformedRequest
}

func sendJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	// nothing sensible left to do for the client at this point
	_ = json.NewEncoder(w).Encode(payload)
}

func (that *Handlers) respondRoom(w http.ResponseWriter, statusCode int, room *entity.Room, playerID string, includePlayerID bool) {
	response := roomResponse{
		OK:   true,
		Room: room.State(playerID, time.Now(), that.onlineWindow),
	}

	if includePlayerID {
		response.PlayerID = playerID
	}

	sendJSON(w, statusCode, response)
}

func (that *Handlers) respondError(w http.ResponseWriter, err error) {
	statusCode, message := errorStatus(err)

	if statusCode == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	sendJSON(w, statusCode, errorResponse{OK: false, Error: message})
}

// errorStatus - maps a failure kind onto an HTTP status and a client-facing message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, apperror.ErrRoomFull):
		return http.StatusConflict, "Room is full"
	case errors.Is(err, apperror.ErrGameNotActive):
		return http.StatusConflict, "Game is not active"
	case errors.Is(err, apperror.ErrInvalidPlayer):
		return http.StatusForbidden, "Invalid player"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict, "Not your turn"
	case errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest, "Invalid move index"
	case errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict, "Cell already used"
	case errors.Is(err, apperror.ErrNotEnoughPlayers):
		return http.StatusConflict, "Need 2 players to restart"
	case errors.Is(err, apperror.ErrStyleForbidden):
		return http.StatusForbidden, "Only the room creator can change symbol style"
	case errors.Is(err, apperror.ErrMalformedRequest):
		return http.StatusBadRequest, "Invalid JSON body"
	case errors.Is(err, apperror.ErrEndpointNotFound):
		return http.StatusNotFound, "Endpoint not found"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

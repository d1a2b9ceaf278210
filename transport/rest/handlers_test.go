package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/repository"
	"github.com/rocketscienceinc/arcade-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roomRepo := repository.NewMemoryRoomRepository(time.Hour)
	locker := service.NewRoomLocker()
	rooms := service.NewRoomService(logger, roomRepo, locker)
	gameplay := service.NewGamePlayService(logger, roomRepo, locker)

	handlers := NewHandlers(logger, rooms, gameplay, 15*time.Second, t.TempDir())

	return handlers.Router()
}

type testEnvelope struct {
	OK       bool              `json:"ok"`
	Error    string            `json:"error"`
	PlayerID string            `json:"playerId"`
	Room     *entity.RoomState `json:"room"`
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) (int, *testEnvelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reqBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	envelope := &testEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), envelope), "body: %s", w.Body.String())

	return w.Code, envelope
}

func createTestRoom(t *testing.T, router http.Handler, name string) (code, playerID string) {
	t.Helper()

	status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms",
		map[string]any{"playerName": name, "symbolPairIndex": 0})

	require.Equal(t, http.StatusCreated, status)
	require.True(t, envelope.OK)
	require.NotNil(t, envelope.Room)

	return envelope.Room.RoomID, envelope.PlayerID
}

func joinTestRoom(t *testing.T, router http.Handler, code, name string) string {
	t.Helper()

	status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/join",
		map[string]any{"playerName": name})

	require.Equal(t, http.StatusOK, status)
	require.True(t, envelope.OK)

	return envelope.PlayerID
}

func TestCreateRoomEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// When: creating a room
	status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms",
		map[string]any{"playerName": "Alice", "symbolPairIndex": 1})

	// Then: 201 with a waiting room and the creator's id
	require.Equal(t, http.StatusCreated, status)
	require.True(t, envelope.OK)
	assert.NotEmpty(t, envelope.PlayerID)

	require.NotNil(t, envelope.Room)
	assert.Len(t, envelope.Room.RoomID, 6)
	assert.Equal(t, entity.StatusWaiting, envelope.Room.Status)
	assert.Equal(t, 1, envelope.Room.SymbolPairIndex)
	assert.Equal(t, entity.PlayerX, envelope.Room.YourSymbol)
	assert.Equal(t, entity.WaitingForOpponent, envelope.Room.WaitingFor)
	require.Len(t, envelope.Room.Players, 1)
	assert.True(t, envelope.Room.Players[0].Connected)
}

func TestJoinRoomEndpoint(t *testing.T) {
	t.Run("Joining flips the room to active", func(t *testing.T) {
		router := newTestRouter(t)
		code, _ := createTestRoom(t, router, "Alice")

		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/join",
			map[string]any{"playerName": "Bob"})

		require.Equal(t, http.StatusOK, status)
		require.True(t, envelope.OK)
		assert.Equal(t, entity.StatusActive, envelope.Room.Status)
		assert.Equal(t, entity.PlayerO, envelope.Room.YourSymbol)
		assert.Len(t, envelope.Room.Players, 2)
	})

	t.Run("Unknown room gives 404", func(t *testing.T) {
		router := newTestRouter(t)

		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/ZZZZZZ/join",
			map[string]any{"playerName": "Bob"})

		assert.Equal(t, http.StatusNotFound, status)
		assert.False(t, envelope.OK)
		assert.Equal(t, "Room not found", envelope.Error)
	})

	t.Run("Full room gives 409", func(t *testing.T) {
		router := newTestRouter(t)
		code, _ := createTestRoom(t, router, "Alice")
		joinTestRoom(t, router, code, "Bob")

		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/join",
			map[string]any{"playerName": "Carol"})

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Room is full", envelope.Error)
	})
}

func TestRoomStateEndpoint(t *testing.T) {
	t.Run("State poll works with a lowercase code", func(t *testing.T) {
		router := newTestRouter(t)
		code, playerID := createTestRoom(t, router, "Alice")

		target := fmt.Sprintf("/api/multiplayer/rooms/%s/state?playerId=%s", strings.ToLower(code), playerID)
		status, envelope := doJSON(t, router, http.MethodGet, target, nil)

		require.Equal(t, http.StatusOK, status)
		require.True(t, envelope.OK)
		assert.Equal(t, code, envelope.Room.RoomID)
		assert.Equal(t, entity.PlayerX, envelope.Room.YourSymbol)
	})

	t.Run("Unknown room gives 404", func(t *testing.T) {
		router := newTestRouter(t)

		status, envelope := doJSON(t, router, http.MethodGet, "/api/multiplayer/rooms/ZZZZZZ/state", nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.False(t, envelope.OK)
	})
}

func TestMoveEndpoint(t *testing.T) {
	t.Run("Full winning scenario over HTTP", func(t *testing.T) {
		router := newTestRouter(t)
		code, creatorID := createTestRoom(t, router, "Alice")
		joinerID := joinTestRoom(t, router, code, "Bob")

		var envelope *testEnvelope
		for _, move := range []struct {
			playerID string
			index    int
		}{
			{creatorID, 0}, {joinerID, 3}, {creatorID, 1}, {joinerID, 4}, {creatorID, 2},
		} {
			var status int
			status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
				map[string]any{"playerId": move.playerID, "index": move.index})
			require.Equal(t, http.StatusOK, status)
			require.True(t, envelope.OK)
		}

		assert.Equal(t, entity.StatusFinished, envelope.Room.Status)
		assert.Equal(t, entity.PlayerX, envelope.Room.Winner)
		assert.False(t, envelope.Room.YourTurn)
	})

	t.Run("Failure kinds map onto their statuses", func(t *testing.T) {
		router := newTestRouter(t)
		code, creatorID := createTestRoom(t, router, "Alice")

		// waiting room: 409 GameNotActive
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": creatorID, "index": 0})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Game is not active", envelope.Error)

		joinerID := joinTestRoom(t, router, code, "Bob")

		// stranger: 403 InvalidPlayer
		status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": "nobody", "index": 0})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Invalid player", envelope.Error)

		// O before X: 409 NotYourTurn
		status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": joinerID, "index": 0})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Not your turn", envelope.Error)

		// off the board: 400 InvalidIndex
		status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": creatorID, "index": 9})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid move index", envelope.Error)

		// missing index: 400 InvalidIndex, not a move at cell 0
		status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": creatorID})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid move index", envelope.Error)

		// occupied cell: 409 CellOccupied
		status, _ = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": creatorID, "index": 0})
		require.Equal(t, http.StatusOK, status)

		status, envelope = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": joinerID, "index": 0})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Cell already used", envelope.Error)

		// unknown room: 404
		status, _ = doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/ZZZZZZ/move",
			map[string]any{"playerId": creatorID, "index": 0})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Malformed body gives 400", func(t *testing.T) {
		router := newTestRouter(t)
		code, _ := createTestRoom(t, router, "Alice")

		req := httptest.NewRequest(http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid JSON body")
	})
}

func TestRestartEndpoint(t *testing.T) {
	router := newTestRouter(t)
	code, creatorID := createTestRoom(t, router, "Alice")
	joinerID := joinTestRoom(t, router, code, "Bob")

	// Given: a finished game
	for _, move := range []struct {
		playerID string
		index    int
	}{
		{creatorID, 0}, {joinerID, 3}, {creatorID, 1}, {joinerID, 4}, {creatorID, 2},
	} {
		status, _ := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/move",
			map[string]any{"playerId": move.playerID, "index": move.index})
		require.Equal(t, http.StatusOK, status)
	}

	// When: the joiner restarts
	status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/restart",
		map[string]any{"playerId": joinerID})

	// Then: fresh board, same seats
	require.Equal(t, http.StatusOK, status)
	require.True(t, envelope.OK)
	assert.Equal(t, [9]string{}, envelope.Room.Board)
	assert.Equal(t, entity.StatusActive, envelope.Room.Status)
	assert.Equal(t, entity.PlayerX, envelope.Room.CurrentTurn)
	assert.Empty(t, envelope.Room.Winner)
	assert.Len(t, envelope.Room.Players, 2)
}

func TestStyleEndpoint(t *testing.T) {
	router := newTestRouter(t)
	code, creatorID := createTestRoom(t, router, "Alice")
	joinerID := joinTestRoom(t, router, code, "Bob")

	t.Run("Joiner is forbidden", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/style",
			map[string]any{"playerId": joinerID, "symbolPairIndex": 1})

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Only the room creator can change symbol style", envelope.Error)
	})

	t.Run("Creator's change shows in the next poll", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/style",
			map[string]any{"playerId": creatorID, "symbolPairIndex": 2})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 2, envelope.Room.SymbolPairIndex)

		status, envelope = doJSON(t, router, http.MethodGet,
			"/api/multiplayer/rooms/"+code+"/state?playerId="+joinerID, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 2, envelope.Room.SymbolPairIndex)
	})

	t.Run("Out-of-range index is clamped to the default", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/"+code+"/style",
			map[string]any{"playerId": creatorID, "symbolPairIndex": 42})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 0, envelope.Room.SymbolPairIndex)
	})
}

func TestRouterFallbacks(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Unknown API endpoint gives 404", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/nonsense", nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Endpoint not found", envelope.Error)
	})

	t.Run("Wrong method on an API path gives 404, not 405", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/api/multiplayer/rooms/ABCDEF/state", nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Endpoint not found", envelope.Error)
	})

	t.Run("Non-API write methods give 405", func(t *testing.T) {
		status, envelope := doJSON(t, router, http.MethodPost, "/whatever", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, status)
		assert.Equal(t, "Method not allowed", envelope.Error)
	})

	t.Run("Ping answers pong", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})
}

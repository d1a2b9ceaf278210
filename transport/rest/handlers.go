package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/pkg/handlers"
)

type roomService interface {
	CreateRoom(ctx context.Context, ownerName string, symbolPairIndex int) (*entity.Room, string, error)
	JoinRoom(ctx context.Context, code, playerName string) (*entity.Room, string, error)
	RestartRoom(ctx context.Context, code, playerID string) (*entity.Room, error)
	SetSymbolStyle(ctx context.Context, code, playerID string, symbolPairIndex int) (*entity.Room, error)
}

type gamePlayService interface {
	MakeTurn(ctx context.Context, code, playerID string, cell int) (*entity.Room, error)
	GetState(ctx context.Context, code, playerID string) (*entity.Room, error)
}

type Handlers struct {
	logger *slog.Logger

	rooms    roomService
	gameplay gamePlayService

	onlineWindow time.Duration
	static       http.Handler
}

func NewHandlers(logger *slog.Logger, rooms roomService, gameplay gamePlayService, onlineWindow time.Duration, staticDir string) *Handlers {
	return &Handlers{
		logger:       logger.With("component", "rest-handlers"),
		rooms:        rooms,
		gameplay:     gameplay,
		onlineWindow: onlineWindow,
		static:       NewStaticHandler(staticDir),
	}
}

// Router - wires all routes. Anything under /api/multiplayer that no route
// claims is an unknown endpoint; everything else falls back to static assets.
func (that *Handlers) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/multiplayer/rooms", that.handleCreateRoom)
	mux.HandleFunc("POST /api/multiplayer/rooms/{code}/join", that.handleJoinRoom)
	mux.HandleFunc("GET /api/multiplayer/rooms/{code}/state", that.handleRoomState)
	mux.HandleFunc("POST /api/multiplayer/rooms/{code}/move", that.handleMove)
	mux.HandleFunc("POST /api/multiplayer/rooms/{code}/restart", that.handleRestart)
	mux.HandleFunc("POST /api/multiplayer/rooms/{code}/style", that.handleStyle)
	mux.HandleFunc("/api/multiplayer/", that.handleAPINotFound)

	mux.HandleFunc("/ping", handlers.NewPingHandler().PingHandler)
	mux.HandleFunc("/", that.handleFallback)

	return that.recoverer(mux)
}

type createRoomRequest struct {
	PlayerName      string `json:"playerName"`
	SymbolPairIndex int    `json:"symbolPairIndex"`
}

type joinRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// moveRequest - Index is a pointer so an absent field reads as missing, not cell 0.
type moveRequest struct {
	PlayerID string `json:"playerId"`
	Index    *int   `json:"index"`
}

type restartRequest struct {
	PlayerID string `json:"playerId"`
}

type styleRequest struct {
	PlayerID        string `json:"playerId"`
	SymbolPairIndex int    `json:"symbolPairIndex"`
}

func (that *Handlers) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var body createRoomRequest
	if err := decodeJSON(w, r, &body); err != nil {
		that.respondError(w, err)
		return
	}

	room, playerID, err := that.rooms.CreateRoom(r.Context(), body.PlayerName, body.SymbolPairIndex)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusCreated, room, playerID, true)
}

func (that *Handlers) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var body joinRoomRequest
	if err := decodeJSON(w, r, &body); err != nil {
		that.respondError(w, err)
		return
	}

	room, playerID, err := that.rooms.JoinRoom(r.Context(), r.PathValue("code"), body.PlayerName)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusOK, room, playerID, true)
}

func (that *Handlers) handleRoomState(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")

	room, err := that.gameplay.GetState(r.Context(), r.PathValue("code"), playerID)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusOK, room, playerID, false)
}

func (that *Handlers) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveRequest
	if err := decodeJSON(w, r, &body); err != nil {
		that.respondError(w, err)
		return
	}

	if body.Index == nil {
		that.respondError(w, apperror.ErrInvalidCell)
		return
	}

	room, err := that.gameplay.MakeTurn(r.Context(), r.PathValue("code"), body.PlayerID, *body.Index)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusOK, room, body.PlayerID, false)
}

func (that *Handlers) handleRestart(w http.ResponseWriter, r *http.Request) {
	var body restartRequest
	if err := decodeJSON(w, r, &body); err != nil {
		that.respondError(w, err)
		return
	}

	room, err := that.rooms.RestartRoom(r.Context(), r.PathValue("code"), body.PlayerID)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusOK, room, body.PlayerID, false)
}

func (that *Handlers) handleStyle(w http.ResponseWriter, r *http.Request) {
	var body styleRequest
	if err := decodeJSON(w, r, &body); err != nil {
		that.respondError(w, err)
		return
	}

	room, err := that.rooms.SetSymbolStyle(r.Context(), r.PathValue("code"), body.PlayerID, body.SymbolPairIndex)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondRoom(w, http.StatusOK, room, body.PlayerID, false)
}

func (that *Handlers) handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	that.respondError(w, apperror.ErrEndpointNotFound)
}

// handleFallback - non-API traffic: GET/HEAD goes to static assets, anything else is refused.
func (that *Handlers) handleFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		sendJSON(w, http.StatusMethodNotAllowed, errorResponse{OK: false, Error: "Method not allowed"})
		return
	}

	that.static.ServeHTTP(w, r)
}

// recoverer - converts handler panics into a 500 envelope instead of killing the process.
func (that *Handlers) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				that.logger.Error("handler panic", "panic", rec, "path", r.URL.Path)
				sendJSON(w, http.StatusInternalServerError, errorResponse{OK: false, Error: "Internal error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

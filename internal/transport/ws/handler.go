// Package ws serves the live conversation socket. One connection drives the
// sessions of one participant in one room; closing the socket ends the active
// session.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/roomid"
	"github.com/heartmarshall/mindcure-backend/internal/service/conversation"
	"github.com/heartmarshall/mindcure-backend/internal/session"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

//go:generate moq -out room_authorizer_mock_test.go -pkg ws . roomAuthorizer

type roomAuthorizer interface {
	VerifyRoomAccess(ctx context.Context, roomName string) error
}

// FinalizerFactory builds the finalizer of one connection. publish delivers
// analysis results back to that connection.
type FinalizerFactory func(publish conversation.Publisher) session.Finalizer

// Config holds socket limits.
type Config struct {
	FinalizeTimeout time.Duration
	MaxMessageBytes int64
	// AllowedOrigins is a comma separated list; "*" allows any origin.
	AllowedOrigins string
}

// SessionHandler upgrades authorized requests to a session socket.
type SessionHandler struct {
	rooms      roomAuthorizer
	finalizers FinalizerFactory
	cfg        Config
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(rooms roomAuthorizer, finalizers FinalizerFactory, cfg Config, logger *slog.Logger) *SessionHandler {
	h := &SessionHandler{
		rooms:      rooms,
		finalizers: finalizers,
		cfg:        cfg,
		log:        logger.With("handler", "session_ws"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// ServeHTTP handles GET /api/sessions/{roomName}/ws.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	room := strings.TrimSpace(r.PathValue("roomName"))

	if err := h.rooms.VerifyRoomAccess(ctx, room); err != nil {
		h.reject(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.WarnContext(ctx, "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	mgr := session.NewManager(h.log, participantInfo(ctx, room), h.finalizers(c.publishAnalysis), h.cfg.FinalizeTimeout)

	disconnected := make(chan struct{})
	finalized := make(chan struct{})
	go func() {
		defer close(finalized)
		mgr.WatchDisconnect(ctx, disconnected)
	}()

	stopPing := make(chan struct{})
	go c.keepAlive(stopPing)

	h.log.InfoContext(ctx, "session socket opened", slog.String("room", room))
	h.readLoop(ctx, c, mgr)

	close(stopPing)
	close(disconnected)
	<-finalized
	h.log.InfoContext(ctx, "session socket closed", slog.String("room", room))
}

func (h *SessionHandler) readLoop(ctx context.Context, c *client, mgr *session.Manager) {
	if h.cfg.MaxMessageBytes > 0 {
		c.conn.SetReadLimit(h.cfg.MaxMessageBytes)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.DebugContext(ctx, "websocket read ended", slog.String("error", err.Error()))
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(data, &f); err != nil {
			_ = c.send(serverFrame{Type: FrameError, Error: "invalid frame"})
			continue
		}
		h.handleFrame(ctx, c, mgr, f)
	}
}

func (h *SessionHandler) handleFrame(ctx context.Context, c *client, mgr *session.Manager, f clientFrame) {
	switch f.Type {
	case FrameStart:
		s := mgr.StartSession(ctx, f.MoodBefore)
		_ = c.send(stateFrame(s))

	case FrameMessage:
		err := mgr.AddMessage(f.speaker(), f.Text)
		switch {
		case errors.Is(err, session.ErrNotActive):
			_ = c.send(serverFrame{Type: FrameError, Error: "no active session"})
		case err != nil:
			_ = c.send(serverFrame{Type: FrameError, Error: err.Error()})
		}

	case FrameEnd:
		mgr.EndSession(ctx)
		_ = c.send(stateFrame(mgr.Current()))

	default:
		_ = c.send(serverFrame{Type: FrameError, Error: "unknown frame type"})
	}
}

func stateFrame(s session.Handle) serverFrame {
	f := serverFrame{Type: FrameState, State: s.State().String()}
	if id := s.ID(); id != uuid.Nil {
		f.SessionID = id.String()
	}
	return f
}

// participantInfo derives who is on this socket from the verified caller.
func participantInfo(ctx context.Context, room string) session.Info {
	info := session.Info{RoomName: room}

	role := roomid.RoleCompanionUser
	if purpose, _ := roomid.Purpose(room); purpose == roomid.PurposePeer {
		role = roomid.RolePeer
	}

	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		info.OwnerID = &userID
		info.ParticipantIdentity = roomid.MakeParticipantIdentity(role, userID.String())
	} else {
		info.ParticipantIdentity = roomid.MakeParticipantIdentity(role, "")
	}
	return info
}

func (h *SessionHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidRoom), errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	default:
		h.log.ErrorContext(r.Context(), "room access check failed", slog.String("error", err.Error()))
	}
	http.Error(w, http.StatusText(status), status)
}

func originChecker(allowed string) func(r *http.Request) bool {
	origins := make(map[string]struct{})
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}
	if _, wildcard := origins["*"]; wildcard || len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := origins[origin]
		return ok
	}
}

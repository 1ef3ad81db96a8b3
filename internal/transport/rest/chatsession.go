package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/conversation"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

//go:generate moq -out chat_session_service_mock_test.go -pkg rest . chatSessionService

type chatSessionService interface {
	List(ctx context.Context, limit int) ([]*domain.ChatSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	Create(ctx context.Context, input conversation.CreateInput) (*domain.ChatSession, error)
	Update(ctx context.Context, id uuid.UUID, input conversation.UpdateInput) (*domain.ChatSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reanalyze(ctx context.Context, id uuid.UUID, input conversation.ReanalyzeInput) (*domain.AnalysisResult, error)
}

// ChatSessionHandler serves the caller's conversation history.
type ChatSessionHandler struct {
	svc chatSessionService
	log *slog.Logger
}

// NewChatSessionHandler creates a ChatSessionHandler.
func NewChatSessionHandler(svc chatSessionService, logger *slog.Logger) *ChatSessionHandler {
	return &ChatSessionHandler{svc: svc, log: logger.With("handler", "chat_session")}
}

type createChatSessionRequest struct {
	Title           string           `json:"title"`
	MoodBefore      string           `json:"mood_before"`
	MoodAfter       string           `json:"mood_after"`
	DurationSeconds int              `json:"duration_seconds"`
	Transcript      []transcriptLine `json:"transcript"`
	Metadata        map[string]any   `json:"metadata"`
}

type updateChatSessionRequest struct {
	Title     *string        `json:"title"`
	MoodAfter *string        `json:"mood_after"`
	Metadata  map[string]any `json:"metadata"`
}

type reanalyzeRequest struct {
	RefinementInstruction string `json:"refinementInstruction"`
	UserAPIKey            string `json:"userApiKey"`
}

type listChatSessionsResponse struct {
	Sessions      []chatSessionResponse `json:"sessions"`
	Authenticated bool                  `json:"authenticated"`
}

type chatSessionEnvelope struct {
	Session chatSessionResponse `json:"session"`
}

// List handles GET /api/chat-sessions. Anonymous callers get an empty list.
func (h *ChatSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := listChatSessionsResponse{Sessions: []chatSessionResponse{}}
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	sessions, err := h.svc.List(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp.Authenticated = true
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toChatSessionResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/chat-sessions/{id}.
func (h *ChatSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatSessionEnvelope{Session: toChatSessionResponse(s)})
}

// Create handles POST /api/chat-sessions.
func (h *ChatSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChatSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.svc.Create(r.Context(), conversation.CreateInput{
		Title:           req.Title,
		MoodBefore:      req.MoodBefore,
		MoodAfter:       req.MoodAfter,
		DurationSeconds: req.DurationSeconds,
		Transcript:      toTranscript(req.Transcript),
		Metadata:        req.Metadata,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, chatSessionEnvelope{Session: toChatSessionResponse(s)})
}

// Update handles PATCH /api/chat-sessions/{id}.
func (h *ChatSessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateChatSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.svc.Update(r.Context(), id, conversation.UpdateInput{
		Title:     req.Title,
		MoodAfter: req.MoodAfter,
		Metadata:  req.Metadata,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatSessionEnvelope{Session: toChatSessionResponse(s)})
}

// Delete handles DELETE /api/chat-sessions/{id}.
func (h *ChatSessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Reanalyze handles POST /api/chat-sessions/{id}/analysis.
func (h *ChatSessionHandler) Reanalyze(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req reanalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Reanalyze(r.Context(), id, conversation.ReanalyzeInput{
		RefinementInstruction: req.RefinementInstruction,
		UserAPIKey:            req.UserAPIKey,
	})
	if err != nil {
		writeAnalysisError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(res))
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

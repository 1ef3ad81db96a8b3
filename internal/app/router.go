package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mindcure-backend/internal/auth"
	"github.com/heartmarshall/mindcure-backend/internal/config"
	"github.com/heartmarshall/mindcure-backend/internal/transport/middleware"
	"github.com/heartmarshall/mindcure-backend/internal/transport/rest"
	"github.com/heartmarshall/mindcure-backend/internal/transport/ws"
)

// Handlers groups every HTTP entry point served by the application.
type Handlers struct {
	Health      *rest.HealthHandler
	Grant       *rest.GrantHandler
	Analysis    *rest.AnalysisHandler
	ChatSession *rest.ChatSessionHandler
	Peer        *rest.PeerHandler
	Settings    *rest.SettingsHandler
	Session     *ws.SessionHandler
}

// RouterDeps carries the cross-cutting pieces the router wraps handlers with.
type RouterDeps struct {
	Logger      *slog.Logger
	Tokens      *auth.JWTManager
	Limiter     *middleware.RateLimiter
	CORS        config.CORSConfig
	AnalysisRPM int
	WriteRPM    int
}

// NewRouter registers all routes and wraps them in the shared middleware chain.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/connection-details", h.Grant.ConnectionDetails)
	mux.HandleFunc("POST /api/peer-token", h.Grant.PeerToken)

	limited := deps.Limiter.Limit(deps.AnalysisRPM)
	mux.Handle("POST /api/analysis", limited(http.HandlerFunc(h.Analysis.Analyze)))
	mux.Handle("POST /api/chat-sessions/{id}/analysis", limited(http.HandlerFunc(h.ChatSession.Reanalyze)))

	mux.HandleFunc("GET /api/chat-sessions", h.ChatSession.List)
	mux.HandleFunc("POST /api/chat-sessions", h.ChatSession.Create)
	mux.HandleFunc("GET /api/chat-sessions/{id}", h.ChatSession.Get)
	mux.HandleFunc("PATCH /api/chat-sessions/{id}", h.ChatSession.Update)
	mux.HandleFunc("DELETE /api/chat-sessions/{id}", h.ChatSession.Delete)

	mux.HandleFunc("POST /api/peer-match", h.Peer.Match)

	mux.HandleFunc("GET /api/user/api-key", h.Settings.APIKeyStatus)
	mux.HandleFunc("POST /api/user/api-key", h.Settings.SetAPIKey)
	mux.HandleFunc("PUT /api/user/api-key", h.Settings.SetAPIKey)
	mux.HandleFunc("DELETE /api/user/api-key", h.Settings.DeleteAPIKey)

	mux.Handle("GET /api/sessions/{roomName}/ws", h.Session)

	return middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.Tokens),
		middleware.Logger(deps.Logger),
		middleware.Only(deps.Limiter.Limit(deps.WriteRPM), http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete),
	)(mux)
}

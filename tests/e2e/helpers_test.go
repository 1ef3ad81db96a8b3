//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/chatsession"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/membership"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/profile"
	settingsrepo "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/redis"
	"github.com/heartmarshall/mindcure-backend/internal/app"
	authpkg "github.com/heartmarshall/mindcure-backend/internal/auth"
	"github.com/heartmarshall/mindcure-backend/internal/config"
	"github.com/heartmarshall/mindcure-backend/internal/service/analysis"
	"github.com/heartmarshall/mindcure-backend/internal/service/conversation"
	"github.com/heartmarshall/mindcure-backend/internal/service/grant"
	"github.com/heartmarshall/mindcure-backend/internal/service/peer"
	"github.com/heartmarshall/mindcure-backend/internal/service/settings"
	"github.com/heartmarshall/mindcure-backend/internal/session"
	"github.com/heartmarshall/mindcure-backend/internal/transport/middleware"
	"github.com/heartmarshall/mindcure-backend/internal/transport/rest"
	"github.com/heartmarshall/mindcure-backend/internal/transport/ws"
)

const (
	testServerURL = "wss://media.test"
	testUserKey   = "AIzaTestUserKeyThatIsLongEnough1234"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Model  *fakeModel
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// fakeModel stands in for the hosted text-generation API.
// ---------------------------------------------------------------------------

const fakeAnalysisJSON = `{
  "sentimentScore": 6,
  "moodShift": {"before": "Anxious", "after": "Hopeful"},
  "primaryFocus": ["Sleep"],
  "keyInsights": ["Worries peak at night"],
  "subconsciousPatterns": [],
  "actionItems": ["Keep a notebook by the bed"]
}`

type fakeModel struct {
	mu      sync.Mutex
	prompts []string
	keys    []string
}

func (m *fakeModel) Generate(_ context.Context, apiKey, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.keys = append(m.keys, apiKey)
	return "```json\n" + fakeAnalysisJSON + "\n```", nil
}

func (m *fakeModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *fakeModel) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompts[len(m.prompts)-1]
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by real
// PostgreSQL and Redis containers (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Containers.
	pool := testhelper.SetupTestDB(t)
	rdb := testhelper.SetupTestRedis(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	sessionRepo := chatsession.New(pool)
	membershipRepo := membership.New(pool)
	profileRepo := profile.New(pool)
	settingsRepo := settingsrepo.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	// 5. Services. No server model key: analysis needs a user key.
	issuer := grant.NewIssuer(authpkg.NewGrantSigner("APItestkey", "test-grant-secret"), 15*time.Minute, time.Hour)
	grantService := grant.NewService(logger, issuer, profileRepo, membershipRepo, redis.NewRoomRegistry(rdb), testServerURL)

	sealer, err := settings.NewSealer("test-sealing-secret-at-least-32-chars!")
	require.NoError(t, err)
	settingsService := settings.NewService(logger, settingsRepo, sealer, config.ProviderGemini)

	model := &fakeModel{}
	pipeline := analysis.NewPipeline(logger, model, "", 5*time.Second)
	conversationService := conversation.NewService(logger, sessionRepo, pipeline, settingsService, txm)

	peerService := peer.NewService(logger, redis.NewPeerQueue(rdb, time.Minute), membershipRepo)

	// 6. Router.
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := app.NewRouter(app.Handlers{
		Health: rest.NewHealthHandler("test-version",
			rest.Component{Name: "database", Pinger: pool},
			rest.Component{Name: "redis", Pinger: redis.Pinger{Client: rdb}},
		),
		Grant:       rest.NewGrantHandler(grantService, logger),
		Analysis:    rest.NewAnalysisHandler(conversationService, logger),
		ChatSession: rest.NewChatSessionHandler(conversationService, logger),
		Peer:        rest.NewPeerHandler(peerService, logger),
		Settings:    rest.NewSettingsHandler(settingsService, logger),
		Session: ws.NewSessionHandler(grantService,
			func(publish conversation.Publisher) session.Finalizer {
				return conversationService.Recorder(publish)
			},
			ws.Config{FinalizeTimeout: 5 * time.Second, MaxMessageBytes: 1 << 16, AllowedOrigins: "*"},
			logger,
		),
	}, app.RouterDeps{
		Logger:  logger,
		Tokens:  jwtMgr,
		Limiter: limiter,
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		AnalysisRPM: 100,
		WriteRPM:    1000,
	})

	// 7. httptest server.
	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Model:  model,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// newUser returns a fresh user id and a valid access token for it.
func (ts *testServer) newUser(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(authpkg.Identity{
		UserID: id,
		Email:  "e2e-" + id.String()[:8] + "@example.com",
	})
	require.NoError(t, err)
	return id, token
}

// do sends a JSON request and returns status + decoded body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	if resp.ContentLength != 0 {
		_ = json.NewDecoder(resp.Body).Decode(&result)
	}
	return resp.StatusCode, result
}

// dialSession opens the session socket for room, authenticated when token is set.
func (ts *testServer) dialSession(t *testing.T, room, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/sessions/" + room + "/ws"
	if token != "" {
		url += "?" + middleware.AccessTokenQueryParam + "=" + token
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	require.NoError(t, err)
	return conn
}

// frame is a decoded server frame.
type frame struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId"`
	State     string         `json:"state"`
	Analysis  map[string]any `json:"analysis"`
	Error     string         `json:"error"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

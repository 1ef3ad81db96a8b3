package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/mindcure-backend/internal/adapter/llm"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/chatsession"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/membership"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/profile"
	settingsrepo "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/redis"
	"github.com/heartmarshall/mindcure-backend/internal/auth"
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

// Run is the application entry point. It connects to PostgreSQL and Redis,
// builds services and handlers, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("analysis_provider", cfg.Analysis.Provider),
	)
	if !cfg.LiveKit.HasGrantCredentials() {
		logger.Warn("media server credentials not configured; connection grants will fail")
	}

	// Infrastructure.
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("app.Run: %w", err)
		}
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	defer rdb.Close()

	txm := postgres.NewTxManager(pool)

	// Repositories.
	sessionRepo := chatsession.New(pool)
	membershipRepo := membership.New(pool)
	profileRepo := profile.New(pool)
	settingsRepo := settingsrepo.New(pool)

	rooms := redis.NewRoomRegistry(rdb)
	queue := redis.NewPeerQueue(rdb, cfg.Session.PeerQueueTTL)

	// Services.
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	issuer := grant.NewIssuer(
		auth.NewGrantSigner(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret),
		cfg.LiveKit.CompanionTTL, cfg.LiveKit.PeerTTL,
	)
	grantService := grant.NewService(logger, issuer, profileRepo, membershipRepo, rooms, cfg.LiveKit.URL)

	sealer, err := settings.NewSealer(cfg.Auth.APIKeyEncryptionSecret)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	settingsService := settings.NewService(logger, settingsRepo, sealer, cfg.Analysis.Provider)

	gen, err := llm.New(cfg.Analysis)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	pipeline := analysis.NewPipeline(logger, gen, cfg.Analysis.APIKey, cfg.Analysis.Timeout)
	conversationService := conversation.NewService(logger, sessionRepo, pipeline, settingsService, txm)

	peerService := peer.NewService(logger, queue, membershipRepo)

	// Transport.
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handlers := Handlers{
		Health: rest.NewHealthHandler(BuildVersion(),
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
			ws.Config{
				FinalizeTimeout: cfg.Session.FinalizeTimeout,
				MaxMessageBytes: cfg.Session.MaxMessageBytes,
				AllowedOrigins:  cfg.CORS.AllowedOrigins,
			},
			logger,
		),
	}

	router := NewRouter(handlers, RouterDeps{
		Logger:      logger,
		Tokens:      jwtMgr,
		Limiter:     limiter,
		CORS:        cfg.CORS,
		AnalysisRPM: cfg.Analysis.RatePerMin,
		WriteRPM:    cfg.RateLimit.WritePerMin,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.Run: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app.Run: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

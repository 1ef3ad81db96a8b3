// Package settings manages a user's own model API key.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/config"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

//go:generate moq -out settings_repo_mock_test.go -pkg settings . settingsRepo

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	SetSealedAPIKey(ctx context.Context, userID uuid.UUID, sealed []byte) error
	ClearAPIKey(ctx context.Context, userID uuid.UUID) error
}

const maxAPIKeyLength = 512

// keyFormat is the shape a provider's keys must have.
type keyFormat struct {
	prefix string
	minLen int
	hint   string
}

var keyFormats = map[string]keyFormat{
	config.ProviderGemini:    {prefix: "AIza", minLen: 30, hint: `Gemini keys start with "AIza"`},
	config.ProviderAnthropic: {prefix: "sk-ant-", minLen: 30, hint: `Anthropic keys start with "sk-ant-"`},
}

// KeyStatus describes the stored key without revealing it.
type KeyStatus struct {
	HasAPIKey bool
	AddedAt   *time.Time
}

// Service provides API key operations for the caller in the context.
type Service struct {
	repo     settingsRepo
	sealer   *Sealer
	provider string
	log      *slog.Logger
}

// NewService creates a settings Service. provider selects the expected key format.
func NewService(logger *slog.Logger, repo settingsRepo, sealer *Sealer, provider string) *Service {
	return &Service{
		repo:     repo,
		sealer:   sealer,
		provider: provider,
		log:      logger.With("service", "settings"),
	}
}

// SetAPIKey validates, seals and stores the caller's key.
func (s *Service) SetAPIKey(ctx context.Context, apiKey string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	apiKey = strings.TrimSpace(apiKey)
	if err := s.validateKey(apiKey); err != nil {
		return err
	}

	sealed, err := s.sealer.Seal(apiKey)
	if err != nil {
		return fmt.Errorf("settings.SetAPIKey: %w", err)
	}
	if err := s.repo.SetSealedAPIKey(ctx, userID, sealed); err != nil {
		return fmt.Errorf("settings.SetAPIKey: %w", err)
	}

	s.log.InfoContext(ctx, "api key stored", slog.String("user_id", userID.String()))
	return nil
}

// Status reports whether the caller has a key on file.
func (s *Service) Status(ctx context.Context) (*KeyStatus, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	st, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &KeyStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings.Status: %w", err)
	}
	if len(st.SealedAPIKey) == 0 {
		return &KeyStatus{}, nil
	}
	addedAt := st.UpdatedAt
	return &KeyStatus{HasAPIKey: true, AddedAt: &addedAt}, nil
}

// DeleteAPIKey removes the caller's key. Deleting a missing key succeeds.
func (s *Service) DeleteAPIKey(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.repo.ClearAPIKey(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("settings.DeleteAPIKey: %w", err)
	}
	return nil
}

// ResolveAPIKey returns the plaintext key stored for userID, or "" if there is none.
// A key that cannot be opened is logged and treated as absent.
func (s *Service) ResolveAPIKey(ctx context.Context, userID uuid.UUID) (string, error) {
	st, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("settings.ResolveAPIKey: %w", err)
	}
	if len(st.SealedAPIKey) == 0 {
		return "", nil
	}

	key, err := s.sealer.Open(st.SealedAPIKey)
	if err != nil {
		s.log.ErrorContext(ctx, "stored api key unreadable",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return "", nil
	}
	return key, nil
}

func (s *Service) validateKey(key string) error {
	if key == "" {
		return domain.NewValidationError("apiKey", "required")
	}
	if len(key) > maxAPIKeyLength {
		return domain.NewValidationError("apiKey", fmt.Sprintf("must be at most %d characters", maxAPIKeyLength))
	}
	f, ok := keyFormats[s.provider]
	if !ok {
		return nil
	}
	if !strings.HasPrefix(key, f.prefix) || len(key) < f.minLen {
		return domain.NewValidationError("apiKey", "Invalid API key format. "+f.hint)
	}
	return nil
}

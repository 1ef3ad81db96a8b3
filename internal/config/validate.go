package config

import (
	"fmt"
	"math"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if len(c.Auth.APIKeyEncryptionSecret) < 32 {
		return fmt.Errorf("auth.api_key_encryption_secret must be at least 32 characters (got %d)", len(c.Auth.APIKeyEncryptionSecret))
	}

	if err := c.Analysis.validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if err := c.LiveKit.validate(); err != nil {
		return fmt.Errorf("livekit: %w", err)
	}

	if c.Session.FinalizeTimeout <= 0 {
		return fmt.Errorf("session.finalize_timeout must be > 0 (got %v)", c.Session.FinalizeTimeout)
	}
	if c.Analysis.Timeout >= c.Session.FinalizeTimeout {
		return fmt.Errorf("analysis.timeout (%v) must be shorter than session.finalize_timeout (%v)",
			c.Analysis.Timeout, c.Session.FinalizeTimeout)
	}

	if c.RateLimit.WritePerMin <= 0 {
		return fmt.Errorf("rate_limit.write_per_min must be > 0 (got %d)", c.RateLimit.WritePerMin)
	}

	return nil
}

func (a *AnalysisConfig) validate() error {
	a.Provider = strings.ToLower(strings.TrimSpace(a.Provider))
	switch a.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderGemini, ProviderAnthropic, a.Provider)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	if a.MaxTokens <= 0 || a.MaxTokens > math.MaxInt32 {
		return fmt.Errorf("max_tokens must be in 1..%d (got %d)", math.MaxInt32, a.MaxTokens)
	}
	if a.RatePerMin <= 0 {
		return fmt.Errorf("rate_per_min must be > 0 (got %d)", a.RatePerMin)
	}
	return nil
}

func (l *LiveKitConfig) validate() error {
	if l.CompanionTTL <= 0 || l.PeerTTL <= 0 {
		return fmt.Errorf("grant TTLs must be > 0")
	}
	// Half-configured key pairs are almost always a deployment mistake.
	if (l.APIKey == "") != (l.APISecret == "") {
		return fmt.Errorf("api_key and api_secret must be set together")
	}
	return nil
}

package analysis

import (
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	FallbackSentimentScore = 7
	FallbackMoodBefore     = "Stressed"
	FallbackMoodAfter      = "Relieved"
)

// Fallback returns the deterministic result used when analysis fails.
// It always satisfies AnalysisResult.Validate.
func Fallback(moodBefore string) *domain.AnalysisResult {
	before := strings.TrimSpace(moodBefore)
	if before == "" {
		before = FallbackMoodBefore
	}
	return &domain.AnalysisResult{
		SentimentScore:       FallbackSentimentScore,
		MoodShift:            domain.MoodShift{Before: before, After: FallbackMoodAfter},
		PrimaryFocus:         []string{"Reflection"},
		KeyInsights:          []string{"Session completed successfully", "User engaged in dialogue"},
		SubconsciousPatterns: []string{},
		ActionItems:          []string{"Reflect on today's session", "Practice mindfulness"},
	}
}

package domain

import "fmt"

const (
	MinSentimentScore = 1
	MaxSentimentScore = 10
)

// MoodShift records the emotional state before and after a session.
type MoodShift struct {
	Before string
	After  string
}

// AnalysisResult is the structured post-session analysis.
type AnalysisResult struct {
	SentimentScore       int
	MoodShift            MoodShift
	PrimaryFocus         []string
	KeyInsights          []string
	SubconsciousPatterns []string
	ActionItems          []string
}

// Validate checks the population contract of an analysis result.
func (r *AnalysisResult) Validate() error {
	var errs []FieldError

	if r.SentimentScore < MinSentimentScore || r.SentimentScore > MaxSentimentScore {
		errs = append(errs, FieldError{
			Field:   "sentimentScore",
			Message: fmt.Sprintf("must be between %d and %d", MinSentimentScore, MaxSentimentScore),
		})
	}
	if r.MoodShift.Before == "" {
		errs = append(errs, FieldError{Field: "moodShift.before", Message: "required"})
	}
	if r.MoodShift.After == "" {
		errs = append(errs, FieldError{Field: "moodShift.after", Message: "required"})
	}
	if len(r.PrimaryFocus) == 0 {
		errs = append(errs, FieldError{Field: "primaryFocus", Message: "at least one tag required"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

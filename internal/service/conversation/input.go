package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	DefaultTitle = "New Session"

	maxTitleLength       = 200
	maxMoodLength        = 100
	maxInstructionLength = 2000
	maxTranscriptLines   = 5000
)

// CreateInput holds a client-recorded conversation.
type CreateInput struct {
	Title           string
	MoodBefore      string
	MoodAfter       string
	DurationSeconds int
	Transcript      []domain.TranscriptMessage
	Metadata        map[string]any
}

func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("too long (max %d)", maxTitleLength)})
	}
	if len(i.MoodBefore) > maxMoodLength || len(i.MoodAfter) > maxMoodLength {
		errs = append(errs, domain.FieldError{Field: "mood", Message: fmt.Sprintf("too long (max %d)", maxMoodLength)})
	}
	if i.DurationSeconds < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_seconds", Message: "must not be negative"})
	}
	errs = append(errs, validateTranscript(i.Transcript)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the editable fields. Nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	MoodAfter *string
	Metadata  map[string]any
}

func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil && len(strings.TrimSpace(*i.Title)) == 0 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if i.Title != nil && len(*i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("too long (max %d)", maxTitleLength)})
	}
	if i.MoodAfter != nil && len(*i.MoodAfter) > maxMoodLength {
		errs = append(errs, domain.FieldError{Field: "mood_after", Message: fmt.Sprintf("too long (max %d)", maxMoodLength)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AnalyzeInput is a stateless analysis request.
type AnalyzeInput struct {
	Transcript            []domain.TranscriptMessage
	UserAPIKey            string
	MoodBefore            string
	RefinementInstruction string
}

func (i *AnalyzeInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Transcript) == 0 {
		errs = append(errs, domain.FieldError{Field: "transcript", Message: "required"})
	}
	errs = append(errs, validateTranscript(i.Transcript)...)
	if len(i.RefinementInstruction) > maxInstructionLength {
		errs = append(errs, domain.FieldError{Field: "refinementInstruction", Message: fmt.Sprintf("too long (max %d)", maxInstructionLength)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReanalyzeInput asks for a fresh analysis of a stored conversation.
type ReanalyzeInput struct {
	RefinementInstruction string
	UserAPIKey            string
}

func (i *ReanalyzeInput) Validate() error {
	if len(i.RefinementInstruction) > maxInstructionLength {
		return domain.NewValidationError("refinementInstruction", fmt.Sprintf("too long (max %d)", maxInstructionLength))
	}
	return nil
}

func validateTranscript(lines []domain.TranscriptMessage) []domain.FieldError {
	if len(lines) > maxTranscriptLines {
		return []domain.FieldError{{Field: "transcript", Message: fmt.Sprintf("too many lines (max %d)", maxTranscriptLines)}}
	}
	for i, m := range lines {
		if !m.SpeakerRole.IsValid() {
			return []domain.FieldError{{Field: fmt.Sprintf("transcript[%d]", i), Message: "unknown speaker"}}
		}
	}
	return nil
}

func startedAtFor(endedAt time.Time, durationSeconds int) time.Time {
	return endedAt.Add(-time.Duration(durationSeconds) * time.Second)
}

package chatsession

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Domain types have no json tags, so the repo layer owns the stored layout.

type messageJSON struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type moodShiftJSON struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type analysisJSON struct {
	SentimentScore       int           `json:"sentimentScore"`
	MoodShift            moodShiftJSON `json:"moodShift"`
	PrimaryFocus         []string      `json:"primaryFocus"`
	KeyInsights          []string      `json:"keyInsights"`
	SubconsciousPatterns []string      `json:"subconsciousPatterns"`
	ActionItems          []string      `json:"actionItems"`
}

func marshalTranscript(msgs []domain.TranscriptMessage) ([]byte, error) {
	out := make([]messageJSON, len(msgs))
	for i, m := range msgs {
		out[i] = messageJSON{Role: string(m.SpeakerRole), Text: m.Text, Timestamp: m.Timestamp.UTC()}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return b, nil
}

func unmarshalTranscript(data []byte) ([]domain.TranscriptMessage, error) {
	if len(data) == 0 {
		return []domain.TranscriptMessage{}, nil
	}
	var in []messageJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	msgs := make([]domain.TranscriptMessage, len(in))
	for i, m := range in {
		msgs[i] = domain.TranscriptMessage{SpeakerRole: domain.SpeakerRole(m.Role), Text: m.Text, Timestamp: m.Timestamp}
	}
	return msgs, nil
}

// marshalAnalysis returns nil for a nil result (stored as NULL).
func marshalAnalysis(r *domain.AnalysisResult) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(analysisJSON{
		SentimentScore:       r.SentimentScore,
		MoodShift:            moodShiftJSON{Before: r.MoodShift.Before, After: r.MoodShift.After},
		PrimaryFocus:         r.PrimaryFocus,
		KeyInsights:          r.KeyInsights,
		SubconsciousPatterns: r.SubconsciousPatterns,
		ActionItems:          r.ActionItems,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}
	return b, nil
}

func unmarshalAnalysis(data []byte) (*domain.AnalysisResult, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var j analysisJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &domain.AnalysisResult{
		SentimentScore:       j.SentimentScore,
		MoodShift:            domain.MoodShift{Before: j.MoodShift.Before, After: j.MoodShift.After},
		PrimaryFocus:         j.PrimaryFocus,
		KeyInsights:          j.KeyInsights,
		SubconsciousPatterns: j.SubconsciousPatterns,
		ActionItems:          j.ActionItems,
	}, nil
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return b, nil
}

package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// transcriptLine is the client's message shape. The speaker is local when
// either isLocal or from.isLocal is set.
type transcriptLine struct {
	From      *lineSpeaker `json:"from,omitempty"`
	IsLocal   bool         `json:"isLocal"`
	Message   string       `json:"message"`
	Timestamp wireTime     `json:"timestamp"`
}

// lineSpeaker is either a participant object or, in stored transcripts, a
// bare identity string. A string carries no locality; the line's own
// isLocal decides.
type lineSpeaker struct {
	Identity string `json:"identity,omitempty"`
	IsLocal  bool   `json:"isLocal"`
}

func (p *lineSpeaker) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &p.Identity)
	}
	type plain lineSpeaker
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	*p = lineSpeaker(v)
	return nil
}

func (l transcriptLine) toDomain() domain.TranscriptMessage {
	role := domain.SpeakerRemote
	if l.IsLocal || (l.From != nil && l.From.IsLocal) {
		role = domain.SpeakerLocal
	}
	return domain.TranscriptMessage{
		SpeakerRole: role,
		Text:        l.Message,
		Timestamp:   time.Time(l.Timestamp),
	}
}

func toTranscript(lines []transcriptLine) []domain.TranscriptMessage {
	out := make([]domain.TranscriptMessage, len(lines))
	for i, l := range lines {
		out[i] = l.toDomain()
	}
	return out
}

func fromTranscript(msgs []domain.TranscriptMessage) []transcriptLine {
	out := make([]transcriptLine, len(msgs))
	for i, m := range msgs {
		out[i] = transcriptLine{
			IsLocal:   m.SpeakerRole == domain.SpeakerLocal,
			Message:   m.Text,
			Timestamp: wireTime(m.Timestamp),
		}
	}
	return out
}

// wireTime accepts epoch milliseconds or an RFC 3339 string and is written
// as RFC 3339.
type wireTime time.Time

func (t *wireTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		*t = wireTime(parsed)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = wireTime(time.UnixMilli(ms).UTC())
	return nil
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

type moodShiftResponse struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type analysisResponse struct {
	SentimentScore       int               `json:"sentimentScore"`
	MoodShift            moodShiftResponse `json:"moodShift"`
	PrimaryFocus         []string          `json:"primaryFocus"`
	KeyInsights          []string          `json:"keyInsights"`
	SubconsciousPatterns []string          `json:"subconsciousPatterns"`
	ActionItems          []string          `json:"actionItems"`
}

func toAnalysisResponse(r *domain.AnalysisResult) *analysisResponse {
	if r == nil {
		return nil
	}
	return &analysisResponse{
		SentimentScore:       r.SentimentScore,
		MoodShift:            moodShiftResponse{Before: r.MoodShift.Before, After: r.MoodShift.After},
		PrimaryFocus:         nonNil(r.PrimaryFocus),
		KeyInsights:          nonNil(r.KeyInsights),
		SubconsciousPatterns: nonNil(r.SubconsciousPatterns),
		ActionItems:          nonNil(r.ActionItems),
	}
}

type chatSessionResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Status          string            `json:"status"`
	RoomName        string            `json:"roomName,omitempty"`
	MoodBefore      string            `json:"mood_before,omitempty"`
	MoodAfter       string            `json:"mood_after,omitempty"`
	DurationSeconds int               `json:"duration_seconds"`
	Transcript      []transcriptLine  `json:"transcript"`
	Analysis        *analysisResponse `json:"analysis,omitempty"`
	Metadata        map[string]any    `json:"metadata"`
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func toChatSessionResponse(s *domain.ChatSession) chatSessionResponse {
	metadata := s.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return chatSessionResponse{
		ID:              s.ID.String(),
		Title:           s.Title,
		Status:          s.Status.String(),
		RoomName:        s.RoomName,
		MoodBefore:      s.MoodBefore,
		MoodAfter:       s.MoodAfter,
		DurationSeconds: s.DurationSeconds(),
		Transcript:      fromTranscript(s.Transcript),
		Analysis:        toAnalysisResponse(s.Analysis),
		Metadata:        metadata,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		CreatedAt:       s.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

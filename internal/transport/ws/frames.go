package ws

import (
	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Client frame types.
const (
	FrameStart   = "start"
	FrameMessage = "message"
	FrameEnd     = "end"
)

// Server frame types.
const (
	FrameState    = "state"
	FrameAnalysis = "analysis"
	FrameError    = "error"
)

// clientFrame is any frame sent by the client. A message line is local when
// role is "local" or isLocal is set.
type clientFrame struct {
	Type       string `json:"type"`
	MoodBefore string `json:"moodBefore,omitempty"`
	Role       string `json:"role,omitempty"`
	IsLocal    bool   `json:"isLocal,omitempty"`
	Text       string `json:"text,omitempty"`
}

func (f clientFrame) speaker() domain.SpeakerRole {
	if f.Role != "" {
		return domain.SpeakerRole(f.Role)
	}
	if f.IsLocal {
		return domain.SpeakerLocal
	}
	return domain.SpeakerRemote
}

type serverFrame struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId,omitempty"`
	State     string         `json:"state,omitempty"`
	Analysis  *analysisFrame `json:"analysis,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type analysisFrame struct {
	SentimentScore int `json:"sentimentScore"`
	MoodShift      struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"moodShift"`
	PrimaryFocus         []string `json:"primaryFocus"`
	KeyInsights          []string `json:"keyInsights"`
	SubconsciousPatterns []string `json:"subconsciousPatterns"`
	ActionItems          []string `json:"actionItems"`
}

func toAnalysisFrame(r *domain.AnalysisResult) *analysisFrame {
	f := &analysisFrame{
		SentimentScore:       r.SentimentScore,
		PrimaryFocus:         orEmpty(r.PrimaryFocus),
		KeyInsights:          orEmpty(r.KeyInsights),
		SubconsciousPatterns: orEmpty(r.SubconsciousPatterns),
		ActionItems:          orEmpty(r.ActionItems),
	}
	f.MoodShift.Before = r.MoodShift.Before
	f.MoodShift.After = r.MoodShift.After
	return f
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

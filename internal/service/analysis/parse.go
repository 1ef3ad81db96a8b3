package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// resultJSON is the wire shape the model is asked to produce.
type resultJSON struct {
	SentimentScore *float64 `json:"sentimentScore"`
	MoodShift      struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"moodShift"`
	PrimaryFocus         []string `json:"primaryFocus"`
	KeyInsights          []string `json:"keyInsights"`
	SubconsciousPatterns []string `json:"subconsciousPatterns"`
	ActionItems          []string `json:"actionItems"`
}

// ParseResult decodes model output into an AnalysisResult. Code fences are
// stripped and surrounding prose is ignored. Output that is not JSON or that
// breaks the population contract returns domain.ErrAnalysisParse.
func ParseResult(raw string) (*domain.AnalysisResult, error) {
	body, err := extractJSON(stripFences(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisParse, err)
	}

	var j resultJSON
	if err := json.Unmarshal([]byte(body), &j); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", domain.ErrAnalysisParse, err)
	}
	if j.SentimentScore == nil {
		return nil, fmt.Errorf("%w: sentimentScore missing", domain.ErrAnalysisParse)
	}

	res := &domain.AnalysisResult{
		SentimentScore: int(math.Round(*j.SentimentScore)),
		MoodShift: domain.MoodShift{
			Before: strings.TrimSpace(j.MoodShift.Before),
			After:  strings.TrimSpace(j.MoodShift.After),
		},
		PrimaryFocus:         cleanList(j.PrimaryFocus),
		KeyInsights:          cleanList(j.KeyInsights),
		SubconsciousPatterns: cleanList(j.SubconsciousPatterns),
		ActionItems:          cleanList(j.ActionItems),
	}

	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisParse, err)
	}
	return res, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string, e.g. "json".
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSON returns the text between the first '{' and the last '}'.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package analysis

import (
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	speakerUser      = "User"
	speakerTherapist = "Therapist"
	unknownMood      = "Unknown"
)

// FormatTranscript renders a transcript as "User: ..." / "Therapist: ..." lines.
func FormatTranscript(transcript []domain.TranscriptMessage) string {
	var sb strings.Builder
	for i, m := range transcript {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if m.SpeakerRole == domain.SpeakerLocal {
			sb.WriteString(speakerUser)
		} else {
			sb.WriteString(speakerTherapist)
		}
		sb.WriteString(": ")
		sb.WriteString(m.Text)
	}
	return sb.String()
}

// BuildPrompt returns the instruction sent to the text-generation service.
// A non-empty refinement asks for a fresh analysis through that lens; the
// output shape never changes.
func BuildPrompt(transcript []domain.TranscriptMessage, moodBefore, refinement string) string {
	mood := strings.TrimSpace(moodBefore)
	if mood == "" {
		mood = unknownMood
	}

	var sb strings.Builder
	sb.WriteString(`You are MindCure AI, a clinical psychologist and coach grounded in Cognitive Behavioral Therapy.
Analyze the therapy session transcript below. Look past the literal words for cognitive distortions, recurring patterns and emotional shifts.

Context: before the session the user described their mood as "`)
	sb.WriteString(mood)
	sb.WriteString("\".\n")

	if r := strings.TrimSpace(refinement); r != "" {
		sb.WriteString(`
REFINEMENT:
The user reviewed an earlier analysis of this session and asked for this focus:
"`)
		sb.WriteString(r)
		sb.WriteString(`"
Analyze the session again through that lens. Key insights, subconscious patterns and action items must address it directly.
`)
	}

	sb.WriteString(`
OUTPUT FORMAT:
Return ONLY a JSON object. No markdown and no code fences.
{
  "sentimentScore": <integer 1-10, 10 being peak mental wellbeing at the end of the session>,
  "moodShift": {
    "before": "<emotion before the session>",
    "after": "<emotion at the end of the session>"
  },
  "primaryFocus": ["<tag>", "<tag>"],
  "keyInsights": ["<specific observation>", "<specific observation>"],
  "subconsciousPatterns": ["<hidden driver or limiting belief>"],
  "actionItems": ["<concrete next step>", "<concrete next step>"]
}

TRANSCRIPT:
`)
	sb.WriteString(FormatTranscript(transcript))
	sb.WriteString(`

RULES:
- moodShift.before, moodShift.after and primaryFocus must always be populated.
- Prefer specific strategies over generic advice.
`)
	return sb.String()
}

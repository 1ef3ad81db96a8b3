package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/conversation"
)

const noAnalysisKeyMessage = "No API key available for analysis. Please add a key in Settings or configure the server."

//go:generate moq -out analysis_service_mock_test.go -pkg rest . analysisService

type analysisService interface {
	Analyze(ctx context.Context, input conversation.AnalyzeInput) (*domain.AnalysisResult, error)
}

// AnalysisHandler serves stateless transcript analysis.
type AnalysisHandler struct {
	svc analysisService
	log *slog.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc analysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, log: logger.With("handler", "analysis")}
}

type analysisRequest struct {
	Transcript            []transcriptLine `json:"transcript"`
	UserAPIKey            string           `json:"userApiKey"`
	MoodBefore            string           `json:"moodBefore"`
	RefinementInstruction string           `json:"refinementInstruction"`
}

// Analyze handles POST /api/analysis.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Analyze(r.Context(), conversation.AnalyzeInput{
		Transcript:            toTranscript(req.Transcript),
		UserAPIKey:            req.UserAPIKey,
		MoodBefore:            req.MoodBefore,
		RefinementInstruction: req.RefinementInstruction,
	})
	if err != nil {
		writeAnalysisError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalysisResponse(res))
}

// writeAnalysisError reports analysis failures in the shape clients of the
// analysis endpoints expect.
func writeAnalysisError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		writeError(w, http.StatusUnauthorized, noAnalysisKeyMessage)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotFound):
		handleError(log, w, r, err)
	default:
		log.ErrorContext(r.Context(), "analysis failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to generate analysis",
			Details: err.Error(),
		})
	}
}

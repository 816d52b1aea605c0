package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/workinghours/internal/application"
)

type evaluateService interface {
	Evaluate(ctx context.Context, at time.Time) application.Evaluation
}

type EvaluateHandler struct {
	service   evaluateService
	responder responder
}

func NewEvaluateHandler(service evaluateService, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{service: service, responder: newResponder(logger)}
}

func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var at time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("at")); raw != "" {
		parsed, err := parseInstant(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInstant)
			return
		}
		at = parsed
	}

	evaluation := h.service.Evaluate(r.Context(), at)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, evaluationDTO{
		EvaluatedAt: evaluation.At.UTC().Format(time.RFC3339),
		Within:      evaluation.Within,
		Reason:      string(evaluation.Reason),
	})
}

func parseInstant(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}

type evaluationDTO struct {
	EvaluatedAt string `json:"evaluated_at"`
	Within      bool   `json:"within_working_hours"`
	Reason      string `json:"reason"`
}

package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/workinghours/internal/application"
	"github.com/example/workinghours/internal/holiday"
	"github.com/example/workinghours/internal/schedule"
)

type holidayService interface {
	Regions(ctx context.Context) []string
	HolidaysForRegion(ctx context.Context, code string) ([]holiday.Holiday, error)
}

type HolidayHandler struct {
	service   holidayService
	responder responder
	logger    *slog.Logger
}

func NewHolidayHandler(service holidayService, logger *slog.Logger) *HolidayHandler {
	base := defaultLogger(logger)
	return &HolidayHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *HolidayHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "HolidayHandler", operation, attrs...)
}

func (h *HolidayHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRegionsResponse{Regions: h.service.Regions(r.Context())})
}

func (h *HolidayHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	code, ok := RegionCodeFromContext(r.Context())
	if !ok || strings.TrimSpace(code) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRegionCode)
		return
	}

	holidays, err := h.service.HolidaysForRegion(r.Context(), code)
	if err != nil {
		h.log(r.Context(), "ListHolidays", "region", code).ErrorContext(r.Context(), "holiday lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHolidaysResponse{
		Region:   strings.ToUpper(strings.TrimSpace(code)),
		Holidays: toHolidayDTOs(holidays),
	})
}

type listRegionsResponse struct {
	Regions []string `json:"regions"`
}

type holidayDTO struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	NextOccurrence string `json:"next_occurrence"`
}

type listHolidaysResponse struct {
	Region   string       `json:"region"`
	Holidays []holidayDTO `json:"holidays"`
}

func toHolidayDTOs(holidays []holiday.Holiday) []holidayDTO {
	out := make([]holidayDTO, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holidayDTO{
			Key:            h.Key,
			Name:           h.Name,
			NextOccurrence: h.NextOccurrence.Format(schedule.DateLayout),
		})
	}
	return out
}

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/workinghours/internal/application"
	"github.com/example/workinghours/internal/schedule"
)

type configService interface {
	ReplaceTimeRanges(ctx context.Context, candidates []schedule.TimeRangeCandidate) ([]schedule.TimeRange, error)
	TimeRanges(ctx context.Context) []schedule.TimeRange
	ReplaceExcludedDates(ctx context.Context, candidates []schedule.ExcludedDateCandidate) ([]schedule.ExcludedDate, error)
	ExcludedDates(ctx context.Context) []schedule.ExcludedDate
	SetTimezone(ctx context.Context, input application.TimezoneInput) (application.Settings, error)
	Timezone(ctx context.Context) application.Settings
}

type ConfigHandler struct {
	service   configService
	responder responder
	logger    *slog.Logger
}

func NewConfigHandler(service configService, logger *slog.Logger) *ConfigHandler {
	base := defaultLogger(logger)
	return &ConfigHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ConfigHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ConfigHandler", operation, attrs...)
}

func (h *ConfigHandler) ListTimeRanges(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ranges := h.service.TimeRanges(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTimeRangesResponse{TimeRanges: toTimeRangeDTOs(ranges)})
}

func (h *ConfigHandler) ReplaceTimeRanges(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req replaceTimeRangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ReplaceTimeRanges", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode time range batch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ReplaceTimeRanges", "candidates", len(req.TimeRanges))

	committed, err := h.service.ReplaceTimeRanges(r.Context(), req.toCandidates())
	if err != nil {
		logger.ErrorContext(r.Context(), "time range replacement failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "time ranges replaced", "count", len(committed))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTimeRangesResponse{TimeRanges: toTimeRangeDTOs(committed)})
}

func (h *ConfigHandler) ListExcludedDates(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dates := h.service.ExcludedDates(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listExcludedDatesResponse{ExcludedDates: toExcludedDateDTOs(dates)})
}

func (h *ConfigHandler) ReplaceExcludedDates(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req replaceExcludedDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ReplaceExcludedDates", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode excluded date batch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ReplaceExcludedDates", "candidates", len(req.ExcludedDates))

	committed, err := h.service.ReplaceExcludedDates(r.Context(), req.toCandidates())
	if err != nil {
		logger.ErrorContext(r.Context(), "excluded date replacement failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "excluded dates replaced", "count", len(committed))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listExcludedDatesResponse{ExcludedDates: toExcludedDateDTOs(committed)})
}

func (h *ConfigHandler) GetTimezone(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toTimezoneDTO(h.service.Timezone(r.Context())))
}

func (h *ConfigHandler) PutTimezone(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req timezoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "PutTimezone", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode timezone request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "PutTimezone", "timezone", req.Timezone)

	input := application.TimezoneInput{
		Timezone:         strings.TrimSpace(req.Timezone),
		UTCOffsetMinutes: req.UTCOffsetMinutes,
	}
	if req.Region != nil {
		region := strings.TrimSpace(*req.Region)
		input.Region = &region
	}

	settings, err := h.service.SetTimezone(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "timezone update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "timezone updated", "utc_offset_minutes", settings.UTCOffsetMinutes, "region", settings.Region)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toTimezoneDTO(settings))
}

type timeRangeDTO struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type replaceTimeRangesRequest struct {
	TimeRanges []timeRangeDTO `json:"time_ranges"`
}

func (r replaceTimeRangesRequest) toCandidates() []schedule.TimeRangeCandidate {
	out := make([]schedule.TimeRangeCandidate, 0, len(r.TimeRanges))
	for _, dto := range r.TimeRanges {
		out = append(out, schedule.TimeRangeCandidate{
			DayOfWeek: dto.DayOfWeek,
			StartTime: strings.TrimSpace(dto.StartTime),
			EndTime:   strings.TrimSpace(dto.EndTime),
		})
	}
	return out
}

type listTimeRangesResponse struct {
	TimeRanges []timeRangeDTO `json:"time_ranges"`
}

func toTimeRangeDTOs(ranges []schedule.TimeRange) []timeRangeDTO {
	out := make([]timeRangeDTO, 0, len(ranges))
	for _, tr := range ranges {
		out = append(out, timeRangeDTO{
			ID:        tr.ID,
			DayOfWeek: int(tr.Weekday),
			StartTime: tr.StartTime(),
			EndTime:   tr.EndTime(),
		})
	}
	return out
}

type excludedDateDTO struct {
	ID    string `json:"id,omitempty"`
	Date  string `json:"date"`
	Label string `json:"label,omitempty"`
}

type replaceExcludedDatesRequest struct {
	ExcludedDates []excludedDateDTO `json:"excluded_dates"`
}

func (r replaceExcludedDatesRequest) toCandidates() []schedule.ExcludedDateCandidate {
	out := make([]schedule.ExcludedDateCandidate, 0, len(r.ExcludedDates))
	for _, dto := range r.ExcludedDates {
		out = append(out, schedule.ExcludedDateCandidate{
			Date:  strings.TrimSpace(dto.Date),
			Label: strings.TrimSpace(dto.Label),
		})
	}
	return out
}

type listExcludedDatesResponse struct {
	ExcludedDates []excludedDateDTO `json:"excluded_dates"`
}

func toExcludedDateDTOs(dates []schedule.ExcludedDate) []excludedDateDTO {
	out := make([]excludedDateDTO, 0, len(dates))
	for _, d := range dates {
		out = append(out, excludedDateDTO{
			ID:    d.ID,
			Date:  d.Date.Format(schedule.DateLayout),
			Label: d.Label,
		})
	}
	return out
}

type timezoneRequest struct {
	Timezone         string  `json:"timezone"`
	UTCOffsetMinutes int     `json:"utc_offset_minutes"`
	Region           *string `json:"region"`
}

type timezoneDTO struct {
	Timezone         string `json:"timezone"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes"`
	Region           string `json:"region,omitempty"`
}

func toTimezoneDTO(settings application.Settings) timezoneDTO {
	return timezoneDTO{
		Timezone:         settings.Timezone,
		UTCOffsetMinutes: settings.UTCOffsetMinutes,
		Region:           settings.Region,
	}
}

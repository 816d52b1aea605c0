package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/workinghours/internal/application"
	"github.com/example/workinghours/internal/config"
	"github.com/example/workinghours/internal/holiday"
	httptransport "github.com/example/workinghours/internal/http"
	"github.com/example/workinghours/internal/logging"
	"github.com/example/workinghours/internal/persistence"
	"github.com/example/workinghours/internal/persistence/sqlite"
	"github.com/example/workinghours/internal/schedule"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(os.Stdout, "info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Ping(context.Background()); err != nil {
		logger.Error("storage is unreachable", "error", err)
		os.Exit(1)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	registry := holiday.NewRegistry()
	metrics := application.NewMetrics()
	store := newConfigStoreAdapter(storage)

	service := application.NewWorkingHoursServiceWithLogger(store, registry, uuid.NewString, time.Now, metrics, logger)

	if err := service.Load(ctx); err != nil {
		logger.Error("failed to load stored configuration", "error", err)
		os.Exit(1)
	}
	if err := seedDefaults(ctx, service, cfg); err != nil {
		logger.Error("failed to seed default settings", "error", err)
		os.Exit(1)
	}

	configHandler := httptransport.NewConfigHandler(service, logger)
	holidayHandler := httptransport.NewHolidayHandler(service, logger)
	evaluateHandler := httptransport.NewEvaluateHandler(service, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Config:     configHandler,
		Holidays:   holidayHandler,
		Evaluation: evaluateHandler,
		Metrics:    promhttp.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("working-hours API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedDefaults applies the configured timezone and region on first boot, when
// no settings row has been stored yet.
func seedDefaults(ctx context.Context, service *application.WorkingHoursService, cfg config.Config) error {
	settings := service.Timezone(ctx)
	if settings.Timezone != "UTC" || settings.UTCOffsetMinutes != 0 || settings.Region != "" {
		return nil
	}
	if cfg.Timezone == "UTC" && cfg.UTCOffsetMinutes == 0 && cfg.Region == "" {
		return nil
	}

	input := application.TimezoneInput{
		Timezone:         cfg.Timezone,
		UTCOffsetMinutes: cfg.UTCOffsetMinutes,
	}
	if cfg.Region != "" {
		input.Region = &cfg.Region
	}
	_, err := service.SetTimezone(ctx, input)
	return err
}

type configStoreAdapter struct {
	repo persistence.ConfigRepository
}

func newConfigStoreAdapter(repo persistence.ConfigRepository) *configStoreAdapter {
	return &configStoreAdapter{repo: repo}
}

func (a *configStoreAdapter) ReplaceTimeRanges(ctx context.Context, ranges []schedule.TimeRange) error {
	models := make([]persistence.TimeRange, 0, len(ranges))
	for i, tr := range ranges {
		models = append(models, persistence.TimeRange{
			ID:       tr.ID,
			Weekday:  int(tr.Weekday),
			StartMin: tr.StartMin,
			EndMin:   tr.EndMin,
			Position: i,
		})
	}
	return a.repo.ReplaceTimeRanges(ctx, models)
}

func (a *configStoreAdapter) ListTimeRanges(ctx context.Context) ([]schedule.TimeRange, error) {
	models, err := a.repo.ListTimeRanges(ctx)
	if err != nil {
		return nil, err
	}
	ranges := make([]schedule.TimeRange, 0, len(models))
	for _, model := range models {
		ranges = append(ranges, schedule.TimeRange{
			ID:       model.ID,
			Weekday:  time.Weekday(model.Weekday),
			StartMin: model.StartMin,
			EndMin:   model.EndMin,
		})
	}
	return ranges, nil
}

func (a *configStoreAdapter) ReplaceExcludedDates(ctx context.Context, dates []schedule.ExcludedDate) error {
	models := make([]persistence.ExcludedDate, 0, len(dates))
	for i, d := range dates {
		models = append(models, persistence.ExcludedDate{
			ID:       d.ID,
			Date:     d.Date,
			Label:    d.Label,
			Position: i,
		})
	}
	return a.repo.ReplaceExcludedDates(ctx, models)
}

func (a *configStoreAdapter) ListExcludedDates(ctx context.Context) ([]schedule.ExcludedDate, error) {
	models, err := a.repo.ListExcludedDates(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]schedule.ExcludedDate, 0, len(models))
	for _, model := range models {
		dates = append(dates, schedule.ExcludedDate{
			ID:    model.ID,
			Date:  model.Date,
			Label: model.Label,
		})
	}
	return dates, nil
}

func (a *configStoreAdapter) SaveSettings(ctx context.Context, settings application.Settings) error {
	return a.repo.SaveSettings(ctx, persistence.Settings{
		Timezone:         settings.Timezone,
		UTCOffsetMinutes: settings.UTCOffsetMinutes,
		Region:           settings.Region,
	})
}

func (a *configStoreAdapter) LoadSettings(ctx context.Context) (application.Settings, error) {
	stored, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return application.Settings{}, err
	}
	return application.Settings{
		Timezone:         stored.Timezone,
		UTCOffsetMinutes: stored.UTCOffsetMinutes,
		Region:           stored.Region,
	}, nil
}

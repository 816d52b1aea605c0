package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Config     *ConfigHandler
	Holidays   *HolidayHandler
	Evaluation *EvaluateHandler
	Metrics    http.Handler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Config != nil {
		mux.HandleFunc("/time-ranges", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Config.ListTimeRanges(w, r)
			case http.MethodPut:
				cfg.Config.ReplaceTimeRanges(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
		mux.HandleFunc("/excluded-dates", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Config.ListExcludedDates(w, r)
			case http.MethodPut:
				cfg.Config.ReplaceExcludedDates(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
		mux.HandleFunc("/timezone", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Config.GetTimezone(w, r)
			case http.MethodPut:
				cfg.Config.PutTimezone(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Holidays != nil {
		mux.HandleFunc("/regions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Holidays.ListRegions(w, r)
		})
		mux.HandleFunc("/regions/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/regions/")
			code, ok := strings.CutSuffix(rest, "/holidays")
			if !ok || code == "" || strings.Contains(code, "/") {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			ctx := ContextWithRegionCode(r.Context(), code)
			cfg.Holidays.ListHolidays(w, r.WithContext(ctx))
		})
	}

	if cfg.Evaluation != nil {
		mux.HandleFunc("/working-hours", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Evaluation.Evaluate(w, r)
		})
	}

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

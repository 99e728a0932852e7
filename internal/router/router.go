package router

import (
	"encoding/json"
	"net/http"

	mem "asclepius-api/internal/adapters/storage/memory"
	"asclepius-api/internal/config"
	"asclepius-api/internal/docs"
	"asclepius-api/internal/domain/diagnosis"
	"asclepius-api/internal/middleware"
	"asclepius-api/internal/observability"
	"asclepius-api/internal/platform/apierror"
	"asclepius-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Config: si es nil usa config.New().
	Config *config.Config

	// Logger: si es nil, no loguea nada.
	Logger logger.Logger

	// Registry recibe las métricas y respalda /metrics. Si es nil se crea uno
	// nuevo (así los tests no chocan entre sí).
	Registry *prometheus.Registry

	// History es del caller para poder vaciarlo en el shutdown.
	// Opcional: si no viene, in-memory con Config.HistoryLimit.
	History diagnosis.Repository

	// Clock: por defecto el reloj real.
	Clock clockwork.Clock
}

type statusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	history := opts.History
	if history == nil {
		history = mem.NewHistoryRepo(cfg.HistoryLimit)
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	metrics := observability.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Recover(log))

	// antes de cualquier ruta, así los subrouters los heredan
	r.NotFound(apierror.NotFound)
	r.MethodNotAllowed(apierror.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{
			Message: "Asclepius API is running!",
			Status:  "running",
			Version: cfg.Version,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: cfg.AppName,
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.Version = cfg.Version
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	classifier := diagnosis.NewClassifier(cfg.EmergencyKeywords)
	svc := diagnosis.NewService(history, classifier,
		diagnosis.WithClock(clock),
		diagnosis.WithObserver(metrics),
	)

	diagnosis.RegisterRoutes(r, svc, log)

	log.Debug("routes registered", map[string]any{
		"emergency_keywords": svc.Keywords(),
		"history_limit":      cfg.HistoryLimit,
		"swagger":            cfg.SwaggerEnabled,
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "medicine-tracker/docs"
	mem "medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/reminders"
	"medicine-tracker/internal/domain/schedules"
	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/platform/httpx"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/ratelimit"
	"medicine-tracker/internal/ports/auth"
	"medicine-tracker/internal/ports/storage"
)

// Backend es la persistencia completa: repos por módulo + unidad de trabajo.
type Backend interface {
	storage.Transactor
	Medicines() medicines.Repository
	Schedules() schedules.Repository
	History() history.Repository
	Reminders() reminders.Repository
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, in-memory.
	Backend Backend

	Logger      logger.Logger
	Metrics     *metrics.Metrics
	RateLimiter *ratelimit.KeyedLimiter

	CORSAllowedOrigins []string
	Environment        string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	backend := opts.Backend
	if backend == nil {
		backend = mem.NewStore()
	}
	env := opts.Environment
	if env == "" {
		env = "development"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(opts.RateLimiter, opts.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo (history primero: schedules registra tomas a través de él)
	historySvc := history.NewService(backend.History(), backend.Medicines(), history.WithMetrics(opts.Metrics))
	schedulesSvc := schedules.NewService(backend.Schedules(), backend.Medicines(), historySvc, backend, schedules.WithMetrics(opts.Metrics))
	medicinesSvc := medicines.NewService(backend.Medicines(), schedulesSvc, backend, medicines.WithMetrics(opts.Metrics))
	remindersSvc := reminders.NewService(backend.Reminders(), backend.Medicines())

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			httpx.WriteJSON(w, http.StatusOK, map[string]any{
				"status":      "OK",
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
				"environment": env,
			})
		})

		// Rutas por módulo
		medicines.RegisterRoutes(api, medicinesSvc)
		schedules.RegisterRoutes(api, schedulesSvc)
		history.RegisterRoutes(api, historySvc, medicinesSvc)
		reminders.RegisterRoutes(api, remindersSvc)
	})

	return r
}

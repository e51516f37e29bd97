package handlers

import (
	"CycleKeeper/internal/config"
	"CycleKeeper/internal/middleware"
	"CycleKeeper/internal/service"
	"CycleKeeper/web"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	analysisService *service.AnalysisService,
	statsService *service.StatsService,
	logger *zap.SugaredLogger,
	config *config.Config,
) (*Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	analysisHandler := NewAnalysisHandler(analysisService, statsService, logger)
	healthHandler := NewHealthHandler(analysisService)
	pageHandler, err := NewPageHandler(analysisService, statsService, logger)
	if err != nil {
		return nil, err
	}

	// Встроенная статика и метрики
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// HTML routes
	r.Get("/", pageHandler.Home)
	r.Get("/login", pageHandler.Login)
	r.Get("/dashboard", pageHandler.Dashboard)
	r.Get("/analysis", pageHandler.Analysis)
	r.Get("/history", pageHandler.History)

	r.Get("/health", healthHandler.Health)

	// API routes
	r.Route("/api", func(api chi.Router) {
		if len(config.CORSOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   config.CORSOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}

		api.Get("/status", healthHandler.Status)

		api.Post("/analyze", analysisHandler.Analyze)
		api.Get("/analysis/history", analysisHandler.History)

		api.Post("/user/register", userHandler.Register)
		api.Post("/user/login", userHandler.Login)
		api.Post("/user/logout", userHandler.Logout)
		api.Get("/user/status", userHandler.Status)
	})

	return &Handler{Router: r}, nil
}

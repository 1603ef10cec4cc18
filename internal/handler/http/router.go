package http

import (
	"log/slog"
	"os"

	"github.com/crewlane/compliance-backend-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(cfg *config.Config, contractHandler ContractHandler, complianceHandler ComplianceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewlane-compliance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/workers/{workerID}", func(r chi.Router) {
			r.Get("/contracts", contractHandler.GetWorkerContracts)
			r.Get("/timeline", contractHandler.GetWorkerTimeline)
			r.Get("/alerts", complianceHandler.GetWorkerAlerts)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", contractHandler.Create)
			r.Patch("/{contractID}/status", contractHandler.UpdateStatus)
			r.Post("/{contractID}/link", contractHandler.LinkOrphan)
		})

		r.Route("/compliance", func(r chi.Router) {
			r.Get("/alerts", complianceHandler.ListAlerts)
			r.Get("/alerts/stream", complianceHandler.Stream)
		})
	})
	return r
}

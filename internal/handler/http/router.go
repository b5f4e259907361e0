package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

type Handlers struct {
	Auth        AuthHandler
	Staff       StaffHandler
	Catalog     CatalogHandler
	Shift       ShiftHandler
	Record      RecordHandler
	Performance PerformanceHandler
	Report      ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffperf"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequireManager)

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", h.Staff.List)
				r.Post("/", h.Staff.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Staff.Get)
					r.Put("/status", h.Staff.UpdateStatus)
					r.Delete("/", h.Staff.Delete)
				})
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", h.Catalog.List)
				r.Post("/", h.Catalog.Create)
				r.Delete("/{id}", h.Catalog.Delete)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Post("/check-in", h.Shift.CheckIn)
				r.Post("/check-out", h.Shift.CheckOut)
			})

			r.Route("/records", func(r chi.Router) {
				r.Get("/", h.Record.List)
				r.Post("/", h.Record.Create)
				r.Get("/{id}", h.Record.Get)
			})

			r.Route("/performance", func(r chi.Router) {
				r.Get("/dashboard", h.Performance.Dashboard)
				r.Get("/leaderboard", h.Performance.Leaderboard)
				r.Get("/warnings", h.Performance.Warnings)
				r.Get("/salary", h.Performance.SalaryEstimates)
				r.Get("/snapshots", h.Performance.Snapshots)
				r.Get("/staff/{id}", h.Performance.StaffDetail)
			})

			r.Get("/reports/performance.xlsx", h.Report.PerformanceWorkbook)
		})
	})
	return r
}

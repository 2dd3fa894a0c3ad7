package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

type Handlers struct {
	Salary       SalaryHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Holiday      HolidayHandler
	WorkSettings WorkSettingsHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie))
			r.Use(middleware.AuthRequired)

			// Employee self-service
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Post("/attendance/check-in", h.Attendance.CheckIn)
				r.Post("/attendance/check-out", h.Attendance.CheckOut)
				r.Post("/leaves", h.Leave.CreateRequest)
			})

			// Manager or owner
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Route("/salary", func(r chi.Router) {
					r.Post("/generate", h.Salary.GenerateBatch)
					r.Get("/generate", h.Salary.ListByPeriod)
					r.Post("/individual", h.Salary.GenerateIndividual)
					r.Post("/approve", h.Salary.Approve)
					r.Patch("/pay", h.Salary.MarkPaid)

					r.Route("/profiles/{employeeId}", func(r chi.Router) {
						r.Get("/", h.Salary.GetProfile)
						r.Put("/", h.Salary.UpsertProfile)
					})

					r.Get("/{id}", h.Salary.Get)
				})

				r.Route("/attendance/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Put("/status", h.Attendance.UpdateStatus)
				})

				r.Route("/leaves/{id}", func(r chi.Router) {
					r.Get("/", h.Leave.GetRequest)
					r.Put("/status", h.Leave.UpdateStatus)
				})

				r.Route("/settings/work", func(r chi.Router) {
					r.Get("/", h.WorkSettings.Get)
					r.Put("/", h.WorkSettings.Update)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", h.Holiday.List)
					r.Post("/", h.Holiday.Create)
					r.Post("/import", h.Holiday.Import)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})
		})
	})

	return r
}

// NewLogger builds the JSON slog logger with the ECS field schema used for request logs.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

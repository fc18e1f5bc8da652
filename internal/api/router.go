package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/feedbackhub/feedback-api/docs"
	"github.com/feedbackhub/feedback-api/internal/api/handler"
	"github.com/feedbackhub/feedback-api/internal/api/middleware"
	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/policy"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/http/handlers"
)

const corsMaxAge = 600

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Feedback  ports.FeedbackService
	Readiness *handlers.ReadinessHandler

	CORSOrigins []string
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		MaxAge:       corsMaxAge,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: cfg.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	userHandler := handler.NewUserHandler(cfg.Directory)
	feedbackHandler := handler.NewFeedbackHandler(cfg.Feedback)
	authMiddleware := middleware.Auth(cfg.Auth)
	employeeOnly := func(message string) echo.MiddlewareFunc {
		return middleware.RBAC(message, domain.RoleEmployee)
	}

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if cfg.Readiness != nil {
		e.GET("/health/ready", cfg.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", authMiddleware)
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/update-profile", authHandler.UpdateProfile)
	protected.PUT("/auth/update-manager", authHandler.UpdateManager, employeeOnly(policy.EmployeesOnlyChangeManager))

	// --- Directory ---
	protected.GET("/team", userHandler.Team)
	protected.GET("/managers", userHandler.Managers)
	protected.GET("/users/:id", userHandler.Get)
	protected.POST("/request-feedback", userHandler.RequestFeedback, employeeOnly(policy.EmployeesOnlyRequestFeedback))

	// --- Feedback ---
	protected.POST("/feedback", feedbackHandler.Create)
	protected.GET("/feedback", feedbackHandler.List)
	protected.GET("/feedback/received", feedbackHandler.Received, employeeOnly(policy.EmployeesOnlyReceived))
	protected.GET("/feedback/given", feedbackHandler.Given, employeeOnly(policy.EmployeesOnlyGiven))
	protected.PUT("/feedback/:id", feedbackHandler.Update)
	protected.PATCH("/feedback/:id/acknowledge", feedbackHandler.Acknowledge)
	protected.GET("/stats", feedbackHandler.Stats)

	return e
}

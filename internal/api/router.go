package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campusconnect/alumni-portal/docs"
	"github.com/campusconnect/alumni-portal/internal/api/handler"
	"github.com/campusconnect/alumni-portal/internal/api/middleware"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/http/handlers"
)

// Services are the application services the router exposes.
type Services struct {
	Auth             ports.AuthService
	Sessions         ports.SessionService
	Submissions      ports.SubmissionService
	Placements       ports.PlacementService
	Notifications    ports.NotificationService
	Users            ports.UserService
	PreRegistrations ports.PreRegistrationService
}

// Options tunes the cross-cutting middleware.
type Options struct {
	AllowOrigins  []string
	AuthRateLimit float64 // requests per second per IP on /api/auth; <= 0 disables
	HealthChecks  []handlers.Check
	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(echomiddleware.BodyLimit("1M"))
	if len(opts.AllowOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: opts.AllowOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "campus_connect",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	sessionHandler := handler.NewSessionHandler(svc.Sessions)
	submissionHandler := handler.NewSubmissionHandler(svc.Submissions)
	placementHandler := handler.NewPlacementHandler(svc.Placements)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	userHandler := handler.NewUserHandler(svc.Users, svc.PreRegistrations)

	requireAuth := middleware.Auth(svc.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	limited := middleware.RateLimit(opts.AuthRateLimit)
	auth.POST("/signup", authHandler.Signup, limited)
	auth.POST("/login", authHandler.Login, limited)
	auth.POST("/check-eligibility", authHandler.CheckEligibility, limited)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.PUT("/password", authHandler.ChangePassword, requireAuth)

	// --- Sessions ---
	sessions := api.Group("/sessions", requireAuth)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/stats", sessionHandler.Stats)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.POST("", sessionHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleFaculty, domain.RoleAlumni))
	sessions.PUT("/:id", sessionHandler.Update, adminOnly)
	sessions.DELETE("/:id", sessionHandler.Delete, adminOnly)
	sessions.POST("/:id/join", sessionHandler.Join)
	sessions.POST("/:id/leave", sessionHandler.Leave)

	// --- Submissions and placements ---
	submissions := api.Group("/submissions", requireAuth)
	submissions.GET("", submissionHandler.List)
	submissions.GET("/:id", submissionHandler.Get)
	submissions.POST("", submissionHandler.Create, middleware.RBAC(domain.RoleStudent))
	submissions.PUT("/:id", submissionHandler.Review, adminOnly)

	placements := api.Group("/placements", requireAuth)
	placements.GET("", placementHandler.List)
	placements.GET("/:id", placementHandler.Get)
	placements.POST("", placementHandler.Create, middleware.RBAC(domain.RoleStudent))
	placements.PUT("/:id", placementHandler.Review, adminOnly)
	placements.DELETE("/:id", placementHandler.Delete)

	// --- Notifications and profile ---
	notifications := api.Group("/notifications", requireAuth)
	notifications.GET("", notificationHandler.Inbox)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)

	api.PUT("/users/me", userHandler.UpdateProfile, requireAuth)

	// --- Admin ---
	admin := api.Group("/admin", requireAuth, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/activate", userHandler.Activate)
	admin.PUT("/users/:id/deactivate", userHandler.Deactivate)
	admin.GET("/pre-registrations", userHandler.ListPreRegistrations)
	admin.POST("/pre-registrations", userHandler.CreatePreRegistration)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

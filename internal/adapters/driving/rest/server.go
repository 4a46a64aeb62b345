package rest

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driving"
)

// readyTimeout bounds the readiness probe.
const readyTimeout = 2 * time.Second

// Services are the driving ports the HTTP adapter calls.
type Services struct {
	Users       driving.UserService
	Consent     driving.ConsentService
	Integration driving.IntegrationService
	Importer    driving.ImportService
	Workflows   driving.WorkflowService
}

// Config configures the HTTP adapter.
type Config struct {
	// DashboardURL receives the browser after the Google callback.
	DashboardURL string
	// AllowOrigins lists CORS origins. Empty allows any origin.
	AllowOrigins []string
	// Ready reports whether dependencies can serve traffic. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Server owns the fiber application.
type Server struct {
	app      *fiber.App
	config   Config
	services Services
	validate *validator.Validate
}

// NewServer builds the application and registers every route.
func NewServer(cfg Config, services Services) *Server {
	validate := validator.New(validator.WithRequiredStructEnabled())

	s := &Server{
		config:   cfg,
		services: services,
		validate: validate,
	}
	s.app = fiber.New(fiber.Config{
		AppName:         "WorkflowHub",
		ErrorHandler:    s.handleFiberError,
		StructValidator: structValidator{validate: validate},
	})
	s.routes()
	return s
}

// App returns the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	app := s.app

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.allowOrigins(),
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
	}))
	app.Use(accessLog())

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker(healthcheck.Config{
		Probe: s.ready,
	}))

	app.Get("/oauth/google/callback", s.googleCallback)

	api := app.Group("/api", s.authenticate)

	g := api.Group("/google")
	g.Get("/auth", s.beginConsent)
	g.Post("/auth", s.completeConsent)
	g.Delete("/auth", s.disconnect)
	g.Get("/status", s.connectionStatus)
	g.Get("/calendar/events", s.calendarEvents)
	g.Get("/drive/files", s.driveFiles)
	g.Get("/gmail/labels", s.mailLabels)

	imp := api.Group("/import")
	imp.Post("/calendar-workflows", s.importFrom(domain.ImportSourceCalendar))
	imp.Post("/gmail-workflows", s.importFrom(domain.ImportSourceGmail))
	imp.Post("/drive-workflows", s.importFrom(domain.ImportSourceDrive))

	w := api.Group("/workflows")
	w.Get("/", s.listWorkflows)
	w.Get("/:id", s.getWorkflow)
}

func (s *Server) allowOrigins() []string {
	if len(s.config.AllowOrigins) == 0 {
		return []string{"*"}
	}
	return s.config.AllowOrigins
}

func (s *Server) ready(c fiber.Ctx) bool {
	if s.config.Ready == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
	defer cancel()
	return s.config.Ready(ctx) == nil
}

// structValidator adapts go-playground/validator to fiber's binder.
type structValidator struct {
	validate *validator.Validate
}

func (v structValidator) Validate(out any) error {
	return v.validate.Struct(out)
}

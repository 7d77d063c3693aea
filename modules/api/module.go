package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/movies-explorer-api/modules/auth"
	"github.com/example/movies-explorer-api/modules/movies"
	ratelimitmod "github.com/example/movies-explorer-api/modules/ratelimit"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app             *fiber.App
	authAdapter     auth.AuthPort
	moviesAdapter   movies.MoviesPort
	rateLimitModule *ratelimitmod.Module
	port            int
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(port int) *APIModule {
	return &APIModule{
		port: port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "movies"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "movies":
		m.moviesAdapter = movies.NewMoviesAdapter(container)
	}
}

// SetRateLimitModule attaches the optional rate limiting module.
func (m *APIModule) SetRateLimitModule(rlm *ratelimitmod.Module) {
	m.rateLimitModule = rlm
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil || m.moviesAdapter == nil {
		return fmt.Errorf("auth and movies dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "Movies Explorer API",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes. The auth gate runs before every
// route except signup, signin and the health check.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authAdapter, m.moviesAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	if m.rateLimitModule != nil {
		limit := m.rateLimitModule.IPRateLimit()
		m.app.Post("/signup", limit, handlers.Signup)
		m.app.Post("/signin", limit, handlers.Signin)
	} else {
		m.app.Post("/signup", handlers.Signup)
		m.app.Post("/signin", handlers.Signin)
	}

	guard := AuthMiddleware(m.authAdapter)

	users := m.app.Group("/users", guard)
	users.Get("/me", handlers.GetMe)
	users.Patch("/me", handlers.UpdateMe)

	moviesRoutes := m.app.Group("/movies", guard)
	moviesRoutes.Post("/", handlers.CreateMovie)
	moviesRoutes.Get("/", handlers.ListMovies)
	moviesRoutes.Delete("/:movieId", handlers.DeleteMovie)

	// Unmatched routes
	m.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Requested resource not found",
		})
	})
}

// customErrorHandler handles errors escaping Fiber routes.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal error occurred"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Message: message,
	})
}

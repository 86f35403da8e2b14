package server

import (
	"fmt"
	"net/http"

	"provide-client/internal/core/config"
	"provide-client/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "provide-client/docs/swagger"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	MockMode  bool   `json:"mock_mode"`
	CacheMode string `json:"cache"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "provide-client",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Named("http"),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	s := &Server{
		App: app,
		cfg: cfg,
	}
	app.Get("/health", s.health)
	return s
}

// health handles GET /health.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) health(c *fiber.Ctx) error {
	cacheMode := "disabled"
	if s.cfg.Cache.Enabled() {
		cacheMode = "redis"
	}
	return c.Status(http.StatusOK).JSON(HealthResponse{
		Status:    "ok",
		MockMode:  s.cfg.Provide.MockMode,
		CacheMode: cacheMode,
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

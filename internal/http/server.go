package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"call-metrics-service/internal/config"
	"call-metrics-service/internal/controller"
	"call-metrics-service/internal/logger"
	"call-metrics-service/internal/routes"
	"call-metrics-service/internal/telemetry"
)

// Server wraps the Fiber application setup.
type Server struct {
	app *fiber.App
}

// NewServer configures routes and middleware.
func NewServer(appCfg *config.Config, dashboardController controller.DashboardController, log *logger.Logger) *Server {
	fiberCfg := fiber.Config{
		DisableStartupMessage: true,
		Prefork:               appCfg.FiberPrefork,
	}
	app := fiber.New(fiberCfg)
	app.Use(recover.New())
	app.Use(observeRequests(log))

	routes.Register(app, dashboardController)

	return &Server{app: app}
}

// Listen runs the server on provided addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully closes the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func observeRequests(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		telemetry.RecordHTTPRequest(c.Path(), strconv.Itoa(status))
		log.WithRequest(c).WithField("status", status).Debug("request served")

		return err
	}
}

package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/emergency-microservice/internal/config"
	"github.com/emergency-microservice/internal/delivery/http/handler"
	"github.com/emergency-microservice/internal/delivery/http/middleware"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	emergencyHandler *handler.EmergencyHandler
	authHandler      *handler.AuthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	emergencyHandler *handler.EmergencyHandler,
	authHandler *handler.AuthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Emergency Response Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		emergencyHandler: emergencyHandler,
		authHandler:      authHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth routes
	auth := s.app.Group("/auth")
	auth.Post("/signup", s.authHandler.SignUp)
	auth.Post("/signin", s.authHandler.SignIn)

	// Emergency routes: исторический и явный алиасы одного обработчика
	s.app.Post("/emergency", s.emergencyHandler.HandleEmergency)
	s.app.Post("/emergency/nearest-hospital", s.emergencyHandler.HandleEmergency)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App возвращает приложение Fiber (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := errors.ErrInternalServer.Message

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{
			Message: message,
		})
	}
}

package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"socialdb/internal/config"
	"socialdb/internal/graphql"
	"socialdb/internal/handlers"
	"socialdb/internal/logger"
	"socialdb/internal/middleware"
	"socialdb/internal/models"
	"socialdb/internal/repositories"
	"socialdb/internal/services"
	"socialdb/internal/validation"
	"socialdb/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	config.LoadDotEnv("")
	cfg, err := config.Load(viper.New())
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}

	// --- Domain events ---
	// Without RABBITMQ_URL the service runs standalone and publishes nothing.
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.Exchange}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient

		audit := log.WithField("component", "audit")
		if err := mqClient.Consume(cfg.AuditQueue, "user.#", rabbitmq.AuditHandler(audit)); err != nil {
			log.WithError(err).Warn("Failed to start audit consumer")
		}
	}

	app, _, err := NewApp(cfg, log, publisher)
	if err != nil {
		log.WithError(err).Fatal("Failed to create app")
	}

	// --- Start HTTP Server ---
	go func() {
		log.WithField("port", cfg.AppPort).Info("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}

// NewApp builds the store, the services and the Fiber app serving both the
// REST and the GraphQL facade. pub may be nil.
func NewApp(cfg *config.Config, log *logrus.Entry, pub services.EventPublisher) (*fiber.App, *repositories.DB, error) {
	// --- Store ---
	db, err := repositories.NewDB()
	if err != nil {
		return nil, nil, err
	}
	if err := db.SeedMemberTypes(models.DefaultMemberTypes()); err != nil {
		return nil, nil, err
	}

	// --- Services ---
	v := validation.New()
	svc := graphql.Services{
		Users:       services.NewUserService(db, log),
		Profiles:    services.NewProfileService(db, log),
		Posts:       services.NewPostService(db, log),
		MemberTypes: services.NewMemberTypeService(db),
		Integrity:   services.NewIntegrityService(db, pub, log),
		Aggregation: services.NewAggregationService(db, log),
	}

	schema, err := graphql.NewSchema(graphql.NewResolver(svc, v, log), cfg.GraphQLMaxDepth)
	if err != nil {
		return nil, nil, err
	}

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		ErrorHandler:          errorHandler(log),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(compress.New())

	if cfg.MetricsEnabled {
		prometheus := fiberprometheus.New(cfg.ServiceName)
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// --- Routes ---
	handlers.NewHealthHandler(db, func() string { return eventsStatus(pub) }).RegisterRoutes(app)
	handlers.NewUserHandler(svc.Users, svc.Integrity, v, log).RegisterRoutes(app)
	handlers.NewProfileHandler(svc.Profiles, v, log).RegisterRoutes(app)
	handlers.NewPostHandler(svc.Posts, v, log).RegisterRoutes(app)
	handlers.NewMemberTypeHandler(svc.MemberTypes, v, log).RegisterRoutes(app)
	graphql.NewHandler(schema, log).RegisterRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Resource not found",
			"url":     c.OriginalURL(),
		})
	})

	return app, db, nil
}

// eventsStatus reports the publisher state for /health. Publishers that track
// their connection report whether it is still open.
func eventsStatus(pub services.EventPublisher) string {
	if pub == nil {
		return "disabled"
	}
	if c, ok := pub.(interface{ IsClosed() bool }); ok {
		if c.IsClosed() {
			return "disconnected"
		}
		return "connected"
	}
	return "enabled"
}

// errorHandler renders errors no handler answered itself, such as panics
// caught by recover.
func errorHandler(log *logrus.Entry) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message":   err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/config"
	"github.com/example/saluvia/internal/database"
	"github.com/example/saluvia/internal/fixtures"
	"github.com/example/saluvia/internal/handlers"
	"github.com/example/saluvia/internal/logging"
	"github.com/example/saluvia/internal/middleware"
	"github.com/example/saluvia/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
	log.Info("Server stopped")
}

// run serves until SIGINT or SIGTERM. Every resource it opens is released
// before it returns.
func run(cfg *config.Config) error {
	showcase, err := fixtures.Default()
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	service := catalog.NewService(store,
		catalog.WithTimeout(cfg.StoreTimeout),
		catalog.WithLogger(logging.WithComponent("catalog")),
	)

	app := fiber.New(fiber.Config{
		AppName:               "Saluvia Catalog",
		UnescapePath:          true,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLog(logging.WithComponent("http")))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	routes.Register(app, service, showcase)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting server on :%s", cfg.AppPort)
		return app.Listen(":" + cfg.AppPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Warn("Server shutdown incomplete")
		}
		return closeStore(shutdownCtx)
	})

	return g.Wait()
}

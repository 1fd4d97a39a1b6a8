// Package server assembles the embedded product backend: a Fiber app with
// the same wire contract as the external mock data server the console is
// normally pointed at. It backs the client's tests and local development.
package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vitrina/internal/handlers"
	"vitrina/internal/models"
	"vitrina/internal/repositories"
	"vitrina/internal/services"
)

// Options configures the embedded backend.
type Options struct {
	// DatabaseDSN selects storage: empty means in-memory, a postgres DSN
	// or sqlite path selects the corresponding GORM repository.
	DatabaseDSN string
	// Publisher receives product mutation events; nil disables publishing.
	Publisher services.EventPublisher
}

// New builds the backend Fiber app with its repository, service and routes
// wired. The caller starts it with Listen or Listener.
func New(opts Options) (*fiber.App, error) {
	repo, err := openRepository(opts.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	productService := services.NewProductService(repo, opts.Publisher)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(logger.New())

	productHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// openRepository picks the storage backend from the DSN: postgres for
// server DSNs, sqlite for file paths and ":memory:", the plain in-memory
// repository when no DSN is configured at all.
func openRepository(dsn string) (repositories.ProductRepository, error) {
	if dsn == "" {
		return repositories.NewMemoryProductRepository(), nil
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repositories.NewGORMProductRepository(db), nil
}

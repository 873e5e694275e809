package main

import (
	"context"
	"fmt"
	"inventory_service/config"
	"inventory_service/internal/delivery"
	"inventory_service/internal/domain"
	"inventory_service/internal/repository"
	"inventory_service/internal/usecase"
	"inventory_service/pkg/db"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HTML content for the test page
const htmlTestPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Inventory Service API Test Page</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-put { color: #fca130; }
        .method-delete { color: #f93e3e; }
        a { color: #007bff; text-decoration: none; }
        a:hover { text-decoration: underline; }
        p > code { font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Inventory Service API Endpoints</h1>
    <p>Base URL: <code>http://localhost:8080</code></p>

    <h2>Items API</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/items</code> - Create a new inventory item. JSON body: <code>{"id": "string", "name": "string", "category": "string", "quantity": int, "unit": "string", "expirationDate": "YYYY-MM-DD", "supplier": "string", "price": float64, "sku": "string", "reorderLevel": int, "batchNumber": "string"}</code> (omit <code>id</code> to have one generated).</li>
        <li><span class="method method-get">GET</span> <code><a href="/items">/items</a></code> - List all inventory items.</li>
        <li><span class="method method-get">GET</span> <code>/items/{id}</code> - Retrieve a specific item by its ID.</li>
        <li><span class="method method-put">PUT</span> <code>/items/{id}</code> - Update an item by its ID. JSON body can contain any subset of the item fields.</li>
        <li><span class="method method-delete">DELETE</span> <code>/items/{id}</code> - Delete an item by its ID.</li>
    </ul>

    <h2>Reports API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/items/expiring_items">/items/expiring_items</a></code> - Items expiring within 90 days and items already expired.</li>
        <li><span class="method method-get">GET</span> <code><a href="/items/low_stock">/items/low_stock</a></code> - Items at or below their reorder level.</li>
        <li><span class="method method-get">GET</span> <code><a href="/items/categories">/items/categories</a></code> - Distinct categories in the inventory.</li>
    </ul>

    <h2>Service API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/health">/health</a></code> - Health probe covering the storage backend.</li>
    </ul>

</body>
</html>
`

func serveTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlTestPageContent))
}

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Info("Starting Inventory Service...")

	// --- Database Connection ---
	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	inventoryUseCase := usecase.NewInventoryUseCase(store, logger)
	logger.Info("Use case initialized.")

	itemHandler := delivery.NewItemHandler(inventoryUseCase, logger)
	healthHandler := delivery.NewHealthHandler(store, logger)
	logger.Info("Handlers initialized.")

	if cfg.SeedSampleData {
		seeded, err := inventoryUseCase.SeedSampleData()
		if err != nil {
			logger.Fatalf("Failed to seed sample data: %v", err)
		}
		logger.Infof("Seeded %d sample items.", seeded)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	// Route Registration

	router.GET("/", serveTestPage)
	logger.Info("Registered HTML test page route at /")

	itemHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	// --- Start Server ---
	srv := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
		logger.Info("HTTP server stopped serving.")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Signal listener started.")

	<-quit
	logger.Warn("Shutdown signal received...")

	logger.Info("Attempting graceful shutdown of HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	logger.Info("Inventory Service shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// openStore builds the storage backend selected by DB_DRIVER and runs its
// schema migration before handing the repository back.
func openStore(cfg *config.Config, logger *logrus.Logger) (domain.ProductRepository, error) {
	switch cfg.DBDriver {
	case "postgres":
		logger.Info("Connecting to postgres...")
		database, err := db.ConnectPostgres(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsurePostgresSchema(database); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
		return repository.NewPostgresProductRepository(database, logger), nil
	case "sqlite":
		logger.Infof("Opening sqlite database at %s...", cfg.SQLitePath)
		database, err := db.ConnectSQLite(cfg.SQLitePath, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSQLiteSchema(database); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return repository.NewSQLiteProductRepository(database, logger), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.CORSAllowOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSAllowOrigins, ",")
	}
	return corsCfg
}

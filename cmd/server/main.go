package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/satvikkk/travel-aware/internal/delivery/http"
	"github.com/satvikkk/travel-aware/internal/repository/postgres"
	"github.com/satvikkk/travel-aware/internal/risk"
	"github.com/satvikkk/travel-aware/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Incident dataset — startup fatal if malformed or missing
	snap, err := risk.LoadSnapshot(cfg.IncidentDataPath)
	if err != nil {
		log.Fatalf("Could not load incident dataset: %v", err)
	}
	log.Printf("Loaded %d incidents (cutoff %s)", snap.Len(), snap.Cutoff().Format("2006-01-02"))
	store := risk.NewStore(snap)

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Running without score history persistence")
		pool = nil
	} else {
		defer pool.Close()
		log.Println("Connected to PostgreSQL")
	}

	// Dependency Injection: Repositories
	var repo service.ScoreLogRepository
	if pool != nil {
		repo = postgres.NewPostgresRepository(pool)
	} else {
		repo = postgres.NewMockRepository()
	}

	// Dependency Injection: Services
	geocodeSvc := service.NewGeocodeService(cfg.MapboxAccessToken)
	directionsSvc := service.NewDirectionsService(cfg.MapboxAccessToken, cfg.MaxAlternatives)
	scorer := risk.NewScorer(store, cfg.BufferRadiusKm)
	routeSvc := service.NewRouteService(geocodeSvc, directionsSvc, scorer, repo)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "TravelAware API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, routeSvc, repo, store, cfg.IncidentDataPath)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	routeSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL       string
	MapboxAccessToken string
	IncidentDataPath  string
	BufferRadiusKm    float64
	MaxAlternatives   int
	Port              string
	Env               string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MapboxAccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		IncidentDataPath:  getEnv("INCIDENT_DATA_PATH", "data/incidents.csv"),
		BufferRadiusKm:    getEnvFloat("BUFFER_RADIUS_KM", risk.DefaultBufferRadiusKm),
		MaxAlternatives:   getEnvInt("MAX_ALTERNATIVES", service.DefaultMaxAlternatives),
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

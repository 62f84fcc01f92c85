package main

import (
	"log"
	"os"

	"github.com/MohammedAly22/Accent-Detective/internal/accent"
	"github.com/MohammedAly22/Accent-Detective/internal/api"
	"github.com/MohammedAly22/Accent-Detective/internal/config"
	"github.com/MohammedAly22/Accent-Detective/internal/db"
	"github.com/MohammedAly22/Accent-Detective/internal/media"
	"github.com/MohammedAly22/Accent-Detective/internal/pipeline"
	"github.com/MohammedAly22/Accent-Detective/internal/repository"
	"github.com/MohammedAly22/Accent-Detective/internal/stt"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the STT provider
	provider, err := stt.CreateProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create STT provider: %v", err)
	}
	log.Printf("STT provider initialized: %s", provider.Name())

	// Create the accent classifier
	classifier := accent.NewHFClassifier(cfg.HFToken, cfg.AccentModel)
	log.Printf("Accent classifier initialized: %s (%s)", classifier.Name(), cfg.AccentModel)

	// Wire the pipeline
	pipe := pipeline.New(
		media.NewDownloader(cfg.YTDLPPath),
		media.NewExtractor(cfg.FFmpegPath, cfg.FFprobePath),
		provider,
		classifier,
	)

	// Initialize database if DATABASE_URL is provided
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Continuing without database.", err)
		} else {
			api.InitAnalysisRepository(repository.NewPostgresRepository())
			log.Println("Database and repository initialized successfully")
		}
	} else {
		log.Println("DATABASE_URL not set, running without database (in-memory storage only)")
	}

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*")

	// Add CORS middleware for browser clients
	r.Use(corsMiddleware())

	// Register routes
	api.NewHandler(pipe, cfg.MaxUploadMB).RegisterRoutes(r)

	log.Printf("Accent Detective backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

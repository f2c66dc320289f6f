package main

import (
	"context"
	"log"
	"os"

	"synaptech/internal/ai"
	"synaptech/internal/api"
	"synaptech/internal/config"
	"synaptech/internal/db"
	"synaptech/internal/repository"
	"synaptech/internal/routine"
	"synaptech/internal/speech"
	"synaptech/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := repository.EnsureSchema(context.Background(), conn); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	repo := repository.NewPostgresRepository(conn)

	generator, err := ai.CreateGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to create AI provider: %v", err)
	}

	var recognizer speech.Recognizer
	if cfg.SpeechAPIKey != "" {
		rec, err := speech.NewGoogleRecognizer(cfg.SpeechAPIKey)
		if err != nil {
			log.Fatalf("Failed to create speech recognizer: %v", err)
		}
		recognizer = rec
	} else {
		log.Println("SPEECH_API_KEY not set, audio input disabled")
	}

	handler := api.NewHandler(
		cfg,
		repo,
		task.NewEngine(generator, cfg.Location()),
		routine.NewEngine(generator),
		speech.NewTranscriber(recognizer, nil, cfg.SpeechLanguage),
	)

	r := gin.Default()
	r.Use(corsMiddleware())
	handler.RegisterRoutes(r)

	log.Printf("SynapTech backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the mobile app
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/mattiafranchi89-debug/Mattia-UW/handlers"
	"github.com/mattiafranchi89-debug/Mattia-UW/ingest"
	"github.com/mattiafranchi89-debug/Mattia-UW/service"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := service.NewConfigFromEnv()
	if err != nil {
		log.Fatal("Failed to load Gemini configuration: ", err)
	}

	genaiClient, err := initGenai(cfg)
	if err != nil {
		log.Fatal("Failed to initialize Gemini: ", err)
	}
	defer genaiClient.Close()

	// Initialize services
	gemini := service.NewGeminiClient(cfg)
	extractor := service.NewExtractor(gemini)
	newsFetcher := service.NewNewsFetcher(gemini)
	chatManager := service.NewChatManager(service.NewGenaiReplierFactory(genaiClient, cfg.Model))

	sess := session.New(extractor, newsFetcher, ingest.NewUnpacker())

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sess)
	chatHandler := handlers.NewChatHandler(sess, chatManager)
	exportHandler := handlers.NewExportHandler(sess)

	// Setup Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Session endpoints
		api.GET("/session", sessionHandler.GetSession)
		api.POST("/session/files", sessionHandler.AddFiles)
		api.DELETE("/session/files/:name", sessionHandler.RemoveFile)
		api.DELETE("/session/files", sessionHandler.ClearFiles)
		api.POST("/session/extract", sessionHandler.Extract)
		api.PUT("/session/record", sessionHandler.UpdateRecord)

		// Chat endpoints
		api.POST("/chat/messages", chatHandler.PostMessage)
		api.GET("/chat/messages", chatHandler.GetMessages)

		// Export endpoints
		api.GET("/export/csv", exportHandler.ExportCSV)
		api.POST("/export/pdf", exportHandler.ExportPDF)
		api.POST("/email/draft", exportHandler.DraftEmail)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func initGenai(cfg service.Config) (*genai.Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}

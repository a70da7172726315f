/*
Copyright © 2025 tranvd
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tranvd/ragchat-be/config"
	"github.com/tranvd/ragchat-be/database"
	"github.com/tranvd/ragchat-be/handler"
	"github.com/tranvd/ragchat-be/repository"
	"github.com/tranvd/ragchat-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts a server that handles chat, file processing and document retrieval`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Document store
		store, err := service.NewRAGStore(cfg.RAGConfig, service.NewHashingEmbedder())
		if err != nil {
			log.Fatalf("Failed to create document store: %v", err)
		}

		if cfg.EnablePersistence {
			mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
			if err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			docRepo := repository.NewDocumentRepo(mongoClient.Database("ragchat").Collection("documents"))
			if err := docRepo.EnsureIndexes(context.Background()); err != nil {
				log.Fatalf("Failed to create document indexes: %v", err)
			}
			store.AttachPersistence(docRepo)
			if err := store.LoadPersisted(context.Background()); err != nil {
				log.Fatalf("Failed to load persisted documents: %v", err)
			}
			log.Printf("Restored %d persisted documents", store.Stats().DocumentCount)
		}

		// AI service
		var aiService service.AIService
		switch cfg.AIProvider {
		case "gemini":
			geminiService, err := service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model)
			if err != nil {
				log.Fatalf("Failed to create Gemini service: %v", err)
			}
			geminiService.RegisterDocumentSearch(store)
			aiService = geminiService
		default:
			openAIService := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
			openAIService.RegisterDocumentSearch(store)
			if cfg.SearchConfig.APIKey != "" && cfg.SearchConfig.EngineID != "" {
				searchService := service.NewSearchService(cfg.SearchConfig.APIKey, cfg.SearchConfig.EngineID)
				openAIService.RegisterWebSearch(searchService)
			}
			aiService = openAIService
		}

		fileService := service.NewFileService()
		wsService := service.NewWebSocketService(aiService, store)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(aiService, store, fileService)
		documentHandler := handler.NewDocumentHandler(store)
		searchHandler := handler.NewSearchHandler(store, aiService)
		uploadHandler := handler.NewUploadHandler(fileService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/chat", chatHandler.HandleChat)
			apiV1.POST("/files/process", uploadHandler.HandleProcessFiles)

			apiV1.POST("/documents", documentHandler.HandleAddDocument)
			apiV1.GET("/documents", documentHandler.HandleListDocuments)
			apiV1.DELETE("/documents/:id", documentHandler.HandleRemoveDocument)
			apiV1.DELETE("/documents", documentHandler.HandleClearDocuments)
			apiV1.GET("/documents/stats", documentHandler.HandleStats)
			apiV1.POST("/documents/search", searchHandler.HandleSearch)
			apiV1.POST("/documents/ask-ai", searchHandler.HandleAskAI)
		}

		router.GET("/ws/chat", gin.WrapF(wsService.HandleChat))
		router.GET("/health", gin.WrapH(wsService.Health()))

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}

package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/cleanup"
	"github.com/HelplessSneeker/noessi-immo/internal/config"
	"github.com/HelplessSneeker/noessi-immo/internal/database"
	"github.com/HelplessSneeker/noessi-immo/internal/handlers"
	"github.com/HelplessSneeker/noessi-immo/internal/middleware"
	"github.com/HelplessSneeker/noessi-immo/internal/storage"
	"github.com/HelplessSneeker/noessi-immo/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	log.Printf("Loaded configuration from %s", configPath)

	// Initialize database based on configuration
	var db *gorm.DB
	switch cfg.Database.Type {
	case "sqlite":
		log.Printf("Using SQLite at %s", cfg.Database.SQLite.Path)
		db, err = database.NewSQLite(cfg.Database.SQLite.Path)
	default:
		log.Println("Using PostgreSQL")
		db, err = database.NewPostgres(cfg.Database.Postgres)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Document file storage
	files := storage.New(cfg.Storage.UploadDir, cfg.Storage.MaxFileSizeBytes())
	log.Printf("Document storage at %s (max %d MB per file)", cfg.Storage.UploadDir, cfg.Storage.MaxFileSizeMB)

	// Stores
	properties := store.NewPropertyStore(db)
	ledger := store.NewCreditLedger(db)
	journal := store.NewTransactionJournal(db)
	archive := store.NewDocumentArchive(db, files)
	aggregator := store.NewSummaryAggregator(db)

	// Cleanup janitor for orphaned upload files
	cleanupService := cleanup.NewService(db, files)
	cleanupScheduler := cleanup.NewScheduler(cleanupService, cfg.Cleanup)
	if err := cleanupScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start cleanup scheduler: %v", err)
	}
	defer cleanupScheduler.Stop()

	// Setup Gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(middleware.RequestLogging())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
	}))

	// Handlers
	propertyHandler := handlers.NewPropertyHandler(properties, aggregator)
	creditHandler := handlers.NewCreditHandler(ledger)
	transactionHandler := handlers.NewTransactionHandler(journal)
	documentHandler := handlers.NewDocumentHandler(archive)
	adminHandler := handlers.NewAdminHandler(db, cleanupService)

	// Routes
	r.GET("/health", healthCheck)

	api := r.Group("/api")
	{
		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.POST("/properties", propertyHandler.Create)
		api.PUT("/properties/:id", propertyHandler.Update)
		api.DELETE("/properties/:id", propertyHandler.Delete)
		api.GET("/properties/:id/summary", propertyHandler.Summary)

		api.GET("/credits", creditHandler.List)
		api.GET("/credits/:id", creditHandler.Get)
		api.POST("/credits", creditHandler.Create)
		api.PUT("/credits/:id", creditHandler.Update)
		api.DELETE("/credits/:id", creditHandler.Delete)

		api.GET("/transactions", transactionHandler.List)
		api.GET("/transactions/:id", transactionHandler.Get)
		api.POST("/transactions", transactionHandler.Create)
		api.PUT("/transactions/:id", transactionHandler.Update)
		api.DELETE("/transactions/:id", transactionHandler.Delete)

		api.GET("/documents", documentHandler.List)
		api.GET("/documents/:id", documentHandler.Get)
		api.GET("/documents/:id/download", documentHandler.Download)
		api.POST("/documents", documentHandler.Upload)
		api.PUT("/documents/:id", documentHandler.Update)
		api.DELETE("/documents/:id", documentHandler.Delete)

		admin := api.Group("/admin")
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.POST("/cleanup/run", adminHandler.RunCleanup)
		}
	}

	port := cfg.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

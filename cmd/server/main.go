package main

import (
	"context"
	"log"

	config "msme-ai-engine/configs"
	"msme-ai-engine/pkg/handlers"
	"msme-ai-engine/pkg/services"
	"msme-ai-engine/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	// Model artifacts are load-or-die: a server without its three models
	// cannot serve a single request.
	predictors, err := services.LoadPredictors(cfg.ModelDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to load model artifacts: %v", err)
	}
	log.Printf("🤖 Loaded models: %s, %s, %s",
		predictors.Price.Name(), predictors.Demand.Name(), predictors.Stock.Name())

	// The database probe is soft: without a reachable Postgres the server
	// falls back to the in-memory demo stores and /test-db reports state.
	var products storage.ProductStore
	var history storage.HistoryStore
	if cfg.DatabaseURL != "" {
		client, err := storage.NewPostgresClient(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Postgres unavailable, using in-memory stores: %v", err)
		} else if err := client.EnsureSchema(context.Background()); err != nil {
			log.Printf("Warning: Postgres schema setup failed, using in-memory stores: %v", err)
		} else {
			products = client
			history = client.HistoryStore()
			log.Println("🗄 Connected to Postgres")
		}
	}
	if products == nil {
		memProducts := storage.NewMemoryProductStore()
		memProducts.SeedDemoProducts()
		products = memProducts
		history = storage.NewMemoryHistoryStore()
		log.Println("🗄 Using in-memory stores with demo catalogue")
	}

	monitoringService := services.NewMonitoringService()
	recommendationService := services.NewRecommendationService(products, history, predictors)

	analysisHandler := handlers.NewAnalysisHandler(recommendationService, products, history)
	adminHandler := handlers.NewAdminHandler(products)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	r := gin.Default()
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(cors.Default())

	r.GET("/", handlers.HealthCheck)
	r.GET("/test-db", analysisHandler.TestDB)

	ai := r.Group("/ai")
	{
		ai.POST("/analyze", analysisHandler.Analyze)
		ai.GET("/history", analysisHandler.GetHistory)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/products/import", adminHandler.ImportProducts)
	}

	monitoring := r.Group("/monitoring")
	{
		monitoring.GET("/logs", monitoringHandler.GetLogs)
	}

	log.Printf("Starting MSME AI Engine on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

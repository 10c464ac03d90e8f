package main

import (
	"fmt"
	"log"

	"github.com/Techmo404/SafeRoad-Backend/config"
	"github.com/Techmo404/SafeRoad-Backend/handlers"
	"github.com/Techmo404/SafeRoad-Backend/middleware"
	"github.com/Techmo404/SafeRoad-Backend/ml"
	"github.com/Techmo404/SafeRoad-Backend/models"
	"github.com/Techmo404/SafeRoad-Backend/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.RiskRecord{}, &models.ModelArtifact{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: caching and live alerts degrade without it
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, caching and live alerts disabled: %v", err)
	}

	// Services
	authService := services.NewAuthService(cfg.JWT)
	weatherService := services.NewWeatherService(cfg.Providers, cache)
	trafficService := services.NewTrafficService(cfg.Providers, cache)
	incidentService := services.NewIncidentService(cfg.Providers)
	recordService := services.NewRecordService(db)

	modelStore := ml.NewGormStore(db)
	trainer := ml.NewTrainer(recordService, modelStore, cfg.ML)
	predictor := ml.NewPredictor(modelStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, authService)
	riskHandler := handlers.NewRiskHandler(weatherService, trafficService, recordService, predictor, cache)
	modelHandler := handlers.NewModelHandler(recordService, trainer, predictor, weatherService, trafficService)
	historyHandler := handlers.NewHistoryHandler(recordService)
	incidentsHandler := handlers.NewIncidentsHandler(incidentService)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"message": "SafeRoad API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Authenticated routes
	api := router.Group("/", middleware.RequireAuth(authService))
	{
		api.GET("/user-info", authHandler.UserInfo)
		api.POST("/risk-check", riskHandler.RiskCheck)
		api.POST("/save-data", historyHandler.SaveData)
		api.GET("/history", historyHandler.History)
		api.GET("/incidents", incidentsHandler.GetIncidents)

		model := api.Group("/model")
		{
			model.GET("/dataset", modelHandler.Dataset)
			model.POST("/train", modelHandler.Train)
			model.POST("/predict", modelHandler.Predict)
		}
	}

	// Websocket auth uses a query token, not the bearer middleware
	router.GET("/ws/alerts", handlers.LiveAlerts(cache, authService))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

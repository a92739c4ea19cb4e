package main

import (
	"log"
	"os"

	_ "github.com/fra890/equity-compass/api/swagger" // swagger docs
	"github.com/fra890/equity-compass/internal/database"
	"github.com/fra890/equity-compass/internal/engine"
	"github.com/fra890/equity-compass/internal/handler"
	"github.com/fra890/equity-compass/internal/middleware"
	"github.com/fra890/equity-compass/internal/repository"
	"github.com/fra890/equity-compass/internal/service"
	"github.com/fra890/equity-compass/internal/websocket"
	"github.com/fra890/equity-compass/pkg/stockapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Equity Compass API
// @version         1.0
// @description     Tax and vesting projections for employee equity compensation (RSUs and ISOs).
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Calculation engine and price lookup client
	eng := engine.NewEngine(engine.DefaultTaxYearConfig())
	quotes := stockapi.NewClient()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo, auditRepo)
	grantService := service.NewGrantService(grantRepo, clientRepo, auditRepo, quotes, wsHub)
	exerciseService := service.NewExerciseService(exerciseRepo, clientRepo, auditRepo, txManager, eng)
	projectionService := service.NewProjectionService(clientRepo, eng)
	exportService := service.NewExportService(projectionService)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	grantHandler := handler.NewGrantHandler(grantService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	projectionHandler := handler.NewProjectionHandler(projectionService, exportService)
	quoteHandler := handler.NewQuoteHandler(quotes)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	grantHandler.RegisterRoutes(router.Group(""))
	exerciseHandler.RegisterRoutes(router.Group(""))
	projectionHandler.RegisterRoutes(router.Group(""))
	quoteHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

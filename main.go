package main

import (
	"log"

	"grouptracker-backend/auth"
	"grouptracker-backend/config"
	"grouptracker-backend/database"
	"grouptracker-backend/gateway"
	"grouptracker-backend/handlers"
	"grouptracker-backend/middleware"
	"grouptracker-backend/mirror"
	"grouptracker-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database and Redis
	database.Connect()
	database.ConnectRedis()

	// Wire components
	gw := gateway.New(database.DB)
	store := mirror.NewRedisStore(database.Redis)
	mailer := services.NewSendGridMailer(
		config.AppConfig.SendGridAPIKey,
		config.AppConfig.SendGridFrom,
		config.AppConfig.AppName,
	)
	provider := auth.NewProvider(
		database.DB,
		auth.NewRedisSessions(database.Redis),
		mailer,
		config.AppConfig.JWTSecret,
		config.AppConfig.AppURL,
	)
	handlers.Init(gw, store, provider)

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// Home
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"app":     config.AppConfig.AppName,
			"message": "Please login or sign up to continue.",
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	r.GET("/login", handlers.LoginView)
	r.GET("/signup", handlers.SignupView)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", handlers.Signup)
		authRoutes.POST("/login", handlers.Login)
		authRoutes.GET("/callback", handlers.Callback)
		authRoutes.POST("/logout", handlers.Logout)
	}

	// ==========================================
	// PROTECTED VIEWS (route guard)
	// ==========================================
	protected := r.Group("/")
	protected.Use(middleware.RouteGuard(provider))
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.GET("/dashboard", handlers.GetDashboard)

		mg := protected.Group("/manage-groups")
		{
			mg.GET("", handlers.GetManagedGroups)
			mg.POST("/groups", handlers.CreateGroup)
			mg.GET("/groups/:id", handlers.GetGroupDetails)
			mg.DELETE("/groups/:id", handlers.DeleteGroup)
			mg.POST("/expenses", handlers.AddExpense)
			mg.PUT("/groups/:id/expenses/:eid", handlers.UpdateExpense)
			mg.DELETE("/groups/:id/expenses/:eid", handlers.DeleteExpense)
		}
	}

	// Start server
	addr := "0.0.0.0:" + config.AppConfig.Port
	log.Printf("🚀 %s server starting on %s", config.AppConfig.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"
	"os"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/agent"
	"github.com/HavishJadav/mkonnekt-assignment/internal/ai"
	"github.com/HavishJadav/mkonnekt-assignment/internal/config"
	"github.com/HavishJadav/mkonnekt-assignment/internal/database"
	"github.com/HavishJadav/mkonnekt-assignment/internal/handlers"
	"github.com/HavishJadav/mkonnekt-assignment/internal/middleware"
	"github.com/HavishJadav/mkonnekt-assignment/internal/salesapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// The server answers from its own synced copy of the order feed, so
	// it needs the store up before anything else.
	database.Connect(cfg.DBDSN)

	client := salesapi.NewClient(cfg.SalesAPIURL, cfg.FetchTimeout)
	summarizer := ai.NewSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel)
	insight := agent.New(database.Store{}, summarizer, cfg.FetchTimeout)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	// --- FEATURE FLAG: Admin Registration ---
	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Any authenticated user can ask questions
		api.POST("/ask", handlers.AskInsight(insight))

		// ADMIN ONLY: data management and the canned report
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/orders/sync", handlers.SyncOrders(client))
			admin.GET("/reports", handlers.GetSalesReport)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Println("🚀 Server starting on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

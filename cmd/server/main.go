// @title           Artist Webshop API
// @version         1.0.0
// @description     Backend API for a commissioned-art marketplace: clients submit order requests, artists price and fulfill them, and both parties chat with live presence. Auth, storage and realtime state delegate to Supabase.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/docs"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/cache"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/config"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/database"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/handlers"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/logging"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/middleware"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/supabase"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logging.NewSugaredLogger(cfg.Environment)
	defer log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Swagger host follows the configured base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalw("failed to initialize supabase client", "error", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalw("failed to initialize storage client", "error", err)
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("failed to initialize database client", "error", err)
	}
	defer dbClient.Close()

	// Migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalw("failed to initialize migrator", "error", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalw("migration failed", "error", err)
	}
	migrator.Close()
	log.Info("migrations completed successfully")

	// Realtime hub and services
	hub := realtime.NewHub(log)

	orderService := services.NewOrderService(dbClient, storageClient, hub, log)
	presenceService := services.NewPresenceService(dbClient, hub, cfg.PresenceTTL, cfg.PresenceSweepInterval, log)
	chatService := services.NewChatService(dbClient, hub, log)

	// Session lifecycle drives presence; heartbeats keep it from going stale.
	hub.SetSessionHooks(realtime.SessionHooks{
		Connected: func(userID uuid.UUID) {
			if err := presenceService.MarkOnline(userID); err != nil {
				log.Errorw("failed to mark online", "user_id", userID, "error", err)
			}
		},
		Disconnected: func(userID uuid.UUID) {
			if err := presenceService.MarkOffline(userID); err != nil {
				log.Errorw("failed to mark offline", "user_id", userID, "error", err)
			}
		},
		Heartbeat: func(userID uuid.UUID) {
			if err := presenceService.Heartbeat(userID); err != nil {
				log.Errorw("failed to record heartbeat", "user_id", userID, "error", err)
			}
		},
	})
	go hub.Run()

	sweeperStop := make(chan struct{})
	defer close(sweeperStop)
	go presenceService.Run(sweeperStop)

	// Session cache: verified tokens, invalidated on logout
	sessions := cache.New[string, middleware.Identity](cfg.SessionCacheTTL, cfg.SessionCacheTTL)
	defer sessions.Close()

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, supabaseClient, sessions)
	ordersHandler := handlers.NewOrdersHandler(orderService, storageClient)
	chatHandler := handlers.NewChatHandler(chatService)
	presenceHandler := handlers.NewPresenceHandler(presenceService, hub)
	wsHandler := handlers.NewWSHandler(hub)

	// Router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RouteGuard(cfg))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	// Sign-in is public; the rest of the auth surface needs a token
	router.POST("/auth/login", authHandler.Login)

	authRequired := middleware.AuthMiddleware(cfg, sessions)

	router.GET("/ws", authRequired, wsHandler.Connect)

	api := router.Group("/api/v1")
	api.Use(authRequired)

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.PATCH("/orders/:order_id/status", ordersHandler.UpdateStatus)
	api.POST("/orders/:order_id/price", ordersHandler.PriceOrder)
	api.POST("/orders/:order_id/comments", ordersHandler.AppendComment)
	api.GET("/orders/:order_id/comments", ordersHandler.ListComments)
	api.POST("/orders/:order_id/attachments", ordersHandler.AppendAttachment)
	api.POST("/orders/:order_id/attachments/upload", ordersHandler.UploadAttachment)
	api.GET("/orders/:order_id/attachments", ordersHandler.ListAttachments)

	api.POST("/chat/:conversation_id/messages", chatHandler.SendMessage)
	api.GET("/chat/:conversation_id/messages", chatHandler.History)

	api.GET("/online", presenceHandler.ListOnline)
	api.GET("/presence/:user_id", presenceHandler.GetStatus)
	api.POST("/presence/online", presenceHandler.MarkOnline)
	api.POST("/presence/offline", presenceHandler.MarkOffline)
	api.POST("/presence/heartbeat", presenceHandler.Heartbeat)

	api.GET("/menu", handlers.Menu)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	log.Infow("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsWrapper.Handler(router)); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}

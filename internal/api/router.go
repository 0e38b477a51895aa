package api

import (
	"billsplit-backend/config"
	adminBill "billsplit-backend/internal/api/v1/admin/bill"
	adminUser "billsplit-backend/internal/api/v1/admin/user"
	"billsplit-backend/internal/api/v1/auth"
	userBill "billsplit-backend/internal/api/v1/bill"
	"billsplit-backend/internal/database"
	"billsplit-backend/internal/middleware"
	"billsplit-backend/internal/notifier"
	"billsplit-backend/internal/services"
	"billsplit-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg)
	if err != nil {
		return nil, err
	}

	billService := services.NewBillService(notifier.NewMailer(cfg), cfg.AdminUpiID)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Locally stored proofs are served as static files
	if cfg.UploadDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userBill.RegisterRoutes(authorized, billService, store)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminBill.RegisterRoutes(admin, billService)
		}
	}

	return router, nil
}

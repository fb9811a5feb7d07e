package main

import (
	"time"

	"abarrotes-pos/config"
	"abarrotes-pos/database"
	"abarrotes-pos/handlers"
	"abarrotes-pos/middleware"
	"abarrotes-pos/till"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("configuración inválida: %v", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	middleware.SetSecret(cfg.JWTSecret)

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		logrus.Fatalf("no se pudo conectar a MongoDB: %v", err)
	}

	catalog := database.NewCatalogStore(database.ProductCollection)
	ledger := database.NewSalesLedger(database.SalesCollection)
	tillStates := database.NewTillStateStore(database.TillCollection)
	registry := till.NewRegistry(catalog, ledger, tillStates)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-Admin-Secret"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", handlers.LoginHandler)
	router.POST("/logout", handlers.LogoutHandler)
	router.POST("/admin/create-user", handlers.AdminCreateUserHandler)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/auth/me", handlers.AuthMeHandler(database.UserCollection))
		authed.GET("/categorias", handlers.ListCategoriesHandler)
	}

	productos := router.Group("/productos")
	productos.Use(middleware.AuthMiddleware())
	{
		productos.GET("", handlers.ListProductsHandler)
		productos.GET("/codigo/:codigo", handlers.GetProductByCodeHandler(catalog))
		productos.GET("/buscar", handlers.SearchProductsHandler(catalog))

		admin := productos.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", handlers.CreateProductHandler)
			admin.PUT("/:id", handlers.UpdateProductHandler)
			admin.DELETE("/:id", handlers.DeleteProductHandler)
		}
	}

	ventas := router.Group("/ventas")
	ventas.Use(middleware.AuthMiddleware())
	{
		ventas.POST("", handlers.CreateSaleHandler(registry, catalog))
		ventas.GET("", handlers.GetSalesHandler(ledger))
	}

	caja := router.Group("/caja")
	caja.Use(middleware.AuthMiddleware())
	{
		caja.POST("/abrir", handlers.OpenTillHandler(registry))
		caja.POST("/cerrar", handlers.CloseTillHandler(registry))
		caja.GET("/estado", handlers.TillStatusHandler(registry))
	}

	reportes := router.Group("/reportes")
	reportes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		reportes.GET("/ventas", handlers.SalesReportHandler(ledger))
		reportes.GET("/inventario", handlers.InventoryReportHandler)
	}

	logrus.Infof("Servidor corriendo en modo %s en el puerto %s", cfg.AppEnv, cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("el servidor terminó con error: %v", err)
	}
}

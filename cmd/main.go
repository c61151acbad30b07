package main

import (
	"fmt"
	"os"

	"merchant-registry/internal/auth"
	"merchant-registry/internal/handler"
	"merchant-registry/internal/merchant"
	"merchant-registry/internal/middleware"
	"merchant-registry/internal/model"
	"merchant-registry/pkg/cache"
	"merchant-registry/pkg/config"
	"merchant-registry/pkg/database"
	"merchant-registry/pkg/jwtutil"
	"merchant-registry/pkg/logger"
	"merchant-registry/pkg/validator"
	"merchant-registry/prometheus"

	"github.com/labstack/echo/v4"
)

func main() {
	conf, err := config.Load("merchant-registry")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.Info("Configuration loaded", conf.LogFields()...)

	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	if err := database.MigrateModels(&model.User{}, &model.Merchant{}, &model.Establishment{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})

	citiesCache := cache.New()

	merchantService := merchant.NewService(merchant.NewStore(db), citiesCache, conf.Cache.CitiesTTL)
	authService := auth.NewService(auth.NewStorage(db), jwt)

	merchantHandler := handler.NewMerchantHandler(merchantService)
	establishmentHandler := handler.NewEstablishmentHandler(merchantService)
	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	merchants := api.Group("/merchants")
	merchants.Use(middleware.JWTAuthMiddleware(jwt))
	merchants.GET("", merchantHandler.List)
	merchants.GET("/cities", merchantHandler.GetCities)
	merchants.GET("/export/csv", merchantHandler.ExportCSV, middleware.RequireRoles(model.RoleAdministrator))
	merchants.GET("/:id", merchantHandler.Get)
	merchants.POST("", merchantHandler.Create)
	merchants.PUT("/:id", merchantHandler.Update)
	merchants.PATCH("/:id/status", merchantHandler.UpdateStatus)
	merchants.DELETE("/:id", merchantHandler.Delete, middleware.RequireRoles(model.RoleAdministrator))

	establishments := api.Group("/establishments")
	establishments.Use(middleware.JWTAuthMiddleware(jwt))
	establishments.GET("", establishmentHandler.List)

	log.Info("Starting merchant-registry on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}

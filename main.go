package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"servicepro-server/config"
	"servicepro-server/database"
	"servicepro-server/jobs"
	"servicepro-server/mailer"
	"servicepro-server/middleware"
	"servicepro-server/routes"
	"servicepro-server/services"
	"servicepro-server/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	logger := utils.NewLogger(cfg.IsProduction())
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := seedServiceGroups(db, logger); err != nil {
		logger.Fatal("service group seeding failed", zap.Error(err))
	}
	if err := seedAdmin(db, logger, cfg.Admin.SeedPassword); err != nil {
		logger.Fatal("admin seeding failed", zap.Error(err))
	}

	mail := mailer.FromConfig(cfg.Mail, logger)
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.IsProduction()

	authSvc := services.NewAuthService(db, logger, mail, cfg.Server.BaseURL)

	app := routes.NewApp(routes.Deps{
		Config:     cfg,
		Logger:     logger,
		Auth:       authSvc,
		Catalog:    services.NewCatalogService(db, logger),
		Bookings:   services.NewBookingService(db, logger, mail),
		Commission: services.NewCommissionService(db, logger),
		Feedback:   services.NewFeedbackService(db, logger),
		WorkHours:  services.NewWorkHoursService(db),
		Dashboard:  services.NewDashboardService(db),
		Store:      store,
	})

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimit())

	app.Register(router, db)

	cleanup := jobs.NewTokenCleanupJob(authSvc, logger)
	cleanup.Start()
	defer cleanup.Stop()

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coralbay/config"
	_ "coralbay/docs"
	middlewares "coralbay/middleware"
	"coralbay/routes"
	"coralbay/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Coral Bay Hotel API
// @version 1.0
// @host localhost:8083
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.LoadEnv(); err != nil {
		panic("Failed to load .env file")
	}
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, db, err := config.ConnectDB(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Khởi tạo Cloudinary
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to init Cloudinary")
	}

	redisCli, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis!")
	}
	if redisCli == nil {
		log.Warn("REDIS_ADDR not set: room cache, logout revocation and chat rate limit are disabled")
	}

	if err := services.SeedDefaults(ctx, st, cfg.AdminUser, cfg.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("Failed to seed defaults")
	}

	var sender services.Sender = services.LogSender{Log: log}
	if cfg.SMTPHost != "" {
		sender = services.NewSMTPSender(services.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailSender,
		})
	}
	notifier := services.NewNotifier(sender, 100, log)
	notifier.Start()

	cache := services.NewRoomCache(redisCli, 5*time.Minute, log)
	avail := services.NewAvailabilityManager(st, cache)
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, redisCli)
	limiter, err := services.NewRateLimiter(redisCli, "coralbay:chat", cfg.ChatRateLimit, time.Minute, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create chat rate limiter")
	}

	expiry := services.NewExpiryJob(st, avail, cache, time.Now, log)
	scheduler := services.NewGocronScheduler()
	if err := services.ScheduleExpiry(ctx, scheduler, expiry, cfg.ExpiryInterval); err != nil {
		log.WithError(err).Fatal("Failed to schedule expiry job")
	}
	scheduler.Start()

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(log))

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middlewares.RequestIDHeader)
	configCors.AddExposeHeaders(middlewares.RequestIDHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, routes.Deps{
		DB:          db,
		Redis:       redisCli,
		Bookings:    services.NewBookingService(st, avail, cache, notifier, cfg.OperatorEmail, log),
		Rooms:       services.NewRoomService(st, cache, services.NewCloudinaryUploader(cld), log),
		Reviews:     services.NewReviewService(st),
		Auth:        services.NewAuthService(st, tokens),
		Tokens:      tokens,
		Dashboard:   services.NewDashboard(st),
		Chatbot:     services.NewDefaultChatbot(),
		ChatLimiter: limiter,
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduler.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn("notifications still queued at shutdown")
	}
	if redisCli != nil {
		_ = redisCli.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

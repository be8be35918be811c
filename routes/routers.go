package routes

import (
	"context"
	"net/http"
	"time"

	"coralbay/controllers"
	middlewares "coralbay/middleware"
	"coralbay/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client

	Bookings    *services.BookingService
	Rooms       *services.RoomService
	Reviews     *services.ReviewService
	Auth        *services.AuthService
	Tokens      *services.TokenManager
	Dashboard   *services.Dashboard
	Chatbot     *services.Chatbot
	ChatLimiter middlewares.Limiter
}

func SetupRoutes(router *gin.Engine, d Deps) {
	bookingController := controllers.NewBookingController(d.Bookings)
	roomController := controllers.NewRoomController(d.Rooms)
	reviewController := controllers.NewReviewController(d.Reviews)
	chatController := controllers.NewChatController(d.Chatbot)
	authController := controllers.NewAuthController(d.Auth)
	dashboardController := controllers.NewDashboardController(d.Dashboard)

	router.GET("/healthz", health(d.DB, d.Redis))

	router.GET("/book", bookingController.BookPage)
	router.POST("/book", bookingController.Book)
	router.GET("/reviews", reviewController.List)
	router.POST("/submit_review", reviewController.Submit)

	router.GET("/chat", chatController.Page)
	router.GET("/api/chat", chatController.Questions)
	router.POST("/api/chat", middlewares.RateLimit(d.ChatLimiter), chatController.Ask)

	router.POST("/admin/login", authController.Login)

	admin := router.Group("/admin", middlewares.AdminAuth(d.Tokens))
	admin.POST("/logout", authController.Logout)
	admin.GET("/dashboard", dashboardController.Show)

	admin.GET("/bookings", bookingController.List)
	admin.POST("/bookings", bookingController.Create)
	admin.GET("/bookings/:id", bookingController.Detail)
	admin.PUT("/bookings/:id", bookingController.Update)
	admin.POST("/bookings/:id/cancel", bookingController.Cancel)

	admin.GET("/rooms", roomController.List)
	admin.POST("/rooms", roomController.Create)
	admin.PUT("/rooms/:id", roomController.Update)
	admin.DELETE("/rooms/:id", roomController.Delete)
	admin.POST("/rooms/:id/image", roomController.UploadImage)

	admin.DELETE("/reviews/:id", reviewController.Delete)
}

func health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"db": "ok"}
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["db"] = "down"
			code = http.StatusServiceUnavailable
		}
		if rdb != nil {
			status["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				// Redis chỉ là cache, không làm service unhealthy.
				status["redis"] = "degraded"
			}
		}
		c.JSON(code, status)
	}
}

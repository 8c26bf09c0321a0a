package routes

import (
	"os"
	"time"

	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers bundles the handlers that carry shared service state.
type Controllers struct {
	User     *controllers.UserController
	Log      *controllers.LogController
	Summary  *controllers.SummaryController
	Insight  *controllers.InsightController
	Food     *controllers.FoodController
	Device   *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	auth.Use(middlewares.RateLimitMiddleware(20, time.Minute))
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", ctrl.User.GetProfile)
		user.PUT("/profile", ctrl.User.UpdateProfile)
		user.POST("/onboarding", ctrl.User.Onboard)
		user.PUT("/fitness-plan", ctrl.User.UpdatePlan)
		user.POST("/weight", ctrl.User.LogWeight)
		user.GET("/weight", ctrl.User.WeightHistory)
		user.POST("/devices", ctrl.Device.RegisterDevice)
	}

	// Daily ledger
	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.GET("", ctrl.Log.GetDailyLog)
		logs.POST("", ctrl.Log.UpdateDailyLog)
		logs.POST("/food", ctrl.Log.LogFood)
		logs.POST("/water", ctrl.Log.LogWater)
		logs.POST("/exercise", ctrl.Log.LogExercise)
		logs.POST("/exercise/manual", ctrl.Log.LogManualExercise)
	}

	// Dashboard aggregates
	summary := r.Group("/summary")
	summary.Use(middlewares.AuthMiddleware())
	{
		summary.GET("/daily", ctrl.Summary.Dashboard)
		summary.GET("/streak", ctrl.Summary.WeeklyStreak)
	}

	// AI features
	ai := r.Group("/ai")
	ai.Use(middlewares.AuthMiddleware())
	{
		ai.GET("/insights", ctrl.Insight.WeeklyInsights)
		ai.POST("/analyze-food", ctrl.Food.AnalyzeImage)
	}

	// Food database
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", ctrl.Food.Search)
	}

	// Feature requests
	features := r.Group("/features")
	features.Use(middlewares.AuthMiddleware())
	{
		features.GET("", controllers.ListFeatureRequests)
		features.POST("", controllers.SubmitFeatureRequest)
		features.POST("/:id/upvote", controllers.ToggleUpvote)
	}

	// Notifications
	notifications := r.Group("/notifications")
	notifications.Use(middlewares.AuthMiddleware())
	{
		notifications.GET("", controllers.NotificationHistory)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
		notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
	}

	// Admin broadcast, guarded by a shared key until real roles land
	admin := r.Group("/admin")
	admin.Use(adminKeyMiddleware())
	{
		admin.POST("/broadcasts", controllers.CreateBroadcast)
	}

	// Realtime ledger updates
	r.GET("/ws", middlewares.AuthMiddleware(), ctrl.Realtime.LogUpdatesWS)

	return r
}

func adminKeyMiddleware() gin.HandlerFunc {
	key := os.Getenv("ADMIN_API_KEY")
	return func(c *gin.Context) {
		if key == "" || c.GetHeader("X-Admin-Key") != key {
			c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

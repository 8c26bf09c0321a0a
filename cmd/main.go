package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/cache"
	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	utils.InitLogger()
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting application")

	config.InitDB()
	if err := cache.InitRedis(utils.Logger); err != nil {
		utils.Logger.Warn("redis unavailable, caching and rate limits degraded", zap.Error(err))
	}
	utils.InitMailer()
	utils.InitS3()

	gemini := services.NewGeminiService()
	fatsecret := services.NewFatSecretService()
	rek, err := services.NewRekognitionService()
	if err != nil {
		utils.Logger.Warn("rekognition unavailable, image fallback disabled", zap.Error(err))
	}

	rt := services.NewRealtimeHub()
	logSvc := services.NewLogService(config.DB).WithRealtime(rt)
	summarySvc := services.NewSummaryService(config.DB, logSvc)
	insightSvc := services.NewInsightService(config.DB, gemini)
	foodSvc := services.NewFoodService(gemini, fatsecret, rek)

	push, err := services.NewPushService(config.DB)
	if err != nil {
		utils.Logger.Fatal("push service init failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.Controllers{
		User:     controllers.NewUserController(gemini),
		Log:      controllers.NewLogController(logSvc, summarySvc, push),
		Summary:  controllers.NewSummaryController(summarySvc),
		Insight:  controllers.NewInsightController(insightSvc),
		Food:     controllers.NewFoodController(foodSvc),
		Device:   controllers.NewDeviceController(push),
		Realtime: controllers.NewRealtimeController(rt),
	})

	go runReminderLoop(push)

	startServer(r)
}

// runReminderLoop fires the daily logging reminder once per day around
// noon server time.
func runReminderLoop(push *services.PushService) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))
		push.SendDailyReminders()
	}
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting http server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server forced shutdown", zap.Error(err))
	}

	_ = cache.Close()
	utils.Logger.Info("server stopped")
}

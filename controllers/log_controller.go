package controllers

import (
	"time"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Logs    *services.LogService
	Summary *services.SummaryService
	Push    *services.PushService
}

func NewLogController(logs *services.LogService, summary *services.SummaryService, push *services.PushService) *LogController {
	return &LogController{Logs: logs, Summary: summary, Push: push}
}

// afterWrite checks whether this write completed a fully active week and,
// if so, sends the streak milestone notification.
func (lc *LogController) afterWrite(userID uint, date string) {
	if lc.Summary == nil || lc.Push == nil {
		return
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return
	}
	weekStart := services.WeekStart(day)
	streak, _, err := lc.Summary.WeeklyStreak(userID, weekStart)
	if err != nil {
		return
	}
	lc.Push.MaybeSendStreakReward(userID, weekStart, streak)
}

// queryDate reads the "date" query param (YYYY-MM-DD), defaulting to today.
// Returns "" after writing an error response when the value is malformed.
func queryDate(c *gin.Context) string {
	date := c.Query("date")
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(400, gin.H{"error": "date must be YYYY-MM-DD"})
		return ""
	}
	return date
}

func (lc *LogController) GetDailyLog(c *gin.Context) {
	date := queryDate(c)
	if date == "" {
		return
	}

	log, err := lc.Logs.GetDailyLog(c.GetUint("userID"), date)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, log)
}

// UpdateDailyLog applies raw deltas plus an optional activity. The typed
// food/water/exercise endpoints are preferred; this remains for clients
// that compose their own entries.
func (lc *LogController) UpdateDailyLog(c *gin.Context) {
	var body struct {
		Date     string               `json:"date"`
		Delta    services.LogDelta    `json:"delta"`
		Activity *models.ActivityItem `json:"activity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	date := bodyDate(c, body.Date)
	if date == "" {
		return
	}

	userID := c.GetUint("userID")
	log, err := lc.Logs.UpdateDailyLog(userID, date, body.Delta, body.Activity)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	lc.afterWrite(userID, date)
	c.JSON(200, log)
}

func bodyDate(c *gin.Context, date string) string {
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(400, gin.H{"error": "date must be YYYY-MM-DD"})
		return ""
	}
	return date
}

func (lc *LogController) LogFood(c *gin.Context) {
	var body struct {
		Date string `json:"date"`
		services.FoodInput
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	date := bodyDate(c, body.Date)
	if date == "" {
		return
	}

	userID := c.GetUint("userID")
	log, err := lc.Logs.LogFood(userID, date, body.FoodInput)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	lc.afterWrite(userID, date)
	c.JSON(200, log)
}

func (lc *LogController) LogWater(c *gin.Context) {
	var body struct {
		Date    string  `json:"date"`
		WaterMl float64 `json:"water_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	date := bodyDate(c, body.Date)
	if date == "" {
		return
	}

	userID := c.GetUint("userID")
	log, err := lc.Logs.LogWater(userID, date, body.WaterMl)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	lc.afterWrite(userID, date)
	c.JSON(200, log)
}

func (lc *LogController) LogExercise(c *gin.Context) {
	var body struct {
		Date        string `json:"date"`
		Exercise    string `json:"exercise" binding:"required"`
		Intensity   int    `json:"intensity"`
		DurationMin int    `json:"duration_min"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	date := bodyDate(c, body.Date)
	if date == "" {
		return
	}

	userID := c.GetUint("userID")
	var user models.User
	config.DB.First(&user, userID)

	log, err := lc.Logs.LogExercise(userID, date, body.Exercise, body.Intensity, body.DurationMin, user.Weight)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	lc.afterWrite(userID, date)
	c.JSON(200, log)
}

func (lc *LogController) LogManualExercise(c *gin.Context) {
	var body struct {
		Date     string `json:"date"`
		Title    string `json:"title"`
		Calories int    `json:"calories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	date := bodyDate(c, body.Date)
	if date == "" {
		return
	}

	userID := c.GetUint("userID")
	log, err := lc.Logs.LogManualExercise(userID, date, body.Title, body.Calories)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	lc.afterWrite(userID, date)
	c.JSON(200, log)
}

package controllers

import (
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Summary *services.SummaryService
}

func NewSummaryController(summary *services.SummaryService) *SummaryController {
	return &SummaryController{Summary: summary}
}

func (sc *SummaryController) Dashboard(c *gin.Context) {
	date := queryDate(c)
	if date == "" {
		return
	}

	summary, err := sc.Summary.DailySummary(c.GetUint("userID"), date)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summary)
}

func (sc *SummaryController) WeeklyStreak(c *gin.Context) {
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	weekStart := services.WeekStart(anchor)
	streak, days, err := sc.Summary.WeeklyStreak(c.GetUint("userID"), weekStart)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"week_start": weekStart.Format("2006-01-02"),
		"streak":     streak,
		"days":       days,
	})
}

package controllers

import (
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Insights *services.InsightService
}

func NewInsightController(insights *services.InsightService) *InsightController {
	return &InsightController{Insights: insights}
}

// WeeklyInsights returns the cached insight immediately; when it is stale a
// background refresh starts and the payload flags it with "refreshing".
func (ic *InsightController) WeeklyInsights(c *gin.Context) {
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	result, err := ic.Insights.GetWeeklyInsights(c.GetUint("userID"), services.WeekStart(anchor))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, result)
}

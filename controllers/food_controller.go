package controllers

import (
	"strconv"
	"strings"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

func (fc *FoodController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(400, gin.H{"error": "q is required"})
		return
	}

	maxResults := 20
	if raw := c.Query("max"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			maxResults = n
		}
	}

	results, err := fc.Foods.Search(query, maxResults)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"results": results})
}

func (fc *FoodController) AnalyzeImage(c *gin.Context) {
	var body struct {
		Image string `json:"image" binding:"required"` // base64
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	analysis, err := fc.Foods.AnalyzeImage(c.Request.Context(), body.Image)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, analysis)
}

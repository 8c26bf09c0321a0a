package controllers

import (
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func SubmitFeatureRequest(c *gin.Context) {
	var body struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	req, err := services.SubmitFeatureRequest(c.GetUint("userID"), body.Title, body.Description)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, req)
}

func ListFeatureRequests(c *gin.Context) {
	requests, err := services.ListFeatureRequests(c.GetUint("userID"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"requests": requests})
}

func ToggleUpvote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request id"})
		return
	}

	upvotes, upvoted, err := services.ToggleUpvote(c.GetUint("userID"), uint(id))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"upvotes": upvotes, "has_upvoted": upvoted})
}

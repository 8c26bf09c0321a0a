package controllers

import (
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func NotificationHistory(c *gin.Context) {
	userID := c.GetUint("userID")
	notifications, err := services.GetNotificationHistory(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	unread, _ := services.UnreadNotificationCount(userID)
	c.JSON(200, gin.H{"notifications": notifications, "unread": unread})
}

func MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid notification id"})
		return
	}

	if err := services.MarkNotificationRead(c.GetUint("userID"), uint(id)); err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "marked read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	if err := services.MarkAllNotificationsRead(c.GetUint("userID")); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "all marked read"})
}

// CreateBroadcast is admin-only; the route layer guards it with a shared
// key check until a proper role system exists.
func CreateBroadcast(c *gin.Context) {
	var body struct {
		Title  string `json:"title" binding:"required"`
		Body   string `json:"body" binding:"required"`
		Target string `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	broadcast, err := services.CreateAdminBroadcast(body.Title, body.Body, body.Target)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, broadcast)
}

package controllers

import (
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Gemini *services.GeminiService
}

func NewUserController(gemini *services.GeminiService) *UserController {
	return &UserController{Gemini: gemini}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	profile, err := services.GetUserProfile(c.GetUint("userID"))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, profile)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var body services.ProfileInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateUserProfile(c.GetUint("userID"), body); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "profile updated"})
}

func (uc *UserController) Onboard(c *gin.Context) {
	var body struct {
		Gender           string  `json:"gender" binding:"required"`
		BirthDate        string  `json:"birth_date" binding:"required"` // YYYY-MM-DD
		Height           float64 `json:"height" binding:"required"`
		Weight           float64 `json:"weight" binding:"required"`
		Goal             string  `json:"goal" binding:"required"`
		WorkoutFrequency string  `json:"workout_frequency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse("2006-01-02", body.BirthDate)
	if err != nil {
		c.JSON(400, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}

	plan, err := services.CompleteOnboarding(
		c.Request.Context(), uc.Gemini, c.GetUint("userID"),
		body.Gender, birthDate, body.Height, body.Weight,
		body.Goal, body.WorkoutFrequency,
	)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "onboarding complete", "fitness_plan": plan})
}

func (uc *UserController) UpdatePlan(c *gin.Context) {
	var body services.PlanInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.UpdateFitnessPlan(c.GetUint("userID"), body)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, plan)
}

func (uc *UserController) LogWeight(c *gin.Context) {
	var body struct {
		Weight float64 `json:"weight" binding:"required"`
		Date   string  `json:"date"` // defaults to today
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	if err := services.LogWeight(c.GetUint("userID"), body.Weight, date); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, gin.H{"message": "weight logged"})
}

func (uc *UserController) WeightHistory(c *gin.Context) {
	entries, err := services.GetWeightHistory(c.GetUint("userID"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"entries": entries})
}

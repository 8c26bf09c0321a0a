package models

import (
	"time"

	"gorm.io/gorm"
)

// AIInsight is the cached weekly narrative generated by the AI. GeneratedAt
// gates regeneration behind a TTL check.
type AIInsight struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"-"`

	Motivation             string `gorm:"type:text" json:"motivation"`
	NutritionTip           string `gorm:"type:text" json:"nutritionTip"`
	ActivityRecommendation string `gorm:"type:text" json:"activityRecommendation"`
	WeeklySummary          string `gorm:"type:text" json:"weeklySummary"`

	GeneratedAt time.Time `json:"generatedAt"`
}

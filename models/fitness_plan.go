package models

import (
	"time"

	"gorm.io/gorm"
)

// FitnessPlan holds each user's AI-generated daily targets. Generated once
// after onboarding and user-editable afterwards.
type FitnessPlan struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	DailyCalories int     // e.g. 2200 kcal
	ProteinG      float64 // grams
	CarbsG        float64 // grams
	FatG          float64 // grams

	// Free text as produced by the model, e.g. "2-3 liters" or "2500ml".
	WaterIntake string

	WorkoutPlan string `gorm:"type:text"`
	Tips        string `gorm:"type:text"` // newline-joined fitness tips
}

// WeightEntry is an append-only weight history point; entries are never
// edited or pruned.
type WeightEntry struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Weight float64   // kg
	Date   time.Time `gorm:"index;not null"`
}

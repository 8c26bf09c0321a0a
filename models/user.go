package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	FirstName    string
	LastName     string
	ProfileImage string

	// Onboarding questionnaire answers
	Gender           string
	BirthDate        time.Time
	Height           float64 // cm
	Weight           float64 // kg, mirrors the latest weight entry
	Goal             string  // e.g. "Lose Weight"
	WorkoutFrequency string  // e.g. "3-4 times a week"
	Onboarded        bool

	ResetToken    string
	ResetTokenExp time.Time
}

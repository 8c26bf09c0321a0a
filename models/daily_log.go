package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity types. An absent type means a legacy entry inferred from the
// presence of calories/water.
const (
	ActivityFood     = "food"
	ActivityExercise = "exercise"
)

// DailyLog is the per-user per-day ledger of consumption, burn and water
// intake. Numeric fields are cached aggregates maintained by accumulation at
// write time; they only ever grow within a day. A row springs into existence
// lazily on the first write for that date.
type DailyLog struct {
	gorm.Model
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_date" json:"user_id"`
	Date   string `gorm:"size:10;not null;uniqueIndex:idx_user_date" json:"date"` // YYYY-MM-DD

	CaloriesConsumed int     `json:"caloriesConsumed"`
	CaloriesBurned   int     `json:"caloriesBurned"`
	ProteinConsumed  float64 `json:"proteinConsumed"`
	CarbsConsumed    float64 `json:"carbsConsumed"`
	FatConsumed      float64 `json:"fatConsumed"`
	WaterConsumed    float64 `json:"waterConsumed"` // glasses, 1 glass = 250 mL

	// Append-only, ordered by insertion; there is no edit or delete path.
	Activities []ActivityItem `gorm:"foreignKey:DailyLogID" json:"activities"`
}

// ActivityItem is one discrete logged event (a meal, a workout, a water log).
type ActivityItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	DailyLogID uint      `gorm:"index;not null" json:"-"`
	Token      string    `gorm:"size:36;not null" json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Title      string    `json:"title"`
	Type       string    `gorm:"size:10" json:"type,omitempty"`

	Calories float64 `json:"calories,omitempty"`
	Water    float64 `json:"water,omitempty"` // glasses

	// Exercise-only
	Duration  int    `json:"duration,omitempty"` // minutes
	Intensity string `json:"intensity,omitempty"`

	// Food-only
	Protein     float64 `json:"protein,omitempty"`
	Carbs       float64 `json:"carbs,omitempty"`
	Fat         float64 `json:"fat,omitempty"`
	ServingInfo string  `json:"servingInfo,omitempty"`
}

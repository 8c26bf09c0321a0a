package services

import (
	"errors"
	"fmt"
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MlPerGlass is the fixed glasses-to-milliliters conversion factor.
const MlPerGlass = 250.0

// LogDelta is a partial set of ledger increments. Zero fields leave the
// stored value untouched.
type LogDelta struct {
	CaloriesConsumed int     `json:"caloriesConsumed"`
	CaloriesBurned   int     `json:"caloriesBurned"`
	ProteinConsumed  float64 `json:"proteinConsumed"`
	CarbsConsumed    float64 `json:"carbsConsumed"`
	FatConsumed      float64 `json:"fatConsumed"`
	WaterConsumed    float64 `json:"waterConsumed"`
}

type LogService struct {
	db *gorm.DB
	rt *RealtimeHub // optional
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

func (s *LogService) WithRealtime(rt *RealtimeHub) *LogService {
	s.rt = rt
	return s
}

// GetDailyLog returns the ledger for (user, date), or a zero-value log when
// none exists yet. Missing days are not an error.
func (s *LogService) GetDailyLog(userID uint, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := s.db.
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("activity_items.id ASC")
		}).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyLog{UserID: userID, Date: date, Activities: []models.ActivityItem{}}, nil
		}
		return nil, err
	}
	if log.Activities == nil {
		log.Activities = []models.ActivityItem{}
	}
	return &log, nil
}

// UpdateDailyLog accumulates deltas into the day's ledger and optionally
// appends one activity. The numeric fields are incremented server-side in a
// single upsert, so concurrent writers from two devices cannot lose updates.
func (s *LogService) UpdateDailyLog(userID uint, date string, delta LogDelta, activity *models.ActivityItem) (*models.DailyLog, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := models.DailyLog{
			UserID:           userID,
			Date:             date,
			CaloriesConsumed: delta.CaloriesConsumed,
			CaloriesBurned:   delta.CaloriesBurned,
			ProteinConsumed:  delta.ProteinConsumed,
			CarbsConsumed:    delta.CarbsConsumed,
			FatConsumed:      delta.FatConsumed,
			WaterConsumed:    delta.WaterConsumed,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"calories_consumed": gorm.Expr("daily_logs.calories_consumed + excluded.calories_consumed"),
				"calories_burned":   gorm.Expr("daily_logs.calories_burned + excluded.calories_burned"),
				"protein_consumed":  gorm.Expr("daily_logs.protein_consumed + excluded.protein_consumed"),
				"carbs_consumed":    gorm.Expr("daily_logs.carbs_consumed + excluded.carbs_consumed"),
				"fat_consumed":      gorm.Expr("daily_logs.fat_consumed + excluded.fat_consumed"),
				"water_consumed":    gorm.Expr("daily_logs.water_consumed + excluded.water_consumed"),
				"updated_at":        time.Now(),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert daily log: %w", err)
		}

		if activity == nil {
			return nil
		}

		var stored models.DailyLog
		if err := tx.Where("user_id = ? AND date = ?", userID, date).First(&stored).Error; err != nil {
			return err
		}

		activity.DailyLogID = stored.ID
		if activity.Token == "" {
			activity.Token = uuid.NewString()
		}
		if activity.Timestamp.IsZero() {
			activity.Timestamp = time.Now()
		}
		if err := tx.Create(activity).Error; err != nil {
			return fmt.Errorf("append activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log, err := s.GetDailyLog(userID, date)
	if err != nil {
		return nil, err
	}

	if s.rt != nil {
		s.rt.Broadcast(userID, LogEvent{Kind: "log.updated", Log: log})
	}
	return log, nil
}

// FoodInput describes one food item to log against a day.
type FoodInput struct {
	Title       string  `json:"title" binding:"required"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingInfo string  `json:"serving_info"`
}

func (s *LogService) LogFood(userID uint, date string, in FoodInput) (*models.DailyLog, error) {
	delta := LogDelta{
		CaloriesConsumed: in.Calories,
		ProteinConsumed:  in.Protein,
		CarbsConsumed:    in.Carbs,
		FatConsumed:      in.Fat,
	}
	activity := &models.ActivityItem{
		Title:       in.Title,
		Type:        models.ActivityFood,
		Calories:    float64(in.Calories),
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		ServingInfo: in.ServingInfo,
	}
	return s.UpdateDailyLog(userID, date, delta, activity)
}

// LogWater converts milliliters to glasses (may be fractional) and records a
// water activity mirroring the delta.
func (s *LogService) LogWater(userID uint, date string, waterMl float64) (*models.DailyLog, error) {
	if waterMl <= 0 {
		return nil, errors.New("water amount must be positive")
	}
	glasses := waterMl / MlPerGlass
	activity := &models.ActivityItem{
		Title: "Drank Water",
		Type:  models.ActivityFood, // groups with non-exercise entries
		Water: glasses,
	}
	return s.UpdateDailyLog(userID, date, LogDelta{WaterConsumed: glasses}, activity)
}

// LogExercise estimates the burn for a tracked exercise and records it.
// Duration of zero or less is a no-op.
func (s *LogService) LogExercise(userID uint, date, exercise string, intensity, durationMin int, weightKg float64) (*models.DailyLog, error) {
	if durationMin <= 0 {
		return s.GetDailyLog(userID, date)
	}

	label := IntensityLabel(intensity)
	calories := EstimateCaloriesBurned(exercise, label, durationMin, weightKg)

	activity := &models.ActivityItem{
		Title:     fmt.Sprintf("%s Session (%dm)", exercise, durationMin),
		Type:      models.ActivityExercise,
		Calories:  float64(calories),
		Duration:  durationMin,
		Intensity: label,
	}
	return s.UpdateDailyLog(userID, date, LogDelta{CaloriesBurned: calories}, activity)
}

// LogManualExercise records a burn the user entered directly.
func (s *LogService) LogManualExercise(userID uint, date, title string, calories int) (*models.DailyLog, error) {
	if calories <= 0 {
		return nil, errors.New("calories must be positive")
	}
	if title == "" {
		title = "Exercise"
	}
	activity := &models.ActivityItem{
		Title:    title,
		Type:     models.ActivityExercise,
		Calories: float64(calories),
	}
	return s.UpdateDailyLog(userID, date, LogDelta{CaloriesBurned: calories}, activity)
}

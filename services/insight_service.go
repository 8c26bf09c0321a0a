package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"backend/cache"
	"backend/models"
	"backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultInsightTTL gates weekly insight regeneration.
const DefaultInsightTTL = 6 * time.Hour

type InsightService struct {
	db     *gorm.DB
	gemini *GeminiService
	ttl    time.Duration
}

func NewInsightService(db *gorm.DB, gemini *GeminiService) *InsightService {
	ttl := DefaultInsightTTL
	if raw := os.Getenv("INSIGHTS_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	return &InsightService{db: db, gemini: gemini, ttl: ttl}
}

// InsightStale reports whether a cached blob must be regenerated.
func InsightStale(insight *models.AIInsight, now time.Time, ttl time.Duration) bool {
	if insight == nil {
		return true
	}
	return now.Sub(insight.GeneratedAt) > ttl
}

// WeeklyInsightsResult carries the cached blob plus whether a background
// refresh is running for it.
type WeeklyInsightsResult struct {
	Insights   *models.AIInsight `json:"insights"`
	Refreshing bool              `json:"refreshing"`
}

// GetWeeklyInsights returns the cached insights immediately and, when the
// cache is stale or empty, kicks off one background regeneration. A redis
// lock dedupes near-simultaneous triggers from multiple clients.
func (s *InsightService) GetWeeklyInsights(userID uint, weekStart time.Time) (*WeeklyInsightsResult, error) {
	var cached *models.AIInsight
	var row models.AIInsight
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		cached = &row
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	result := &WeeklyInsightsResult{Insights: cached}
	if !InsightStale(cached, time.Now(), s.ttl) {
		return result, nil
	}

	lockKey := fmt.Sprintf("insight_refresh:%d", userID)
	if !cache.AcquireLock(lockKey, 2*time.Minute) {
		result.Refreshing = true
		return result, nil
	}

	result.Refreshing = true
	go func() {
		defer cache.ReleaseLock(lockKey)
		if err := s.regenerate(userID, weekStart); err != nil {
			utils.Logger.Warn("insight_regeneration_failed",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}()

	return result, nil
}

func (s *InsightService) regenerate(userID uint, weekStart time.Time) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	logs := NewLogService(s.db)
	weekLogs := make([]models.DailyLog, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		log, err := logs.GetDailyLog(userID, date)
		if err != nil {
			return err
		}
		weekLogs = append(weekLogs, *log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fresh, err := s.gemini.GenerateWeeklyInsights(ctx, &user, weekLogs)
	if err != nil {
		return err
	}

	// Overwrite the single cached row for this user.
	var existing models.AIInsight
	err = s.db.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(fresh).Error
	}
	if err != nil {
		return err
	}

	existing.Motivation = fresh.Motivation
	existing.NutritionTip = fresh.NutritionTip
	existing.ActivityRecommendation = fresh.ActivityRecommendation
	existing.WeeklySummary = fresh.WeeklySummary
	existing.GeneratedAt = fresh.GeneratedAt
	return s.db.Save(&existing).Error
}

package services

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type SummaryService struct {
	db   *gorm.DB
	logs *LogService
}

func NewSummaryService(db *gorm.DB, logs *LogService) *SummaryService {
	return &SummaryService{db: db, logs: logs}
}

// DailySummary is the presentation-time view of a day against the user's
// plan. Nothing here is stored; it is recomputed on every request.
type DailySummary struct {
	Date string `json:"date"`

	CaloriesGoal     int     `json:"caloriesGoal"`
	CaloriesConsumed int     `json:"caloriesConsumed"`
	CaloriesBurned   int     `json:"caloriesBurned"`
	CaloriesLeft     int     `json:"caloriesLeft"`
	Progress         float64 `json:"progress"` // 0..1

	ProteinLeft float64 `json:"proteinLeft"`
	CarbsLeft   float64 `json:"carbsLeft"`
	FatLeft     float64 `json:"fatLeft"`

	WaterGoalMl     float64 `json:"waterGoalMl"`
	WaterConsumedMl float64 `json:"waterConsumedMl"`
	WaterLeftMl     float64 `json:"waterLeftMl"`

	Activities []models.ActivityItem `json:"activities"`
}

func (s *SummaryService) DailySummary(userID uint, date string) (*DailySummary, error) {
	log, err := s.logs.GetDailyLog(userID, date)
	if err != nil {
		return nil, err
	}

	var plan models.FitnessPlan
	if err := s.db.Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// No plan yet: goals default to zero, remaining floors at zero.
	}

	out := &DailySummary{
		Date:             date,
		CaloriesGoal:     plan.DailyCalories,
		CaloriesConsumed: log.CaloriesConsumed,
		CaloriesBurned:   log.CaloriesBurned,
		Activities:       log.Activities,
	}

	out.CaloriesLeft = CaloriesLeft(plan.DailyCalories, log.CaloriesConsumed, log.CaloriesBurned)
	out.Progress = CalorieProgress(plan.DailyCalories, log.CaloriesConsumed, log.CaloriesBurned)

	out.ProteinLeft = MacroLeft(plan.ProteinG, log.ProteinConsumed)
	out.CarbsLeft = MacroLeft(plan.CarbsG, log.CarbsConsumed)
	out.FatLeft = MacroLeft(plan.FatG, log.FatConsumed)

	out.WaterGoalMl = ParseWaterGoalMl(plan.WaterIntake)
	out.WaterConsumedMl = log.WaterConsumed * MlPerGlass
	out.WaterLeftMl = math.Max(0, out.WaterGoalMl-out.WaterConsumedMl)

	return out, nil
}

// CaloriesLeft never goes negative; burning exercise calories widens the
// remaining budget.
func CaloriesLeft(goal, consumed, burned int) int {
	left := goal - consumed + burned
	if left < 0 {
		return 0
	}
	return left
}

// CalorieProgress is consumed over the burn-adjusted allowance, clamped to
// [0, 1].
func CalorieProgress(goal, consumed, burned int) float64 {
	allowed := goal + burned
	if allowed <= 0 {
		return 0
	}
	p := float64(consumed) / float64(allowed)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func MacroLeft(goal, consumed float64) float64 {
	return round2(math.Max(0, goal-consumed))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseWaterGoalMl extracts a milliliter goal from the plan's free-text water
// intake ("2-3 liters", "2000ml", "2"). Bare values under 100 are read as
// liters, anything else as milliliters. Defaults to 2000 mL.
func ParseWaterGoalMl(raw string) float64 {
	if raw == "" {
		raw = "2L"
	}
	lower := strings.ToLower(raw)

	switch {
	case strings.Contains(lower, "ml"):
		v, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(lower, ""), 64)
		if err != nil || v == 0 {
			return 2000
		}
		return v
	case strings.Contains(lower, "l"):
		v, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(lower, ""), 64)
		if err != nil || v == 0 {
			v = 2
		}
		return v * 1000
	default:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v == 0 {
			v = 2
		}
		if v < 100 {
			return v * 1000
		}
		return v
	}
}

// WeeklyStreak counts active days in the 7-day window starting at weekStart.
// A day is active when it has any activity, consumed calories, or water.
func (s *SummaryService) WeeklyStreak(userID uint, weekStart time.Time) (int, []bool, error) {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}

	var rows []models.DailyLog
	if err := s.db.
		Preload("Activities").
		Where("user_id = ? AND date IN ?", userID, dates).
		Find(&rows).Error; err != nil {
		return 0, nil, err
	}

	idx := make(map[string]models.DailyLog, len(rows))
	for _, r := range rows {
		idx[r.Date] = r
	}

	active := make([]bool, 7)
	count := 0
	for i, d := range dates {
		log := idx[d] // zero value when the day was never written
		if DayActive(&log) {
			active[i] = true
			count++
		}
	}
	return count, active, nil
}

// DayActive reports whether a ledger day counts toward the weekly streak.
func DayActive(log *models.DailyLog) bool {
	if log == nil {
		return false
	}
	return len(log.Activities) > 0 || log.CaloriesConsumed > 0 || log.WaterConsumed > 0
}

// WeekStart truncates t to the most recent Sunday, matching the insight
// window.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}

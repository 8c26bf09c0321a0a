package services

import (
	"testing"
	"time"

	"backend/models"
)

func TestCaloriesLeft(t *testing.T) {
	cases := []struct {
		goal, consumed, burned, want int
	}{
		{2000, 500, 0, 1500},
		{2000, 500, 300, 1800},       // exercise widens the budget
		{2000, 2500, 300, 0},         // floors at zero
		{2000, 2000, 0, 0},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := CaloriesLeft(c.goal, c.consumed, c.burned); got != c.want {
			t.Errorf("CaloriesLeft(%d, %d, %d) = %d, want %d", c.goal, c.consumed, c.burned, got, c.want)
		}
	}
}

func TestCalorieProgress(t *testing.T) {
	cases := []struct {
		goal, consumed, burned int
		want                   float64
	}{
		{2000, 1000, 0, 0.5},
		{2000, 1000, 500, 0.4},
		{2000, 5000, 0, 1},   // clamped
		{0, 500, 0, 0},       // no goal yet
		{2000, 0, 0, 0},
	}
	for _, c := range cases {
		got := CalorieProgress(c.goal, c.consumed, c.burned)
		if !almostEqual(got, c.want) {
			t.Errorf("CalorieProgress(%d, %d, %d) = %v, want %v", c.goal, c.consumed, c.burned, got, c.want)
		}
	}
}

func TestMacroLeft(t *testing.T) {
	if got := MacroLeft(150, 30.333); !almostEqual(got, 119.67) {
		t.Errorf("MacroLeft = %v, want 119.67", got)
	}
	if got := MacroLeft(50, 80); got != 0 {
		t.Errorf("overconsumption should floor at 0, got %v", got)
	}
}

func TestParseWaterGoalMl(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 2000},
		{"2000ml", 2000},
		{"1500 mL", 1500},
		{"2.5L", 2500},
		{"3 liters", 3000},
		{"2", 2000},   // bare small value reads as liters
		{"500", 500},  // bare large value reads as milliliters
		{"100", 100},  // boundary: not under 100, stays milliliters
		{"drink plenty", 2000},
	}
	for _, c := range cases {
		if got := ParseWaterGoalMl(c.raw); !almostEqual(got, c.want) {
			t.Errorf("ParseWaterGoalMl(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestDayActive(t *testing.T) {
	cases := []struct {
		name string
		log  *models.DailyLog
		want bool
	}{
		{"nil", nil, false},
		{"empty", &models.DailyLog{}, false},
		{"calories only", &models.DailyLog{CaloriesConsumed: 50}, true},
		{"water only", &models.DailyLog{WaterConsumed: 0.5}, true},
		{"activity only", &models.DailyLog{Activities: []models.ActivityItem{{Title: "Walk"}}}, true},
		{"burn only does not count", &models.DailyLog{CaloriesBurned: 300}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DayActive(c.log); got != c.want {
				t.Errorf("DayActive = %v, want %v", got, c.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	// 2026-08-26 is a Wednesday
	wed := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)
	got := WeekStart(wed)
	want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(wed) = %v, want %v", got, want)
	}

	// a Sunday truncates to itself
	sun := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(want) {
		t.Errorf("WeekStart(sun) = %v, want %v", got, want)
	}
}

func TestWeeklyStreak(t *testing.T) {
	db := testDB(t)
	logs := NewLogService(db)
	s := NewSummaryService(db, logs)

	weekStart := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	// Sunday: food, Monday: water, Wednesday: food, Saturday: manual burn
	// plus activity. Burn alone would not count, but the activity does.
	if _, err := logs.LogFood(1, "2026-08-23", FoodInput{Title: "Toast", Calories: 200}); err != nil {
		t.Fatal(err)
	}
	if _, err := logs.LogWater(1, "2026-08-24", 250); err != nil {
		t.Fatal(err)
	}
	if _, err := logs.LogFood(1, "2026-08-26", FoodInput{Title: "Pasta", Calories: 600}); err != nil {
		t.Fatal(err)
	}
	if _, err := logs.LogManualExercise(1, "2026-08-29", "Hike", 400); err != nil {
		t.Fatal(err)
	}

	// another user's week must not leak in
	if _, err := logs.LogFood(2, "2026-08-25", FoodInput{Title: "Cake", Calories: 450}); err != nil {
		t.Fatal(err)
	}

	count, days, err := s.WeeklyStreak(1, weekStart)
	if err != nil {
		t.Fatalf("WeeklyStreak: %v", err)
	}
	if count != 4 {
		t.Errorf("streak = %d, want 4", count)
	}
	wantDays := []bool{true, true, false, true, false, false, true}
	if len(days) != 7 {
		t.Fatalf("days length = %d", len(days))
	}
	for i := range wantDays {
		if days[i] != wantDays[i] {
			t.Errorf("days[%d] = %v, want %v", i, days[i], wantDays[i])
		}
	}
}

func TestDailySummaryWithoutPlan(t *testing.T) {
	db := testDB(t)
	logs := NewLogService(db)
	s := NewSummaryService(db, logs)

	if _, err := logs.LogFood(1, "2026-08-20", FoodInput{Title: "Soup", Calories: 300, Protein: 10}); err != nil {
		t.Fatal(err)
	}

	sum, err := s.DailySummary(1, "2026-08-20")
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if sum.CaloriesGoal != 0 || sum.CaloriesLeft != 0 {
		t.Errorf("goalless summary should zero out: %+v", sum)
	}
	if sum.CaloriesConsumed != 300 {
		t.Errorf("consumed = %d", sum.CaloriesConsumed)
	}
	// no plan still yields the default water goal
	if !almostEqual(sum.WaterGoalMl, 2000) {
		t.Errorf("water goal = %v, want 2000", sum.WaterGoalMl)
	}
}

func TestDailySummaryAgainstPlan(t *testing.T) {
	db := testDB(t)
	logs := NewLogService(db)
	s := NewSummaryService(db, logs)

	plan := models.FitnessPlan{
		UserID:        1,
		DailyCalories: 2200,
		ProteinG:      140,
		CarbsG:        250,
		FatG:          70,
		WaterIntake:   "2.5L",
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := logs.LogFood(1, "2026-08-21", FoodInput{Title: "Burrito", Calories: 800, Protein: 35, Carbs: 90, Fat: 25}); err != nil {
		t.Fatal(err)
	}
	if _, err := logs.LogWater(1, "2026-08-21", 500); err != nil {
		t.Fatal(err)
	}
	if _, err := logs.LogManualExercise(1, "2026-08-21", "Row", 200); err != nil {
		t.Fatal(err)
	}

	sum, err := s.DailySummary(1, "2026-08-21")
	if err != nil {
		t.Fatal(err)
	}
	if sum.CaloriesLeft != 2200-800+200 {
		t.Errorf("calories left = %d, want %d", sum.CaloriesLeft, 2200-800+200)
	}
	if !almostEqual(sum.Progress, 800.0/2400.0) {
		t.Errorf("progress = %v", sum.Progress)
	}
	if !almostEqual(sum.ProteinLeft, 105) || !almostEqual(sum.CarbsLeft, 160) || !almostEqual(sum.FatLeft, 45) {
		t.Errorf("macros left = %v/%v/%v", sum.ProteinLeft, sum.CarbsLeft, sum.FatLeft)
	}
	if !almostEqual(sum.WaterConsumedMl, 500) || !almostEqual(sum.WaterLeftMl, 2000) {
		t.Errorf("water = %v consumed, %v left", sum.WaterConsumedMl, sum.WaterLeftMl)
	}
	if len(sum.Activities) != 3 {
		t.Errorf("activities = %d, want 3", len(sum.Activities))
	}
}

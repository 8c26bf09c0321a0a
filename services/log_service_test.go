package services

import (
	"fmt"
	"math"
	"testing"

	"backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.FitnessPlan{},
		&models.DailyLog{},
		&models.ActivityItem{},
		&models.AIInsight{},
		&models.Notification{},
		&models.UserDevice{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGetDailyLogMissingDayDefaults(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.GetDailyLog(1, "2026-08-10")
	if err != nil {
		t.Fatalf("GetDailyLog: %v", err)
	}
	if log.Date != "2026-08-10" || log.UserID != 1 {
		t.Errorf("identity not filled in: %+v", log)
	}
	if log.CaloriesConsumed != 0 || log.CaloriesBurned != 0 || log.WaterConsumed != 0 {
		t.Errorf("expected zero aggregates, got %+v", log)
	}
	if log.Activities == nil || len(log.Activities) != 0 {
		t.Errorf("expected empty activities slice, got %v", log.Activities)
	}
}

func TestUpdateDailyLogAccumulates(t *testing.T) {
	s := NewLogService(testDB(t))

	deltas := []LogDelta{
		{CaloriesConsumed: 300, ProteinConsumed: 20.5, WaterConsumed: 1},
		{CaloriesConsumed: 450, CarbsConsumed: 60, FatConsumed: 12.25},
		{CaloriesBurned: 200, WaterConsumed: 0.5},
	}
	for _, d := range deltas {
		if _, err := s.UpdateDailyLog(7, "2026-08-11", d, nil); err != nil {
			t.Fatalf("UpdateDailyLog: %v", err)
		}
	}

	log, err := s.GetDailyLog(7, "2026-08-11")
	if err != nil {
		t.Fatalf("GetDailyLog: %v", err)
	}
	if log.CaloriesConsumed != 750 {
		t.Errorf("calories consumed = %d, want 750", log.CaloriesConsumed)
	}
	if log.CaloriesBurned != 200 {
		t.Errorf("calories burned = %d, want 200", log.CaloriesBurned)
	}
	if !almostEqual(log.ProteinConsumed, 20.5) || !almostEqual(log.CarbsConsumed, 60) || !almostEqual(log.FatConsumed, 12.25) {
		t.Errorf("macros = %v/%v/%v", log.ProteinConsumed, log.CarbsConsumed, log.FatConsumed)
	}
	if !almostEqual(log.WaterConsumed, 1.5) {
		t.Errorf("water = %v, want 1.5", log.WaterConsumed)
	}
}

func TestAccumulationOrderInsensitiveTotals(t *testing.T) {
	s := NewLogService(testDB(t))

	d1 := LogDelta{CaloriesConsumed: 300, ProteinConsumed: 20}
	d2 := LogDelta{CaloriesConsumed: 150, WaterConsumed: 2}

	for _, d := range []LogDelta{d1, d2} {
		if _, err := s.UpdateDailyLog(20, "2026-08-11", d, nil); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []LogDelta{d2, d1} {
		if _, err := s.UpdateDailyLog(21, "2026-08-11", d, nil); err != nil {
			t.Fatal(err)
		}
	}

	a, _ := s.GetDailyLog(20, "2026-08-11")
	b, _ := s.GetDailyLog(21, "2026-08-11")
	if a.CaloriesConsumed != b.CaloriesConsumed ||
		!almostEqual(a.ProteinConsumed, b.ProteinConsumed) ||
		!almostEqual(a.WaterConsumed, b.WaterConsumed) {
		t.Errorf("totals depend on delta order: %+v vs %+v", a, b)
	}
}

func TestUpdateDailyLogIsolatesDays(t *testing.T) {
	s := NewLogService(testDB(t))

	if _, err := s.UpdateDailyLog(1, "2026-08-11", LogDelta{CaloriesConsumed: 100}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateDailyLog(1, "2026-08-12", LogDelta{CaloriesConsumed: 200}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateDailyLog(2, "2026-08-11", LogDelta{CaloriesConsumed: 400}, nil); err != nil {
		t.Fatal(err)
	}

	log, _ := s.GetDailyLog(1, "2026-08-11")
	if log.CaloriesConsumed != 100 {
		t.Errorf("day bled across keys: %d", log.CaloriesConsumed)
	}
}

func TestActivityOrderPreserved(t *testing.T) {
	s := NewLogService(testDB(t))

	titles := []string{"Oatmeal", "Drank Water", "Run Session (30m)", "Chicken Salad"}
	for _, title := range titles {
		_, err := s.UpdateDailyLog(3, "2026-08-13", LogDelta{}, &models.ActivityItem{Title: title})
		if err != nil {
			t.Fatalf("append %q: %v", title, err)
		}
	}

	log, err := s.GetDailyLog(3, "2026-08-13")
	if err != nil {
		t.Fatal(err)
	}
	if len(log.Activities) != len(titles) {
		t.Fatalf("got %d activities, want %d", len(log.Activities), len(titles))
	}
	for i, a := range log.Activities {
		if a.Title != titles[i] {
			t.Errorf("activity[%d] = %q, want %q", i, a.Title, titles[i])
		}
		if a.Token == "" {
			t.Errorf("activity[%d] missing generated id", i)
		}
		if a.Timestamp.IsZero() {
			t.Errorf("activity[%d] missing timestamp", i)
		}
	}
}

func TestLogFoodMirrorsTotals(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.LogFood(4, "2026-08-14", FoodInput{
		Title: "Banana", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, ServingInfo: "1 medium",
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.CaloriesConsumed != 105 || !almostEqual(log.ProteinConsumed, 1.3) {
		t.Errorf("totals not mirrored: %+v", log)
	}
	if len(log.Activities) != 1 {
		t.Fatalf("want one activity, got %d", len(log.Activities))
	}
	a := log.Activities[0]
	if a.Type != models.ActivityFood || a.Title != "Banana" || a.ServingInfo != "1 medium" {
		t.Errorf("activity = %+v", a)
	}
}

func TestLogWaterConvertsToGlasses(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.LogWater(5, "2026-08-15", 625)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(log.WaterConsumed, 2.5) {
		t.Errorf("water = %v glasses, want 2.5", log.WaterConsumed)
	}
	if len(log.Activities) != 1 || log.Activities[0].Title != "Drank Water" {
		t.Errorf("unexpected activity: %+v", log.Activities)
	}
	if log.Activities[0].Type != models.ActivityFood {
		t.Errorf("water entries group with food, got type %q", log.Activities[0].Type)
	}

	if _, err := s.LogWater(5, "2026-08-15", 0); err == nil {
		t.Error("zero milliliters should be rejected")
	}
}

func TestLogExerciseZeroDurationIsNoOp(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.LogExercise(6, "2026-08-16", "Run", 2, 0, 70)
	if err != nil {
		t.Fatal(err)
	}
	if log.CaloriesBurned != 0 || len(log.Activities) != 0 {
		t.Errorf("no-op wrote something: %+v", log)
	}

	var count int64
	s.db.Model(&models.DailyLog{}).Where("user_id = ?", 6).Count(&count)
	if count != 0 {
		t.Errorf("row materialized for a no-op, count = %d", count)
	}
}

func TestLogExerciseRecordsBurn(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.LogExercise(8, "2026-08-17", "Run", 2, 30, 70)
	if err != nil {
		t.Fatal(err)
	}
	want := EstimateCaloriesBurned("Run", "Medium", 30, 70)
	if log.CaloriesBurned != want {
		t.Errorf("burned = %d, want %d", log.CaloriesBurned, want)
	}
	a := log.Activities[0]
	if a.Title != "Run Session (30m)" || a.Type != models.ActivityExercise {
		t.Errorf("activity = %+v", a)
	}
	if a.Intensity != "Medium" || a.Duration != 30 {
		t.Errorf("intensity/duration = %q/%d", a.Intensity, a.Duration)
	}
}

func TestLogManualExercise(t *testing.T) {
	s := NewLogService(testDB(t))

	log, err := s.LogManualExercise(9, "2026-08-18", "", 150)
	if err != nil {
		t.Fatal(err)
	}
	if log.CaloriesBurned != 150 {
		t.Errorf("burned = %d, want 150", log.CaloriesBurned)
	}
	if log.Activities[0].Title != "Exercise" {
		t.Errorf("empty title should default, got %q", log.Activities[0].Title)
	}

	if _, err := s.LogManualExercise(9, "2026-08-18", "Swim", 0); err == nil {
		t.Error("non-positive calories should be rejected")
	}
}

func TestAggregatesMatchActivities(t *testing.T) {
	s := NewLogService(testDB(t))

	if _, err := s.LogFood(10, "2026-08-19", FoodInput{Title: "Eggs", Calories: 220, Protein: 18}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogFood(10, "2026-08-19", FoodInput{Title: "Rice", Calories: 300, Carbs: 64}); err != nil {
		t.Fatal(err)
	}
	log, err := s.LogWater(10, "2026-08-19", 500)
	if err != nil {
		t.Fatal(err)
	}

	var calories, water float64
	for _, a := range log.Activities {
		if a.Type == models.ActivityFood {
			calories += a.Calories
			water += a.Water
		}
	}
	if int(calories) != log.CaloriesConsumed {
		t.Errorf("activity calories %v != aggregate %d", calories, log.CaloriesConsumed)
	}
	if !almostEqual(water, log.WaterConsumed) {
		t.Errorf("activity water %v != aggregate %v", water, log.WaterConsumed)
	}
}

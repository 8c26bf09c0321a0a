package services

import (
	"testing"
	"time"

	"backend/config"
	"backend/models"
)

func TestUsersNeedingReminder(t *testing.T) {
	db := testDB(t)
	logs := NewLogService(db)
	p := &PushService{db: db, logs: logs}

	logged := models.User{Email: "logged@example.com", Password: "x", Onboarded: true}
	idle := models.User{Email: "idle@example.com", Password: "x", Onboarded: true}
	fresh := models.User{Email: "fresh@example.com", Password: "x", Onboarded: false}
	for _, u := range []*models.User{&logged, &idle, &fresh} {
		if err := db.Create(u).Error; err != nil {
			t.Fatal(err)
		}
	}

	date := "2026-08-27"
	if _, err := logs.LogFood(logged.ID, date, FoodInput{Title: "Yogurt", Calories: 120}); err != nil {
		t.Fatal(err)
	}

	pending, err := p.usersNeedingReminder(date)
	if err != nil {
		t.Fatalf("usersNeedingReminder: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d users, want 1", len(pending))
	}
	if pending[0].ID != idle.ID {
		t.Errorf("pending user = %d, want %d", pending[0].ID, idle.ID)
	}
}

func TestMaybeSendStreakReward(t *testing.T) {
	db := testDB(t)
	prev := config.DB
	config.DB = db
	defer func() { config.DB = prev }()

	p := &PushService{db: db, logs: NewLogService(db)}
	weekStart := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	rewards := func() int64 {
		var n int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND title = ?", 1, streakRewardTitle).
			Count(&n)
		return n
	}

	p.MaybeSendStreakReward(1, weekStart, 6)
	if got := rewards(); got != 0 {
		t.Fatalf("partial week sent %d rewards", got)
	}

	p.MaybeSendStreakReward(1, weekStart, 7)
	if got := rewards(); got != 1 {
		t.Fatalf("full week sent %d rewards, want 1", got)
	}

	var n models.Notification
	if err := db.Where("user_id = ? AND title = ?", 1, streakRewardTitle).First(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n.Type != models.NotificationSystem {
		t.Errorf("reward type = %q, want %q", n.Type, models.NotificationSystem)
	}

	// repeated triggers within the same week stay deduped
	p.MaybeSendStreakReward(1, weekStart, 7)
	if got := rewards(); got != 1 {
		t.Errorf("duplicate reward sent, count = %d", got)
	}
}

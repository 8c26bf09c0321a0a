package services

import (
	"testing"
	"time"

	"backend/models"
)

func TestInsightStale(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	ttl := 6 * time.Hour

	cases := []struct {
		name        string
		generatedAt time.Time
		want        bool
	}{
		{"fresh", now.Add(-5 * time.Hour), false},
		{"exactly at ttl", now.Add(-6 * time.Hour), false},
		{"past ttl", now.Add(-7 * time.Hour), true},
		{"just written", now, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			insight := &models.AIInsight{GeneratedAt: c.generatedAt}
			if got := InsightStale(insight, now, ttl); got != c.want {
				t.Errorf("InsightStale = %v, want %v", got, c.want)
			}
		})
	}

	if !InsightStale(nil, now, ttl) {
		t.Error("missing insight must read as stale")
	}
}

func TestNewInsightServiceTTLOverride(t *testing.T) {
	t.Setenv("INSIGHTS_TTL_SECONDS", "120")
	s := NewInsightService(testDB(t), NewGeminiService())
	if s.ttl != 2*time.Minute {
		t.Errorf("ttl = %v, want 2m", s.ttl)
	}

	t.Setenv("INSIGHTS_TTL_SECONDS", "not a number")
	s = NewInsightService(testDB(t), NewGeminiService())
	if s.ttl != DefaultInsightTTL {
		t.Errorf("ttl = %v, want default %v", s.ttl, DefaultInsightTTL)
	}
}

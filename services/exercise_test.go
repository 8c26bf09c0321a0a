package services

import "testing"

func TestIntensityLabel(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{1, "Low"},
		{2, "Medium"},
		{3, "High"},
		{0, "Medium"},
		{9, "Medium"},
	}
	for _, c := range cases {
		if got := IntensityLabel(c.value); got != c.want {
			t.Errorf("IntensityLabel(%d) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestEstimateCaloriesBurned(t *testing.T) {
	cases := []struct {
		name      string
		exercise  string
		intensity string
		duration  int
		weight    float64
		want      int
	}{
		// 8.3 * 70 * 3.5 / 200 * 30 = 305.025
		{"run medium", "Run", "Medium", 30, 70, 305},
		// 6.0 * 80 * 3.5 / 200 * 45 = 378
		{"lifting high", "Weight Lifting", "High", 45, 80, 378},
		// 3.0 * 70 * 3.5 / 200 * 60 = 220.5 rounds up
		{"lifting low", "Weight Lifting", "Low", 60, 70, 221},
		// unknown exercise uses the Run table
		{"unknown exercise", "Jazzercise", "Medium", 30, 70, 305},
		// unknown intensity uses Medium
		{"unknown intensity", "Run", "Extreme", 30, 70, 305},
		// missing weight assumes 70 kg
		{"no weight", "Run", "Medium", 30, 0, 305},
		{"zero duration", "Run", "Medium", 0, 70, 0},
		{"negative duration", "Run", "Medium", -5, 70, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EstimateCaloriesBurned(c.exercise, c.intensity, c.duration, c.weight)
			if got != c.want {
				t.Errorf("EstimateCaloriesBurned = %d, want %d", got, c.want)
			}
		})
	}
}

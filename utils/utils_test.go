package utils

import (
	"testing"
	"time"
)

func TestCalculateAge(t *testing.T) {
	now := time.Now()

	birthday := now.AddDate(-30, 0, -1) // turned 30 yesterday
	if got := CalculateAge(birthday); got != 30 {
		t.Errorf("age = %d, want 30", got)
	}

	upcoming := now.AddDate(-30, 0, 1) // turns 30 tomorrow
	if got := CalculateAge(upcoming); got != 29 {
		t.Errorf("age = %d, want 29", got)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22222")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22222" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPasswordHash("hunter22222", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(6)
	b := GenerateRandomToken(6)
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("lengths = %d, %d", len(a), len(b))
	}
	if a == b {
		t.Error("two tokens in a row collided")
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

type ProfileInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	Goal           string  `json:"goal"`
	ProfilePicture string  `json:"profile_picture"` // base64 data URI
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	age := 0
	if !user.BirthDate.IsZero() {
		age = utils.CalculateAge(user.BirthDate)
	}

	var plan models.FitnessPlan
	hasPlan := config.DB.Where("user_id = ?", userID).First(&plan).Error == nil

	out := map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"profile_image":     user.ProfileImage,
		"gender":            user.Gender,
		"birth_date":        user.BirthDate.Format("2006-01-02"),
		"age":               age,
		"height":            user.Height,
		"weight":            user.Weight,
		"goal":              user.Goal,
		"workout_frequency": user.WorkoutFrequency,
		"onboarded":         user.Onboarded,
	}
	if hasPlan {
		out["fitness_plan"] = planResponse(&plan)
	}
	return out, nil
}

func planResponse(plan *models.FitnessPlan) map[string]interface{} {
	tips := []string{}
	if plan.Tips != "" {
		tips = strings.Split(plan.Tips, "\n")
	}
	return map[string]interface{}{
		"dailyCalories": plan.DailyCalories,
		"macros": map[string]float64{
			"protein": plan.ProteinG,
			"carbs":   plan.CarbsG,
			"fats":    plan.FatG,
		},
		"waterIntake": plan.WaterIntake,
		"workoutPlan": plan.WorkoutPlan,
		"fitnessTips": tips,
	}
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.Goal != "" {
		user.Goal = input.Goal
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfileImage = url
	}

	return config.DB.Save(&user).Error
}

// CompleteOnboarding stores the questionnaire answers and generates the
// user's fitness plan from them.
func CompleteOnboarding(
	ctx context.Context,
	gemini *GeminiService,
	userID uint,
	gender string,
	birthDate time.Time,
	height, weight float64,
	goal, workoutFrequency string,
) (*models.FitnessPlan, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	user.Gender = gender
	user.BirthDate = birthDate
	user.Height = height
	user.Weight = weight
	user.Goal = goal
	user.WorkoutFrequency = workoutFrequency
	user.Onboarded = true

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}

	generated, err := gemini.GenerateFitnessPlan(ctx, &user)
	if err != nil {
		return nil, err
	}

	plan := models.FitnessPlan{
		UserID:        userID,
		DailyCalories: generated.DailyCalories,
		ProteinG:      generated.Macros.Protein,
		CarbsG:        generated.Macros.Carbs,
		FatG:          generated.Macros.Fats,
		WaterIntake:   generated.WaterIntake,
		WorkoutPlan:   generated.WorkoutPlan,
		Tips:          strings.Join(generated.FitnessTips, "\n"),
	}

	// A re-run of onboarding replaces the previous plan.
	var existing models.FitnessPlan
	if err := config.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		plan.ID = existing.ID
		plan.CreatedAt = existing.CreatedAt
	}
	if err := config.DB.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

type PlanInput struct {
	DailyCalories int     `json:"daily_calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	WaterIntake   string  `json:"water_intake"`
}

// UpdateFitnessPlan applies user edits to the generated targets. Zero
// fields keep the stored value.
func UpdateFitnessPlan(userID uint, input PlanInput) (*models.FitnessPlan, error) {
	var plan models.FitnessPlan
	if err := config.DB.Where("user_id = ?", userID).First(&plan).Error; err != nil {
		return nil, errors.New("no fitness plan to update")
	}

	if input.DailyCalories > 0 {
		plan.DailyCalories = input.DailyCalories
	}
	if input.ProteinG > 0 {
		plan.ProteinG = input.ProteinG
	}
	if input.CarbsG > 0 {
		plan.CarbsG = input.CarbsG
	}
	if input.FatG > 0 {
		plan.FatG = input.FatG
	}
	if input.WaterIntake != "" {
		plan.WaterIntake = input.WaterIntake
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// LogWeight appends to the weight history and mirrors the latest value on
// the profile. History entries are never edited or pruned.
func LogWeight(userID uint, weight float64, date time.Time) error {
	if weight <= 0 {
		return errors.New("weight must be positive")
	}

	entry := models.WeightEntry{UserID: userID, Weight: weight, Date: date}
	if err := config.DB.Create(&entry).Error; err != nil {
		return err
	}

	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("weight", weight).Error
}

func GetWeightHistory(userID uint) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

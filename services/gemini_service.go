package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"backend/models"
	"backend/utils"
)

type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (gs *GeminiService) prompt(ctx context.Context, parts []geminiPart) (string, error) {
	if gs.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	requestBody := geminiRequest{Contents: []geminiContent{{Parts: parts}}}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", gs.baseURL, gs.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}

// cleanLLMResponse strips markdown fences and anything outside the outermost
// JSON object; models include them despite instructions.
func cleanLLMResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end != -1 && end > start {
		response = response[start : end+1]
	}
	return response
}

// FitnessPlanResult mirrors the JSON structure the model is asked for.
type FitnessPlanResult struct {
	DailyCalories int `json:"dailyCalories"`
	Macros        struct {
		Protein float64 `json:"protein"`
		Carbs   float64 `json:"carbs"`
		Fats    float64 `json:"fats"`
	} `json:"macros"`
	WaterIntake string   `json:"waterIntake"`
	FitnessTips []string `json:"fitnessTips"`
	WorkoutPlan string   `json:"workoutPlan"`
}

func (gs *GeminiService) GenerateFitnessPlan(ctx context.Context, user *models.User) (*FitnessPlanResult, error) {
	age := utils.CalculateAge(user.BirthDate)

	prompt := fmt.Sprintf(`You are an expert fitness and nutrition coach.
Based on the following user profile, generate a personalized fitness and nutrition plan.

User Profile:
- Gender: %s
- Age: %d
- Height: %.0f cm
- Weight: %.0f kg
- Goal: %s
- Workout Frequency: %s

Provide the response in strict JSON format with the following structure:
{
  "dailyCalories": number,
  "macros": {
    "protein": number (grams),
    "carbs": number (grams),
    "fats": number (grams)
  },
  "waterIntake": string (e.g., "2-3 liters"),
  "fitnessTips": ["tip1", "tip2", "tip3"],
  "workoutPlan": "Brief summary of recommended workout routine"
}

Do not include any markdown formatting. Just return the raw JSON string.`,
		user.Gender, age, user.Height, user.Weight, user.Goal, user.WorkoutFrequency)

	text, err := gs.prompt(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		utils.AIGenerations.WithLabelValues("fitness_plan", "error").Inc()
		return nil, err
	}

	var plan FitnessPlanResult
	if err := json.Unmarshal([]byte(cleanLLMResponse(text)), &plan); err != nil {
		utils.AIGenerations.WithLabelValues("fitness_plan", "parse_error").Inc()
		return nil, fmt.Errorf("malformed plan response: %w", err)
	}
	utils.AIGenerations.WithLabelValues("fitness_plan", "ok").Inc()
	return &plan, nil
}

// FoodAnalysis is the model's nutrition estimate for one photographed food.
type FoodAnalysis struct {
	FoodName    string  `json:"foodName"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingSize string  `json:"servingSize"`
}

func (gs *GeminiService) AnalyzeFoodImage(ctx context.Context, base64Image string) (*FoodAnalysis, error) {
	prompt := `You are an expert nutritionist AI.
Analyze this image and identify the primary food or dish shown.
Estimate the standard serving size, calories, and macronutrients.

If the image is completely unrecognizable as food, do your best guess or identify the objects, but still follow the strict JSON structure.

Provide the response in STRICT JSON format EXACTLY like this structure:
{
  "foodName": "String (e.g. Apple, Pepperoni Pizza, Grilled Chicken)",
  "calories": Number (e.g. 95),
  "protein": Number (e.g. 0.5),
  "carbs": Number (e.g. 25),
  "fat": Number (e.g. 0.3),
  "servingSize": "String (e.g. 1 medium (182g), 1 slice (100g))"
}

Do not include any markdown formatting. Just return the raw JSON string.`

	text, err := gs.prompt(ctx, []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: base64Image}},
	})
	if err != nil {
		utils.AIGenerations.WithLabelValues("food_image", "error").Inc()
		return nil, err
	}

	var analysis FoodAnalysis
	if err := json.Unmarshal([]byte(cleanLLMResponse(text)), &analysis); err != nil {
		utils.AIGenerations.WithLabelValues("food_image", "parse_error").Inc()
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	utils.AIGenerations.WithLabelValues("food_image", "ok").Inc()
	return &analysis, nil
}

type weeklyInsightResult struct {
	Motivation             string `json:"motivation"`
	NutritionTip           string `json:"nutritionTip"`
	ActivityRecommendation string `json:"activityRecommendation"`
	WeeklySummary          string `json:"weeklySummary"`
}

func (gs *GeminiService) GenerateWeeklyInsights(ctx context.Context, user *models.User, weekLogs []models.DailyLog) (*models.AIInsight, error) {
	var sb strings.Builder
	sb.WriteString("You are a supportive fitness coach. Here is the user's week of logs:\n")
	for _, l := range weekLogs {
		fmt.Fprintf(&sb,
			"- %s: %d kcal eaten, %d kcal burned, %.1fg protein, %.1f glasses of water, %d activities\n",
			l.Date, l.CaloriesConsumed, l.CaloriesBurned, l.ProteinConsumed, l.WaterConsumed, len(l.Activities))
	}
	fmt.Fprintf(&sb, "\nThe user's goal is: %s.\n", user.Goal)
	sb.WriteString(`
Provide the response in strict JSON format with the following structure:
{
  "motivation": "One short motivating sentence",
  "nutritionTip": "One practical nutrition tip based on the data",
  "activityRecommendation": "One activity suggestion based on the data",
  "weeklySummary": "Two sentences summarizing the week"
}

Do not include any markdown formatting. Just return the raw JSON string.`)

	text, err := gs.prompt(ctx, []geminiPart{{Text: sb.String()}})
	if err != nil {
		utils.AIGenerations.WithLabelValues("weekly_insights", "error").Inc()
		return nil, err
	}

	var res weeklyInsightResult
	if err := json.Unmarshal([]byte(cleanLLMResponse(text)), &res); err != nil {
		utils.AIGenerations.WithLabelValues("weekly_insights", "parse_error").Inc()
		return nil, fmt.Errorf("malformed insights response: %w", err)
	}
	utils.AIGenerations.WithLabelValues("weekly_insights", "ok").Inc()

	return &models.AIInsight{
		UserID:                 user.ID,
		Motivation:             res.Motivation,
		NutritionTip:           res.NutritionTip,
		ActivityRecommendation: res.ActivityRecommendation,
		WeeklySummary:          res.WeeklySummary,
		GeneratedAt:            time.Now(),
	}, nil
}

package services

import (
	"context"
	"fmt"

	"backend/utils"

	"go.uber.org/zap"
)

// FoodService ties the food integrations together: text search against the
// food database and photo analysis through the AI, with a label-detection
// fallback when the AI call fails.
type FoodService struct {
	gemini *GeminiService
	fs     *FatSecretService
	rek    *RekognitionService
}

func NewFoodService(gemini *GeminiService, fs *FatSecretService, rek *RekognitionService) *FoodService {
	return &FoodService{gemini: gemini, fs: fs, rek: rek}
}

func (s *FoodService) Search(query string, maxResults int) ([]FoodSearchResult, error) {
	return s.fs.SearchFoods(query, maxResults)
}

// AnalyzeImage estimates nutrition from a food photo. The AI answers
// directly; if it is unavailable or returns garbage, the image is label-
// detected and the top label searched in the food database instead.
func (s *FoodService) AnalyzeImage(ctx context.Context, base64Img string) (*FoodAnalysis, error) {
	analysis, err := s.gemini.AnalyzeFoodImage(ctx, base64Img)
	if err == nil {
		return analysis, nil
	}
	utils.Logger.Warn("food_image_ai_failed", zap.Error(err))

	if s.rek == nil {
		return nil, err
	}
	labels, rerr := s.rek.RecognizeLabels(ctx, base64Img)
	if rerr != nil || len(labels) == 0 {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	results, serr := s.fs.SearchFoods(labels[0], 1)
	if serr != nil || len(results) == 0 {
		return nil, fmt.Errorf("no nutrition data for %q: %w", labels[0], err)
	}

	top := results[0]
	return &FoodAnalysis{
		FoodName:    top.Name,
		Calories:    float64(top.Calories),
		Protein:     top.Protein,
		Carbs:       top.Carbs,
		Fat:         top.Fat,
		ServingSize: top.ServingSize,
	}, nil
}

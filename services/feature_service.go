package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"backend/config"
	"backend/models"
)

func SubmitFeatureRequest(userID uint, title, description string) (*models.FeatureRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	req := models.FeatureRequest{
		Title:        title,
		Description:  strings.TrimSpace(description),
		UserID:       userID,
		UserFullName: strings.TrimSpace(user.FirstName + " " + user.LastName),
	}
	if err := config.DB.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListFeatureRequests returns all requests, most upvoted first, with a
// per-caller flag marking the ones they already voted for.
func ListFeatureRequests(userID uint) ([]map[string]interface{}, error) {
	var requests []models.FeatureRequest
	if err := config.DB.
		Order("upvotes DESC, created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	var votes []models.FeatureUpvote
	if err := config.DB.Where("user_id = ?", userID).Find(&votes).Error; err != nil {
		return nil, err
	}
	voted := make(map[uint]bool, len(votes))
	for _, v := range votes {
		voted[v.FeatureRequestID] = true
	}

	out := make([]map[string]interface{}, 0, len(requests))
	for _, r := range requests {
		out = append(out, map[string]interface{}{
			"id":             r.ID,
			"title":          r.Title,
			"description":    r.Description,
			"user_full_name": r.UserFullName,
			"upvotes":        r.Upvotes,
			"has_upvoted":    voted[r.ID],
			"created_at":     r.CreatedAt,
		})
	}
	return out, nil
}

// ToggleUpvote adds or removes the caller's vote and returns the new count
// and whether the caller now has a vote on the request.
func ToggleUpvote(userID, requestID uint) (int, bool, error) {
	var req models.FeatureRequest
	if err := config.DB.First(&req, requestID).Error; err != nil {
		return 0, false, errors.New("feature request not found")
	}

	var upvoted bool
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var vote models.FeatureUpvote
		err := tx.Where("feature_request_id = ? AND user_id = ?", requestID, userID).
			First(&vote).Error
		switch {
		case err == nil:
			if err := tx.Unscoped().Delete(&vote).Error; err != nil {
				return err
			}
			upvoted = false
			return tx.Model(&models.FeatureRequest{}).
				Where("id = ? AND upvotes > 0", requestID).
				Update("upvotes", gorm.Expr("upvotes - 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.FeatureUpvote{
				FeatureRequestID: requestID,
				UserID:           userID,
			}).Error; err != nil {
				return err
			}
			upvoted = true
			return tx.Model(&models.FeatureRequest{}).
				Where("id = ?", requestID).
				Update("upvotes", gorm.Expr("upvotes + 1")).Error
		default:
			return err
		}
	})
	if err != nil {
		return 0, false, err
	}

	if err := config.DB.First(&req, requestID).Error; err != nil {
		return 0, false, err
	}
	return req.Upvotes, upvoted, nil
}

package models

import "gorm.io/gorm"

type FeatureRequest struct {
	gorm.Model
	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	UserID       uint   `gorm:"index" json:"user_id"`
	UserFullName string `json:"user_full_name"`
	Upvotes      int    `json:"upvotes"`
}

// FeatureUpvote prevents double voting; the unique index makes the toggle
// idempotent under concurrent requests.
type FeatureUpvote struct {
	gorm.Model
	FeatureRequestID uint `gorm:"not null;uniqueIndex:idx_request_user"`
	UserID           uint `gorm:"not null;uniqueIndex:idx_request_user"`
}

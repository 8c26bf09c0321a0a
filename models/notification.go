package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationSystem = "system"
	NotificationAdmin  = "admin"
)

// Notification is one entry in a user's notification history.
type Notification struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"-"`
	Title  string `json:"title"`
	Body   string `gorm:"type:text" json:"body"`
	Type   string `gorm:"size:10" json:"type"` // "system" | "admin"
	IsRead bool   `json:"isRead"`

	// Set for broadcast-sourced entries so the same broadcast is never
	// merged into a user's history twice.
	AdminBroadcastID uint `gorm:"index" json:"-"`
}

// AdminBroadcast is a global announcement merged into matching users'
// histories on sync.
type AdminBroadcast struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Target    string    `gorm:"size:10" json:"target"` // "all" | "free" | "premium"
	CreatedAt time.Time `json:"createdAt"`
}

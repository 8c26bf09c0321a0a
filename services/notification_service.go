package services

import (
	"errors"

	"backend/config"
	"backend/models"
)

// CreateSystemNotification writes a notification into a single user's
// history. Used for reminders, streak rewards and plan updates.
func CreateSystemNotification(userID uint, title, body string) (*models.Notification, error) {
	n := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   models.NotificationSystem,
	}
	if err := config.DB.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// SyncBroadcasts merges admin broadcasts targeting the user's tier into
// their history. Already-merged broadcasts are skipped, so the sync is
// safe to run on every history fetch.
func SyncBroadcasts(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	// All users are on the free tier for now.
	tier := "free"

	var broadcasts []models.AdminBroadcast
	if err := config.DB.
		Where("target = ? OR target = ?", "all", tier).
		Find(&broadcasts).Error; err != nil {
		return err
	}
	if len(broadcasts) == 0 {
		return nil
	}

	var seen []uint
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND admin_broadcast_id > 0", userID).
		Pluck("admin_broadcast_id", &seen).Error; err != nil {
		return err
	}
	merged := make(map[uint]bool, len(seen))
	for _, id := range seen {
		merged[id] = true
	}

	for _, b := range broadcasts {
		if merged[b.ID] {
			continue
		}
		n := models.Notification{
			UserID:           userID,
			Title:            b.Title,
			Body:             b.Body,
			Type:             models.NotificationAdmin,
			AdminBroadcastID: b.ID,
		}
		if err := config.DB.Create(&n).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetNotificationHistory syncs pending broadcasts, then returns the user's
// notifications newest first.
func GetNotificationHistory(userID uint) ([]models.Notification, error) {
	if err := SyncBroadcasts(userID); err != nil {
		return nil, err
	}

	var notifications []models.Notification
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func MarkNotificationRead(userID, notificationID uint) error {
	res := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func MarkAllNotificationsRead(userID uint) error {
	return config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func UnreadNotificationCount(userID uint) (int64, error) {
	var count int64
	err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CreateAdminBroadcast stores a broadcast; it reaches each user lazily on
// their next history sync.
func CreateAdminBroadcast(title, body, target string) (*models.AdminBroadcast, error) {
	switch target {
	case "all", "free", "premium":
	default:
		return nil, errors.New("invalid broadcast target")
	}
	b := models.AdminBroadcast{Title: title, Body: body, Target: target}
	if err := config.DB.Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

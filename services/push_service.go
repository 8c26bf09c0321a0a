package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"backend/models"
	"backend/utils"
)

// PushService delivers notifications to registered mobile devices through
// SNS platform endpoints and mirrors each push into the in-app history.
type PushService struct {
	db             *gorm.DB
	logs           *LogService
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		logs:           NewLogService(db),
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

func (p *PushService) tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device
// token. Re-registering the same token updates the existing row instead of
// adding a duplicate endpoint.
func (p *PushService) RegisterDevice(userID uint, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    strings.ToLower(platform),
		TokenHash:   p.tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		UpdatedAt:   time.Now(),
	}
	var existing models.UserDevice
	if err := p.db.Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		existing.Enabled = true
		existing.UpdatedAt = time.Now()
		if err := p.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err := p.db.Create(dev).Error; err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *PushService) pushToUser(userID uint, title, body string, data map[string]string) {
	var endpoints []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&endpoints).Error; err != nil {
		return
	}
	if len(endpoints) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}

	raw, _ := json.Marshal(msg)
	for _, d := range endpoints {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			utils.Logger.Warn("sns publish failed",
				zap.Uint("user_id", userID),
				zap.Error(err))
		}
	}
}

// Notify pushes to the user's devices and records the notification in
// their in-app history.
func (p *PushService) Notify(userID uint, title, body string, data map[string]string) {
	if _, err := CreateSystemNotification(userID, title, body); err != nil {
		utils.Logger.Warn("failed to store notification",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}
	p.pushToUser(userID, title, body, data)
}

// usersNeedingReminder returns every onboarded user whose ledger has no
// activities for the given date.
func (p *PushService) usersNeedingReminder(date string) ([]models.User, error) {
	var users []models.User
	if err := p.db.Where("onboarded = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}

	pending := make([]models.User, 0, len(users))
	for _, u := range users {
		log, err := p.logs.GetDailyLog(u.ID, date)
		if err != nil {
			continue
		}
		if len(log.Activities) > 0 {
			continue
		}
		pending = append(pending, u)
	}
	return pending, nil
}

// SendDailyReminders nudges every onboarded user who has logged nothing
// today. Intended to run from a scheduler around midday.
func (p *PushService) SendDailyReminders() {
	today := time.Now().Format("2006-01-02")
	users, err := p.usersNeedingReminder(today)
	if err != nil {
		utils.Logger.Error("daily reminder user query failed", zap.Error(err))
		return
	}

	for _, u := range users {
		p.Notify(u.ID,
			"Don't break your streak",
			"You haven't logged anything today. A single meal or glass of water keeps the day counting.",
			map[string]string{"screen": "log"})
	}
}

const streakRewardTitle = "Streak milestone"

// MaybeSendStreakReward congratulates a user whose week just became fully
// active. At most one reward per week; the notification history is the
// dedup record.
func (p *PushService) MaybeSendStreakReward(userID uint, weekStart time.Time, streak int) {
	if streak < 7 {
		return
	}

	var sent int64
	if err := p.db.Model(&models.Notification{}).
		Where("user_id = ? AND title = ? AND created_at >= ?", userID, streakRewardTitle, weekStart).
		Count(&sent).Error; err != nil || sent > 0 {
		return
	}

	p.Notify(userID,
		streakRewardTitle,
		fmt.Sprintf("%d active days this week. Keep it going!", streak),
		map[string]string{"screen": "dashboard"})
}

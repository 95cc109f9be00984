package notification

import (
	"context"
	"fmt"

	userRepo "skillswap/database/repository/user"
	"skillswap/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPushNotification(ctx context.Context, uid, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	UserRepo userRepo.UserRepository
}

// SendPushNotification looks up the user's FCM token and sends a push.
func (s *DefaultNotificationService) SendPushNotification(ctx context.Context, uid, title, body string, data map[string]string) error {
	user, err := s.UserRepo.GetByUID(uid)
	if err != nil {
		return fmt.Errorf("could not load user %s: %w", uid, err)
	}
	if user == nil || user.FCMToken == "" {
		return fmt.Errorf("user %s has no FCM token registered", uid)
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message to %s: %w", uid, err)
	}

	utils.GetLogger().Info("sent push notification",
		zap.String("uid", uid), zap.String("messageId", response))
	return nil
}

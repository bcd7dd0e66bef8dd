package notification

import (
	"context"
	"time"

	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// push sends an FCM message to the account's registered device. It is a
// secondary channel next to email: no Firebase client or no token means the
// push is silently skipped, and send failures are logged only.
func (d *DefaultDispatcher) push(user *models.User, title, body string) {
	if utils.FCMClient == nil || user == nil || user.FCMToken == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{"role": user.Role},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push notification failed",
			zap.String("userID", user.ID), zap.Error(err))
	}
}

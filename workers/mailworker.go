package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DDismyname28/home-portal/config"
	"github.com/DDismyname28/home-portal/services/notification"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewMailServer builds the asynq server that drains the notification mail
// queue. All email task types share one delivery handler.
func NewMailServer(cfg *config.Config) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisMailQueue,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{notification.QueueName: 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskRequestCreated, HandleEmailTask)
	mux.HandleFunc(notification.TaskRequestStatusChanged, HandleEmailTask)
	mux.HandleFunc(notification.TaskRequestNoteAdded, HandleEmailTask)
	mux.HandleFunc(notification.TaskWelcomeEmail, HandleEmailTask)
	return srv, mux
}

// HandleEmailTask delivers one queued email envelope over SMTP.
func HandleEmailTask(ctx context.Context, t *asynq.Task) error {
	logger := utils.GetLogger()

	var payload notification.EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("Undecodable mail task, dropping",
			zap.String("type", t.Type()), zap.Error(err))
		return nil
	}
	if payload.Envelope.To == "" {
		logger.Warn("Mail task without recipient, dropping",
			zap.String("type", t.Type()), zap.String("requestId", payload.RequestID))
		return nil
	}

	if err := utils.SendEmail(payload.Envelope.To, payload.Envelope.Subject, payload.Envelope.Body); err != nil {
		logger.Error("Email delivery failed",
			zap.String("type", t.Type()),
			zap.String("to", payload.Envelope.To),
			zap.Error(err))
		return fmt.Errorf("send %s to %s: %w", t.Type(), payload.Envelope.To, err)
	}

	logger.Info("Email delivered",
		zap.String("type", t.Type()), zap.String("to", payload.Envelope.To))
	return nil
}

package notification

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultDispatcher renders plain-text emails for lifecycle events and hands
// them to the mail queue. When the recipient account carries an FCM token a
// push is sent as a secondary channel.
type DefaultDispatcher struct {
	Users      userRepo.UserRepository
	Queue      TaskEnqueuer
	AdminEmail string
}

func NewDefaultDispatcher(users userRepo.UserRepository, queue TaskEnqueuer, adminEmail string) *DefaultDispatcher {
	return &DefaultDispatcher{Users: users, Queue: queue, AdminEmail: adminEmail}
}

func (d *DefaultDispatcher) RequestCreated(req *models.ServiceRequest) {
	logger := utils.GetLogger()

	requesterName, requesterEmail := d.requesterIdentity(req)

	var b strings.Builder
	b.WriteString("A new service request has been submitted:\n\n")
	fmt.Fprintf(&b, "Submitted by: %s <%s>\n", requesterName, requesterEmail)
	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	fmt.Fprintf(&b, "Date: %s\n", req.EffectiveDate())
	fmt.Fprintf(&b, "Time: %s\n", req.TimePreference)
	fmt.Fprintf(&b, "Description: %s\n", req.Description)
	for _, url := range req.Photos {
		fmt.Fprintf(&b, "Photo: %s\n", url)
	}
	body := b.String()

	d.enqueue(TaskRequestCreated, req.ID, EmailEnvelope{
		To:      d.AdminEmail,
		Subject: "New Service Request Submitted",
		Body:    body,
	})

	// The provider reference may be empty or unresolved; only a known
	// account gets a copy.
	if provider := d.resolveProvider(req); provider != nil {
		d.enqueue(TaskRequestCreated, req.ID, EmailEnvelope{
			To:      provider.Email,
			Subject: "New Service Request Submitted",
			Body:    body,
		})
		d.push(provider, "New service request", fmt.Sprintf("%s requested %s", requesterName, req.Category))
	} else if req.Provider != "" {
		logger.Warn("request creation notice: provider reference did not resolve",
			zap.String("requestID", req.ID), zap.String("provider", req.Provider))
	}
}

func (d *DefaultDispatcher) RequestStatusChanged(req *models.ServiceRequest, newStatus, newDescription string) {
	requester, err := d.Users.GetByID(req.RequesterID)
	if err != nil || requester == nil {
		utils.GetLogger().Warn("status change notice: requester not resolvable",
			zap.String("requestID", req.ID), zap.Error(err))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your service request %s has been updated.\n\n", req.ID)
	if newStatus != "" {
		fmt.Fprintf(&b, "New status: %s\n", newStatus)
	}
	if newDescription != "" {
		fmt.Fprintf(&b, "Updated description: %s\n", newDescription)
	}

	d.enqueue(TaskRequestStatusChanged, req.ID, EmailEnvelope{
		To:      requester.Email,
		Subject: "Your Service Request Was Updated",
		Body:    b.String(),
	})
	if newStatus != "" {
		d.push(requester, "Request "+newStatus, fmt.Sprintf("Your %s request is now %s", req.Category, newStatus))
	}
}

func (d *DefaultDispatcher) HistoryNoteAdded(req *models.ServiceRequest, entry models.HistoryEntry) {
	requester, err := d.Users.GetByID(req.RequesterID)
	if err != nil || requester == nil {
		utils.GetLogger().Warn("history note notice: requester not resolvable",
			zap.String("requestID", req.ID), zap.Error(err))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "There is a new update on your service request %s:\n\n", req.ID)
	fmt.Fprintf(&b, "%s\n\n", entry.Note)
	fmt.Fprintf(&b, "— %s, %s\n", entry.Author, entry.Timestamp.Format(time.RFC1123))

	d.enqueue(TaskRequestNoteAdded, req.ID, EmailEnvelope{
		To:      requester.Email,
		Subject: "New Update On Your Service Request",
		Body:    b.String(),
	})
	d.push(requester, "New update from "+entry.Author, entry.Note)
}

// enqueue hands one email to the queue. Failures are logged and swallowed;
// the lifecycle mutation has already committed.
func (d *DefaultDispatcher) enqueue(taskType, requestID string, env EmailEnvelope) {
	logger := utils.GetLogger()
	if env.To == "" {
		logger.Warn("notification skipped: no recipient",
			zap.String("task", taskType), zap.String("requestID", requestID))
		return
	}

	payload := EmailTaskPayload{
		RequestID: requestID,
		Event:     taskType,
		Envelope:  env,
		SentAt:    time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("notification dropped: payload marshal failed",
			zap.String("task", taskType), zap.Error(err))
		return
	}
	if _, err := d.Queue.Enqueue(asynq.NewTask(taskType, b), asynq.Queue(QueueName)); err != nil {
		logger.Warn("notification dropped: enqueue failed",
			zap.String("task", taskType), zap.String("requestID", requestID), zap.Error(err))
	}
}

// resolveProvider maps the stored provider reference to an account, trying
// the normalized ID first, then the raw reference as ID or login.
func (d *DefaultDispatcher) resolveProvider(req *models.ServiceRequest) *models.User {
	if req.ProviderID != "" {
		if u, err := d.Users.GetByID(req.ProviderID); err == nil && u != nil {
			return u
		}
	}
	if req.Provider == "" {
		return nil
	}
	if u, err := d.Users.GetByID(req.Provider); err == nil && u != nil {
		return u
	}
	if u, err := d.Users.GetByUsername(req.Provider); err == nil && u != nil {
		return u
	}
	return nil
}

func (d *DefaultDispatcher) requesterIdentity(req *models.ServiceRequest) (name, email string) {
	requester, err := d.Users.GetByID(req.RequesterID)
	if err != nil || requester == nil {
		return req.RequesterID, ""
	}
	return requester.DisplayName(), requester.Email
}

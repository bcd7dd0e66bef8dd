package notification

import "time"

// Task type constants for the mail queue.
const (
	TaskRequestCreated       = "email:request_created"
	TaskRequestStatusChanged = "email:request_status_changed"
	TaskRequestNoteAdded     = "email:request_note_added"
	TaskWelcomeEmail         = "email:welcome"
)

// QueueName is the asynq queue all notification emails ride on.
const QueueName = "emails"

// EmailEnvelope is the common shape of a queued email-like notification.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailTaskPayload is the serialized task body consumed by the mail worker.
type EmailTaskPayload struct {
	RequestID string        `json:"request_id"`
	Event     string        `json:"event"`
	Envelope  EmailEnvelope `json:"envelope"`
	SentAt    time.Time     `json:"sent_at"`
}

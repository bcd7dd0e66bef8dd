package notification

import (
	"github.com/DDismyname28/home-portal/models"

	"github.com/hibiken/asynq"
)

// Dispatcher fires notifications for request lifecycle events. Every method
// is best-effort: the mutation that caused the event has already committed,
// so delivery problems are logged and swallowed, never returned. This is a
// product decision, not an oversight.
type Dispatcher interface {
	// RequestCreated notifies the admin address and, when the provider
	// reference resolves to a known account, that provider.
	RequestCreated(req *models.ServiceRequest)
	// RequestStatusChanged notifies the requester. Either of newStatus
	// and newDescription may be empty when that field did not change.
	RequestStatusChanged(req *models.ServiceRequest, newStatus, newDescription string)
	// HistoryNoteAdded notifies the requester of a new provider note.
	HistoryNoteAdded(req *models.ServiceRequest, entry models.HistoryEntry)
}

// TaskEnqueuer is the slice of *asynq.Client the dispatcher needs. Tests
// substitute a recorder.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

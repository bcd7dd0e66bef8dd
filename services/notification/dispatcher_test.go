package notification

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DDismyname28/home-portal/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEnqueuer captures enqueued tasks instead of touching Redis.
type recordingEnqueuer struct {
	tasks []*asynq.Task
	fail  error
}

func (r *recordingEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (r *recordingEnqueuer) payloads(t *testing.T) []EmailTaskPayload {
	t.Helper()
	out := make([]EmailTaskPayload, 0, len(r.tasks))
	for _, task := range r.tasks {
		var p EmailTaskPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		out = append(out, p)
	}
	return out
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(u *models.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return r.users[id], nil }

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *models.User) error { return nil }

func (r *fakeUserRepo) UpdateFields(id string, fields map[string]interface{}) error { return nil }

func (r *fakeUserRepo) GetProviders() ([]models.User, error) { return nil, nil }

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{
		"member-1": {
			ID: "member-1", Username: "janedoe", Email: "jane@example.com",
			FirstName: "Jane", LastName: "Doe", Role: models.RoleHomeMember,
		},
		"pro-1": {
			ID: "pro-1", Username: "sunnywash", Email: "sunny@example.com",
			Role: models.RoleLocalProvider,
		},
	}}
}

func testRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:          "req-1",
		RequesterID: "member-1",
		Category:    "House washing",
		Provider:    "sunnywash",
		ProviderID:  "pro-1",
		Description: "Mold on the north wall",
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestRequestCreatedNotifiesAdminAndProvider(t *testing.T) {
	queue := &recordingEnqueuer{}
	d := NewDefaultDispatcher(testUsers(), queue, "admin@homeportal.local")

	d.RequestCreated(testRequest())

	payloads := queue.payloads(t)
	require.Len(t, payloads, 2)

	assert.Equal(t, "admin@homeportal.local", payloads[0].Envelope.To)
	assert.Equal(t, "sunny@example.com", payloads[1].Envelope.To)
	for _, p := range payloads {
		assert.Equal(t, "req-1", p.RequestID)
		assert.Equal(t, TaskRequestCreated, p.Event)
		assert.Equal(t, "New Service Request Submitted", p.Envelope.Subject)
		assert.Contains(t, p.Envelope.Body, "Jane Doe <jane@example.com>")
		assert.Contains(t, p.Envelope.Body, "Category: House washing")
		assert.Contains(t, p.Envelope.Body, "Mold on the north wall")
	}
}

func TestRequestCreatedUnresolvedProviderStillNotifiesAdmin(t *testing.T) {
	queue := &recordingEnqueuer{}
	d := NewDefaultDispatcher(testUsers(), queue, "admin@homeportal.local")

	req := testRequest()
	req.Provider = "nobody"
	req.ProviderID = ""
	d.RequestCreated(req)

	payloads := queue.payloads(t)
	require.Len(t, payloads, 1)
	assert.Equal(t, "admin@homeportal.local", payloads[0].Envelope.To)
}

func TestStatusChangedNotifiesRequester(t *testing.T) {
	queue := &recordingEnqueuer{}
	d := NewDefaultDispatcher(testUsers(), queue, "admin@homeportal.local")

	d.RequestStatusChanged(testRequest(), models.StatusActive, "Crew scheduled for Friday")

	payloads := queue.payloads(t)
	require.Len(t, payloads, 1)
	assert.Equal(t, "jane@example.com", payloads[0].Envelope.To)
	assert.Equal(t, TaskRequestStatusChanged, payloads[0].Event)
	assert.Contains(t, payloads[0].Envelope.Body, "New status: Active")
	assert.Contains(t, payloads[0].Envelope.Body, "Crew scheduled for Friday")
}

func TestHistoryNoteNotifiesRequester(t *testing.T) {
	queue := &recordingEnqueuer{}
	d := NewDefaultDispatcher(testUsers(), queue, "admin@homeportal.local")

	d.HistoryNoteAdded(testRequest(), models.HistoryEntry{
		Timestamp: time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC),
		Author:    "Sunny Wash Co",
		Note:      "Inspection done, quote to follow",
	})

	payloads := queue.payloads(t)
	require.Len(t, payloads, 1)
	assert.Equal(t, "jane@example.com", payloads[0].Envelope.To)
	assert.Contains(t, payloads[0].Envelope.Body, "Inspection done, quote to follow")
	assert.Contains(t, payloads[0].Envelope.Body, "Sunny Wash Co")
}

func TestEnqueueFailureIsSwallowed(t *testing.T) {
	queue := &recordingEnqueuer{fail: errors.New("redis down")}
	d := NewDefaultDispatcher(testUsers(), queue, "admin@homeportal.local")

	assert.NotPanics(t, func() {
		d.RequestCreated(testRequest())
		d.RequestStatusChanged(testRequest(), models.StatusActive, "")
		d.HistoryNoteAdded(testRequest(), models.HistoryEntry{Note: "hello"})
	})
}

func TestMissingRequesterSkipsDelivery(t *testing.T) {
	queue := &recordingEnqueuer{}
	d := NewDefaultDispatcher(&fakeUserRepo{users: map[string]*models.User{}}, queue, "admin@homeportal.local")

	d.RequestStatusChanged(testRequest(), models.StatusActive, "")
	d.HistoryNoteAdded(testRequest(), models.HistoryEntry{Note: "hello"})

	assert.Empty(t, queue.tasks)
}

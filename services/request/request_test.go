package request

import (
	"fmt"
	"testing"

	"github.com/DDismyname28/home-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestRepo is an in-memory RequestRepository.
type fakeRequestRepo struct {
	byID    map[string]*models.ServiceRequest
	failOps map[string]error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: map[string]*models.ServiceRequest{}, failOps: map[string]error{}}
}

func (r *fakeRequestRepo) Create(req *models.ServiceRequest) error {
	if err := r.failOps["create"]; err != nil {
		return err
	}
	cp := *req
	r.byID[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Update(req *models.ServiceRequest) error {
	stored, ok := r.byID[req.ID]
	if !ok {
		return fmt.Errorf("no request %s", req.ID)
	}
	// Mirrors the Mongo repo: history is excluded from updates and only
	// grows through AppendHistory.
	cp := *req
	cp.History = stored.History
	r.byID[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Delete(id string) error {
	if err := r.failOps["delete"]; err != nil {
		return err
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRequestRepo) ListByRequester(requesterID string) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, req := range r.byID {
		if req.RequesterID == requesterID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByProvider(providerID, login string) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, req := range r.byID {
		if req.ProviderID == providerID || req.Provider == providerID || (login != "" && req.Provider == login) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) AppendHistory(id string, entry models.HistoryEntry) ([]models.HistoryEntry, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("no request %s", id)
	}
	req.History = append(req.History, entry)
	return append([]models.HistoryEntry{}, req.History...), nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateFields(id string, fields map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) GetProviders() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.IsProvider() {
			out = append(out, *u)
		}
	}
	return out, nil
}

// recordingDispatcher captures notification events.
type recordingDispatcher struct {
	created       []string
	statusChanges []string
	notes         []string
}

func (d *recordingDispatcher) RequestCreated(req *models.ServiceRequest) {
	d.created = append(d.created, req.ID)
}

func (d *recordingDispatcher) RequestStatusChanged(req *models.ServiceRequest, newStatus, newDescription string) {
	d.statusChanges = append(d.statusChanges, req.ID+":"+newStatus)
}

func (d *recordingDispatcher) HistoryNoteAdded(req *models.ServiceRequest, entry models.HistoryEntry) {
	d.notes = append(d.notes, req.ID+":"+entry.Note)
}

func newTestService(users ...*models.User) (*DefaultRequestService, *fakeRequestRepo, *recordingDispatcher) {
	repo := newFakeRequestRepo()
	dispatcher := &recordingDispatcher{}
	svc := &DefaultRequestService{
		Repo:     repo,
		Users:    newFakeUserRepo(users...),
		Notifier: dispatcher,
	}
	return svc, repo, dispatcher
}

func provider(id, username string) *models.User {
	return &models.User{ID: id, Username: username, Email: username + "@example.com", Role: models.RoleLocalProvider}
}

func member(id, username string) *models.User {
	return &models.User{ID: id, Username: username, Email: username + "@example.com", Role: models.RoleHomeMember}
}

func TestCreateStartsPendingWithEmptyHistory(t *testing.T) {
	svc, repo, dispatcher := newTestService()

	req, err := svc.Create("member-1", CreateInput{Category: "Gutter cleaning", Description: "Back gutters are clogged"})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.NotNil(t, req.History)
	assert.Empty(t, req.History)
	assert.False(t, req.CreatedAt.IsZero())

	stored, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{req.ID}, dispatcher.created)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, _, dispatcher := newTestService()

	_, err := svc.Create("member-1", CreateInput{Category: "Chimney sweeping"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create("member-1", CreateInput{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, dispatcher.created)
}

func TestCreateRejectsBadTimePreference(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create("member-1", CreateInput{Category: "Pool care", TimePreference: "evening"})
	assert.ErrorIs(t, err, ErrValidation)

	req, err := svc.Create("member-1", CreateInput{Category: "Pool care", TimePreference: models.TimePM})
	require.NoError(t, err)
	assert.Equal(t, models.TimePM, req.TimePreference)
}

func TestCreateNormalizesProviderReference(t *testing.T) {
	pro := provider("pro-1", "sunnywash")

	t.Run("by id", func(t *testing.T) {
		svc, _, _ := newTestService(pro)
		req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "pro-1"})
		require.NoError(t, err)
		assert.Equal(t, "pro-1", req.ProviderID)
		assert.Equal(t, "pro-1", req.Provider)
	})

	t.Run("by login", func(t *testing.T) {
		svc, _, _ := newTestService(pro)
		req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "sunnywash"})
		require.NoError(t, err)
		assert.Equal(t, "pro-1", req.ProviderID)
		assert.Equal(t, "sunnywash", req.Provider)
	})

	t.Run("unresolved keeps raw reference", func(t *testing.T) {
		svc, _, _ := newTestService(pro)
		req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, req.ProviderID)
		assert.Equal(t, "nobody", req.Provider)
	})

	t.Run("member login does not resolve", func(t *testing.T) {
		svc, _, _ := newTestService(member("m-2", "plainmember"))
		req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "plainmember"})
		require.NoError(t, err)
		assert.Empty(t, req.ProviderID)
	})
}

func TestUpdateOwnerOnly(t *testing.T) {
	svc, _, _ := newTestService()
	req, err := svc.Create("member-1", CreateInput{Category: "Landscaping"})
	require.NoError(t, err)

	desc := "New hedge along the fence"
	_, err = svc.Update(req.ID, "member-2", UpdateInput{Description: &desc})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(req.ID, "member-1", UpdateInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
}

func TestUpdateAppendsPhotos(t *testing.T) {
	svc, _, _ := newTestService()
	req, err := svc.Create("member-1", CreateInput{Category: "Landscaping", Photos: []string{"a.jpg"}})
	require.NoError(t, err)

	updated, err := svc.Update(req.ID, "member-1", UpdateInput{PhotosToAppend: []string{"b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Photos)
}

// staleReadRepo lets one history entry land after the engine's read but
// before its write, the interleaving a full edit races against.
type staleReadRepo struct {
	*fakeRequestRepo
	entry    models.HistoryEntry
	injected bool
}

func (r *staleReadRepo) GetByID(id string) (*models.ServiceRequest, error) {
	stale, err := r.fakeRequestRepo.GetByID(id)
	if err != nil || stale == nil {
		return stale, err
	}
	if !r.injected {
		r.injected = true
		if _, err := r.fakeRequestRepo.AppendHistory(id, r.entry); err != nil {
			return nil, err
		}
	}
	return stale, nil
}

func TestFullEditKeepsConcurrentlyAppendedNote(t *testing.T) {
	svc, repo, _ := newTestService()
	req, err := svc.Create("member-1", CreateInput{Category: "Pest control"})
	require.NoError(t, err)

	note := models.HistoryEntry{Author: "Sunny Wash Co", Note: "On our way"}
	svc.Repo = &staleReadRepo{fakeRequestRepo: repo, entry: note}

	desc := "Wasps under the eaves"
	_, err = svc.Update(req.ID, "member-1", UpdateInput{Description: &desc})
	require.NoError(t, err)

	stored, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, desc, stored.Description)
	require.Len(t, stored.History, 1, "a note appended mid-edit must survive the member's write")
	assert.Equal(t, "On our way", stored.History[0].Note)
}

func TestUpdateUnknownRequest(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Update("ghost", "member-1", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReturnsFalseForNonOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	req, err := svc.Create("member-1", CreateInput{Category: "Pest control"})
	require.NoError(t, err)

	ok, err := svc.Delete(req.ID, "member-2")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, _ := repo.GetByID(req.ID)
	assert.NotNil(t, stored, "request must survive a failed ownership check")

	ok, err = svc.Delete(req.ID, "member-1")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ = repo.GetByID(req.ID)
	assert.Nil(t, stored)
}

func TestDeleteUnknownRequest(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Delete("ghost", "member-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusAssignedProviderOnly(t *testing.T) {
	assigned := provider("pro-1", "sunnywash")
	other := provider("pro-2", "rival")
	svc, _, dispatcher := newTestService(assigned, other)

	req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "sunnywash"})
	require.NoError(t, err)

	_, err = svc.UpdateStatusAndNote(req.ID, "pro-2", models.StatusActive, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.UpdateStatusAndNote(req.ID, "pro-1", models.StatusActive, "Crew scheduled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, "Crew scheduled", updated.Description)
	assert.Equal(t, []string{req.ID + ":" + models.StatusActive}, dispatcher.statusChanges)
}

func TestUpdateStatusLegacyRawReference(t *testing.T) {
	// Records written before normalization hold only the raw login.
	pro := provider("pro-1", "sunnywash")
	svc, repo, _ := newTestService(pro)

	req := &models.ServiceRequest{
		ID:          "legacy-1",
		RequesterID: "member-1",
		Category:    "House washing",
		Provider:    "sunnywash",
		Status:      models.StatusPending,
	}
	require.NoError(t, repo.Create(req))

	updated, err := svc.UpdateStatusAndNote("legacy-1", "pro-1", models.StatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	svc, _, _ := newTestService(pro)

	req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "pro-1"})
	require.NoError(t, err)

	_, err = svc.UpdateStatusAndNote(req.ID, "pro-1", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatusAndNote(req.ID, "pro-1", "Paused", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStrictPolicyBlocksReopeningTerminalStates(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	svc, repo, _ := newTestService(pro)
	svc.Policy = StrictPolicy{}

	req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "pro-1"})
	require.NoError(t, err)

	_, err = svc.UpdateStatusAndNote(req.ID, "pro-1", models.StatusCompleted, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatusAndNote(req.ID, "pro-1", models.StatusActive, "")
	assert.ErrorIs(t, err, ErrConflict)

	stored, _ := repo.GetByID(req.ID)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	// Terminal states may only go back to Pending.
	_, err = svc.UpdateStatusAndNote(req.ID, "pro-1", models.StatusPending, "")
	assert.NoError(t, err)
}

func TestAddHistoryNote(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	pro.FirstName = "Sunny"
	pro.LastName = "Washer"
	svc, _, dispatcher := newTestService(pro)

	req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "pro-1"})
	require.NoError(t, err)

	history, err := svc.AddHistoryNote(req.ID, "pro-1", "Inspected the site")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Sunny Washer", history[0].Author)
	assert.Equal(t, "Inspected the site", history[0].Note)
	assert.False(t, history[0].Timestamp.IsZero())

	history, err = svc.AddHistoryNote(req.ID, "pro-1", "Quote sent")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Inspected the site", history[0].Note)
	assert.Equal(t, "Quote sent", history[1].Note)
	assert.Len(t, dispatcher.notes, 2)
}

func TestAddHistoryNoteRejectsBlankAndStrangers(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	stranger := provider("pro-2", "rival")
	svc, _, _ := newTestService(pro, stranger)

	req, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "pro-1"})
	require.NoError(t, err)

	_, err = svc.AddHistoryNote(req.ID, "pro-1", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddHistoryNote(req.ID, "pro-2", "Sneaky note")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListForRequesterNeverNil(t *testing.T) {
	svc, _, _ := newTestService()
	out, err := svc.ListForRequester("member-1")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListingsFallBackToSubmissionDate(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	svc, _, _ := newTestService(pro)

	undated, err := svc.Create("member-1", CreateInput{Category: "Pool care", Provider: "pro-1"})
	require.NoError(t, err)
	dated, err := svc.Create("member-1", CreateInput{Category: "Pool care", Provider: "pro-1", ScheduledDate: "2026-10-01"})
	require.NoError(t, err)

	listed, err := svc.ListForRequester("member-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, req := range listed {
		switch req.ID {
		case undated.ID:
			assert.Equal(t, undated.CreatedAt.Format("2006-01-02"), req.ScheduledDate)
		case dated.ID:
			assert.Equal(t, "2026-10-01", req.ScheduledDate)
		}
	}

	views, err := svc.ListForProvider("pro-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, view := range views {
		assert.NotEmpty(t, view.ScheduledDate)
	}
}

func TestListForProviderJoinsRequesterIdentity(t *testing.T) {
	pro := provider("pro-1", "sunnywash")
	owner := member("member-1", "janedoe")
	owner.FirstName = "Jane"
	owner.LastName = "Doe"
	svc, _, _ := newTestService(pro, owner)

	_, err := svc.Create("member-1", CreateInput{Category: "House washing", Provider: "sunnywash"})
	require.NoError(t, err)

	views, err := svc.ListForProvider("pro-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Jane Doe", views[0].Requester)
	assert.Equal(t, "janedoe@example.com", views[0].RequesterEmail)
}

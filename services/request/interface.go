package request

import (
	requestRepo "github.com/DDismyname28/home-portal/database/repository/request"
	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/services/notification"
	"github.com/DDismyname28/home-portal/services/storage"
)

// CreateInput carries the member-supplied fields of a new request.
type CreateInput struct {
	Category       string
	Provider       string
	Description    string
	ScheduledDate  string
	TimePreference string
	Photos         []string
}

// UpdateInput carries a full edit by the owning member. Nil pointers leave
// the stored value untouched; PhotosToAppend extends the photo list.
type UpdateInput struct {
	Category       *string
	Provider       *string
	Description    *string
	ScheduledDate  *string
	TimePreference *string
	Status         *string
	PhotosToAppend []string
}

// RequestService is the lifecycle engine: it enforces ownership and
// transition rules on top of the request store and fires notifications
// after each committed change.
type RequestService interface {
	// Create registers a new request for a member. Status starts at
	// Pending with an empty history.
	Create(requesterID string, in CreateInput) (*models.ServiceRequest, error)
	// Update applies a full edit; only the original requester may call
	// it.
	Update(id, requesterID string, in UpdateInput) (*models.ServiceRequest, error)
	// UpdateStatusAndNote lets the assigned provider advance status
	// and/or replace the description. Empty strings leave a field
	// unchanged.
	UpdateStatusAndNote(id, callerID, newStatus, description string) (*models.ServiceRequest, error)
	// AddHistoryNote appends a provider-authored note and returns the
	// full history log.
	AddHistoryNote(id, callerID, note string) ([]models.HistoryEntry, error)
	// Delete removes a request. It returns false, not an error, when
	// the caller is not the owner.
	Delete(id, callerID string) (bool, error)
	// ListForRequester returns every request owned by a member.
	ListForRequester(requesterID string) ([]models.ServiceRequest, error)
	// ListForProvider returns requests assigned to a provider, joined
	// with the requester's display identity.
	ListForProvider(providerID string) ([]models.RequestView, error)
}

// DefaultRequestService is the production implementation.
type DefaultRequestService struct {
	Repo     requestRepo.RequestRepository
	Users    userRepo.UserRepository
	Notifier notification.Dispatcher
	Blobs    storage.StorageService
	Policy   TransitionPolicy
}

func (s *DefaultRequestService) policy() TransitionPolicy {
	if s.Policy == nil {
		return PermissivePolicy{}
	}
	return s.Policy
}

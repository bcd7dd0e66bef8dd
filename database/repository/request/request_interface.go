package requestRepo

import "github.com/DDismyname28/home-portal/models"

// RequestRepository defines methods for service request data access.
// GetByID returns (nil, nil) when no request matches.
type RequestRepository interface {
	// Create inserts a new request record.
	Create(req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(id string) (*models.ServiceRequest, error)
	// Update persists a request's editable fields. History never changes
	// through Update; it only grows via AppendHistory.
	Update(req *models.ServiceRequest) error
	// Delete removes a request record by its ID.
	Delete(id string) error
	// ListByRequester retrieves every request owned by a member, newest
	// first.
	ListByRequester(requesterID string) ([]models.ServiceRequest, error)
	// ListByProvider retrieves requests whose provider reference matches
	// the given account ID or login.
	ListByProvider(providerID, login string) ([]models.ServiceRequest, error)
	// AppendHistory atomically appends a history entry to a request and
	// returns the updated history log.
	AppendHistory(id string, entry models.HistoryEntry) ([]models.HistoryEntry, error)
}

package serviceRepo

import "github.com/DDismyname28/home-portal/models"

// ServiceRepository defines methods for catalog offering data access.
// GetByID returns (nil, nil) when no offering matches.
type ServiceRepository interface {
	// Create inserts a new offering record.
	Create(svc *models.Service) error
	// GetByID retrieves an offering by its unique ID.
	GetByID(id string) (*models.Service, error)
	// Update replaces an existing offering record.
	Update(svc *models.Service) error
	// Delete removes an offering record by its ID.
	Delete(id string) error
	// ListByProvider retrieves every offering owned by a provider.
	ListByProvider(providerID string) ([]models.Service, error)
	// ListActiveByCategory retrieves active offerings in an exact
	// category.
	ListActiveByCategory(category string) ([]models.Service, error)
	// CountActiveByProvider counts a provider's active offerings.
	CountActiveByProvider(providerID string) (int, error)
}

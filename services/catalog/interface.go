package catalog

import (
	serviceRepo "github.com/DDismyname28/home-portal/database/repository/service"
	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/models"

	"github.com/go-redis/redis/v8"
)

// PublishInput carries the provider-supplied fields of an offering. A
// non-empty ID turns the call into an update of that offering.
type PublishInput struct {
	ID             string
	Title          string
	Description    string
	Price          float64
	ImportantNotes string
	Category       string
	Status         string
}

// CatalogService manages provider offerings and answers vendor lookups.
type CatalogService interface {
	// Publish creates an offering, or updates it when the input names an
	// offering the caller already owns.
	Publish(providerID string, in PublishInput) (*models.Service, error)
	// Retract hard-deletes an offering; owner only.
	Retract(providerID, id string) (bool, error)
	// ListForProvider returns every offering owned by a provider.
	ListForProvider(providerID string) ([]models.Service, error)
	// FindVendorsByCategory returns active offerings in a category,
	// joined with their providers' identities. Unknown categories yield
	// an empty result and a human-readable message, never an error.
	FindVendorsByCategory(category string) ([]models.VendorMatch, string, error)
	// ListProviders returns the provider directory: every provider
	// account with its published offerings.
	ListProviders() ([]models.ProviderListing, error)
}

// DefaultCatalogService is the production implementation. Cache, when set,
// holds vendor lookup results; a nil client disables caching.
type DefaultCatalogService struct {
	Repo  serviceRepo.ServiceRepository
	Users userRepo.UserRepository
	Cache *redis.Client
}

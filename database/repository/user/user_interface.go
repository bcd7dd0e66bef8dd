package userRepo

import "github.com/DDismyname28/home-portal/models"

// UserRepository defines methods for account data access. Lookups return
// (nil, nil) when no account matches.
type UserRepository interface {
	// Create inserts a new account record.
	Create(user *models.User) error
	// GetByID retrieves an account by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves an account by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetByUsername retrieves an account by its login name.
	GetByUsername(username string) (*models.User, error)
	// Update replaces an existing account record.
	Update(user *models.User) error
	// UpdateFields patches selected fields on an account document.
	UpdateFields(id string, fields map[string]interface{}) error
	// GetProviders retrieves every account holding the provider role.
	GetProviders() ([]models.User, error)
}

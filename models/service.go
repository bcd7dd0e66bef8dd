package models

import "time"

// Service offering statuses.
const (
	ServiceActive   = "Active"
	ServiceInactive = "Inactive"
)

// Service is a catalog offering published by a provider under one category.
type Service struct {
	ID             string    `bson:"id" json:"id"`
	ProviderID     string    `bson:"providerId" json:"providerId"` // owning account
	Title          string    `bson:"title" json:"name"`
	Description    string    `bson:"description" json:"description"`
	Price          float64   `bson:"price" json:"price"`
	ImportantNotes string    `bson:"importantNotes" json:"importantNotes"`
	Category       string    `bson:"category" json:"category"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VendorMatch is one row of a vendor lookup: an active offering joined with
// its provider's identity.
type VendorMatch struct {
	ServiceID     string  `json:"serviceId"`
	ProviderID    string  `json:"providerId"`
	ProviderName  string  `json:"providerName"`
	ProviderEmail string  `json:"providerEmail"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
}

// ProviderListing is one entry of the provider directory: an account with
// its published offerings.
type ProviderListing struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Services []Service `json:"services"`
}

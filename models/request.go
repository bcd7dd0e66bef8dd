package models

import "time"

// Service request statuses.
const (
	StatusPending   = "Pending"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusDeclined  = "Declined"
)

// ValidStatus reports whether s is one of the four request statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusDeclined:
		return true
	}
	return false
}

// Time-of-day preferences.
const (
	TimeAM = "AM"
	TimePM = "PM"
)

// ServiceRequest is a member's solicitation for a home service, tracked
// through Pending/Active/Completed/Declined.
type ServiceRequest struct {
	ID          string `bson:"id" json:"id"`
	RequesterID string `bson:"requesterId" json:"requesterId"` // immutable after creation
	Category    string `bson:"category" json:"category"`

	// Provider is the reference exactly as submitted (an account ID or a
	// login). ProviderID is the normalized account ID when the reference
	// resolved at write time, empty otherwise.
	Provider   string `bson:"provider" json:"provider"`
	ProviderID string `bson:"providerId,omitempty" json:"providerId,omitempty"`

	Description    string         `bson:"description" json:"description"`
	ScheduledDate  string         `bson:"scheduleDate" json:"date"` // "YYYY-MM-DD"
	TimePreference string         `bson:"schedulePeriod" json:"timePreference"`
	Status         string         `bson:"status" json:"status"`
	Photos         []string       `bson:"photos" json:"photos"` // blob store URLs
	History        []HistoryEntry `bson:"history" json:"history"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// HistoryEntry is an immutable provider-authored note on a request. Entries
// are only ever appended, never edited or removed.
type HistoryEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Author    string    `bson:"author" json:"author"`
	Note      string    `bson:"note" json:"note"`
}

// EffectiveDate prefers the explicitly scheduled date and falls back to the
// creation date when none was set.
func (r *ServiceRequest) EffectiveDate() string {
	if r.ScheduledDate != "" {
		return r.ScheduledDate
	}
	return r.CreatedAt.Format("2006-01-02")
}

// RequestView is a ServiceRequest joined with the requester's display
// identity, returned from provider-facing listings.
type RequestView struct {
	ServiceRequest `bson:",inline"`
	Requester      string `bson:"-" json:"requester"`
	RequesterEmail string `bson:"-" json:"email"`
}

// models/user.go
package models

import "time"

// Account roles.
const (
	RoleHomeMember    = "home_member"
	RoleLocalProvider = "local_provider"
)

// User represents a platform account, either a home member or a local
// provider.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	Profile      UserMeta  `bson:"profile" json:"meta"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserMeta carries the provider-facing profile fields. Members usually leave
// the company fields empty.
type UserMeta struct {
	CompanyName   string `bson:"companyName,omitempty" json:"company_name,omitempty"`
	StreetAddress string `bson:"streetAddress,omitempty" json:"street_address,omitempty"`
	ZipCode       string `bson:"zipCode,omitempty" json:"zip_code,omitempty"`
	City          string `bson:"city,omitempty" json:"city,omitempty"`
	State         string `bson:"state,omitempty" json:"state,omitempty"`
	Avatar        string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// DisplayName is the name shown to other parties: "First Last" when set,
// otherwise the username.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsProvider reports whether the account holds the provider role.
func (u *User) IsProvider() bool {
	return u.Role == RoleLocalProvider
}

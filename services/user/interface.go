package user

import (
	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/services/notification"
)

// RegisterInput carries the signup form fields. MembershipType "provider"
// yields a local_provider account; anything else a home_member.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	MembershipType string

	// Provider company fields, ignored for members.
	CompanyName   string
	StreetAddress string
	ZipCode       string
	City          string
	State         string
}

// ProfileInput carries a profile edit. Nil pointers leave the stored value
// untouched.
type ProfileInput struct {
	Name     *string // "First Last", split on the first space
	Username *string
	Email    *string
	Street   *string
	ZipCode  *string
	City     *string
	State    *string
	Avatar   *string
}

// AuthResponse is the result of a successful signin.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts and plays the Identity Provider role for the
// rest of the system.
type UserService interface {
	Register(in RegisterInput) (*models.User, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(id string, in ProfileInput) (*models.User, error)
	RevokeToken(id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Queue notification.TaskEnqueuer // welcome emails, best-effort
}

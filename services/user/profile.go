package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/DDismyname28/home-portal/models"
)

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(id string, in ProfileInput) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil && *in.Name != "" {
		parts := strings.SplitN(*in.Name, " ", 2)
		u.FirstName = parts[0]
		if len(parts) == 2 {
			u.LastName = parts[1]
		} else {
			u.LastName = ""
		}
	}
	if in.Username != nil && *in.Username != "" {
		if other, err := s.Repo.GetByUsername(*in.Username); err != nil {
			return nil, err
		} else if other != nil && other.ID != id {
			return nil, ErrDuplicateAccount
		}
		u.Username = *in.Username
	}
	if in.Email != nil && *in.Email != "" {
		if !strings.Contains(*in.Email, "@") {
			return nil, fmt.Errorf("invalid email address: %w", ErrValidation)
		}
		if other, err := s.Repo.GetByEmail(*in.Email); err != nil {
			return nil, err
		} else if other != nil && other.ID != id {
			return nil, ErrDuplicateAccount
		}
		u.Email = *in.Email
	}
	if in.Street != nil {
		u.Profile.StreetAddress = *in.Street
	}
	if in.ZipCode != nil {
		u.Profile.ZipCode = *in.ZipCode
	}
	if in.City != nil {
		u.Profile.City = *in.City
	}
	if in.State != nil {
		u.Profile.State = *in.State
	}
	if in.Avatar != nil {
		u.Profile.Avatar = *in.Avatar
	}
	u.UpdatedAt = time.Now()

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

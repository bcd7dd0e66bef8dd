package catalog

import (
	"fmt"
	"time"

	"github.com/DDismyname28/home-portal/models"

	"github.com/google/uuid"
)

func (s *DefaultCatalogService) Publish(providerID string, in PublishInput) (*models.Service, error) {
	if providerID == "" {
		return nil, fmt.Errorf("provider is required: %w", ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("service title is required: %w", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if in.Category != "" && !models.KnownCategory(in.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", in.Category, ErrValidation)
	}
	if in.Status != "" && in.Status != models.ServiceActive && in.Status != models.ServiceInactive {
		return nil, fmt.Errorf("status must be Active or Inactive: %w", ErrValidation)
	}

	// An ID naming an offering the caller owns makes this an update; the
	// original surface exposed create and update as one call.
	if in.ID != "" {
		existing, err := s.Repo.GetByID(in.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.ProviderID != providerID {
				return nil, fmt.Errorf("service %s belongs to another provider: %w", in.ID, ErrPermissionDenied)
			}
			previousCategory := existing.Category
			existing.Title = in.Title
			existing.Description = in.Description
			existing.Price = in.Price
			existing.ImportantNotes = in.ImportantNotes
			if in.Category != "" {
				existing.Category = in.Category
			}
			if in.Status != "" {
				existing.Status = in.Status
			}
			existing.UpdatedAt = time.Now()
			if err := s.Repo.Update(existing); err != nil {
				return nil, err
			}
			s.invalidateMatches(previousCategory, existing.Category)
			return existing, nil
		}
	}

	status := in.Status
	if status == "" {
		status = models.ServiceActive
	}
	now := time.Now()
	svc := &models.Service{
		ID:             uuid.New().String(),
		ProviderID:     providerID,
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price,
		ImportantNotes: in.ImportantNotes,
		Category:       in.Category,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	s.invalidateMatches(svc.Category)
	return svc, nil
}

func (s *DefaultCatalogService) Retract(providerID, id string) (bool, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if svc == nil {
		return false, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	if svc.ProviderID != providerID {
		return false, fmt.Errorf("service %s belongs to another provider: %w", id, ErrPermissionDenied)
	}
	if err := s.Repo.Delete(id); err != nil {
		return false, err
	}
	s.invalidateMatches(svc.Category)
	return true, nil
}

func (s *DefaultCatalogService) ListForProvider(providerID string) ([]models.Service, error) {
	services, err := s.Repo.ListByProvider(providerID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/DDismyname28/home-portal/models"
)

func (s *DefaultRequestService) UpdateStatusAndNote(id, callerID, newStatus, description string) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}

	caller, err := s.callerAccount(callerID)
	if err != nil {
		return nil, err
	}
	if !s.isAssignedProvider(req, caller) {
		return nil, fmt.Errorf("request %s is assigned to another provider: %w", id, ErrPermissionDenied)
	}
	if newStatus == "" && description == "" {
		return nil, fmt.Errorf("nothing to update: %w", ErrValidation)
	}

	if newStatus != "" {
		if !models.ValidStatus(newStatus) {
			return nil, fmt.Errorf("invalid status %q: %w", newStatus, ErrValidation)
		}
		if !s.policy().Allowed(req.Status, newStatus) {
			return nil, fmt.Errorf("cannot move request from %s to %s: %w", req.Status, newStatus, ErrConflict)
		}
		req.Status = newStatus
	}
	if description != "" {
		req.Description = description
	}
	req.UpdatedAt = time.Now()

	if err := s.Repo.Update(req); err != nil {
		return nil, err
	}

	s.Notifier.RequestStatusChanged(req, newStatus, description)
	return req, nil
}

func (s *DefaultRequestService) AddHistoryNote(id, callerID, note string) ([]models.HistoryEntry, error) {
	if strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("note must not be empty: %w", ErrValidation)
	}

	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}

	caller, err := s.callerAccount(callerID)
	if err != nil {
		return nil, err
	}
	if !s.isAssignedProvider(req, caller) {
		return nil, fmt.Errorf("request %s is assigned to another provider: %w", id, ErrPermissionDenied)
	}

	entry := models.HistoryEntry{
		Timestamp: time.Now(),
		Author:    caller.DisplayName(),
		Note:      note,
	}
	history, err := s.Repo.AppendHistory(id, entry)
	if err != nil {
		return nil, err
	}

	s.Notifier.HistoryNoteAdded(req, entry)
	return history, nil
}

func (s *DefaultRequestService) callerAccount(callerID string) (*models.User, error) {
	caller, err := s.Users.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, fmt.Errorf("caller %s is not a known account: %w", callerID, ErrPermissionDenied)
	}
	return caller, nil
}

// isAssignedProvider accepts the normalized provider ID and, for records
// written before normalization, a raw reference equal to the caller's ID or
// login.
func (s *DefaultRequestService) isAssignedProvider(req *models.ServiceRequest, caller *models.User) bool {
	if req.ProviderID != "" && req.ProviderID == caller.ID {
		return true
	}
	if req.Provider == "" {
		return false
	}
	return req.Provider == caller.ID || req.Provider == caller.Username
}

package request

import (
	"context"
	"fmt"
	"time"

	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultRequestService) Create(requesterID string, in CreateInput) (*models.ServiceRequest, error) {
	if requesterID == "" {
		return nil, fmt.Errorf("requester is required: %w", ErrValidation)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("category is required: %w", ErrValidation)
	}
	if !models.KnownCategory(in.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", in.Category, ErrValidation)
	}
	if in.TimePreference != "" && in.TimePreference != models.TimeAM && in.TimePreference != models.TimePM {
		return nil, fmt.Errorf("time preference must be AM or PM: %w", ErrValidation)
	}

	now := time.Now()
	req := &models.ServiceRequest{
		ID:             uuid.New().String(),
		RequesterID:    requesterID,
		Category:       in.Category,
		Provider:       in.Provider,
		ProviderID:     s.normalizeProviderRef(in.Provider),
		Description:    in.Description,
		ScheduledDate:  in.ScheduledDate,
		TimePreference: in.TimePreference,
		Status:         models.StatusPending,
		Photos:         append([]string{}, in.Photos...),
		History:        []models.HistoryEntry{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(req); err != nil {
		return nil, err
	}

	s.Notifier.RequestCreated(req)
	return req, nil
}

func (s *DefaultRequestService) Update(id, requesterID string, in UpdateInput) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	if req.RequesterID != requesterID {
		return nil, fmt.Errorf("request %s belongs to another member: %w", id, ErrPermissionDenied)
	}

	if in.Category != nil {
		if *in.Category == "" || !models.KnownCategory(*in.Category) {
			return nil, fmt.Errorf("unknown category %q: %w", *in.Category, ErrValidation)
		}
		req.Category = *in.Category
	}
	if in.Provider != nil {
		req.Provider = *in.Provider
		req.ProviderID = s.normalizeProviderRef(*in.Provider)
	}
	if in.Description != nil {
		req.Description = *in.Description
	}
	if in.ScheduledDate != nil {
		req.ScheduledDate = *in.ScheduledDate
	}
	if in.TimePreference != nil {
		if *in.TimePreference != models.TimeAM && *in.TimePreference != models.TimePM {
			return nil, fmt.Errorf("time preference must be AM or PM: %w", ErrValidation)
		}
		req.TimePreference = *in.TimePreference
	}
	if in.Status != nil {
		// A requester may only reset their own request, e.g. reopening
		// a declined one. Providers use UpdateStatusAndNote.
		if !models.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("invalid status %q: %w", *in.Status, ErrValidation)
		}
		req.Status = *in.Status
	}
	if len(in.PhotosToAppend) > 0 {
		req.Photos = append(req.Photos, in.PhotosToAppend...)
	}
	req.UpdatedAt = time.Now()

	if err := s.Repo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Delete hard-deletes a request and its photo blobs. A failed ownership
// check yields (false, nil) rather than an error, mirroring the envelope
// the original surface answered with.
func (s *DefaultRequestService) Delete(id, callerID string) (bool, error) {
	req, err := s.Repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if req == nil {
		return false, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	if req.RequesterID != callerID {
		return false, nil
	}

	if err := s.Repo.Delete(id); err != nil {
		return false, err
	}

	// Blob cleanup happens after the record is gone; a storage failure
	// must not resurrect the request.
	if s.Blobs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, url := range req.Photos {
			if err := s.Blobs.Delete(ctx, url); err != nil {
				utils.GetLogger().Warn("orphaned photo blob",
					zap.String("requestID", id), zap.String("url", url), zap.Error(err))
			}
		}
	}
	return true, nil
}

func (s *DefaultRequestService) ListForRequester(requesterID string) ([]models.ServiceRequest, error) {
	requests, err := s.Repo.ListByRequester(requesterID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}
	for i := range requests {
		requests[i].ScheduledDate = requests[i].EffectiveDate()
	}
	return requests, nil
}

func (s *DefaultRequestService) ListForProvider(providerID string) ([]models.RequestView, error) {
	caller, err := s.Users.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	login := ""
	if caller != nil {
		login = caller.Username
	}

	requests, err := s.Repo.ListByProvider(providerID, login)
	if err != nil {
		return nil, err
	}

	views := make([]models.RequestView, 0, len(requests))
	for _, req := range requests {
		req.ScheduledDate = req.EffectiveDate()
		view := models.RequestView{ServiceRequest: req}
		if requester, err := s.Users.GetByID(req.RequesterID); err == nil && requester != nil {
			view.Requester = requester.DisplayName()
			view.RequesterEmail = requester.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// normalizeProviderRef resolves a submitted provider reference (account ID
// or login) to a canonical account ID. Unresolvable references yield an
// empty string; the raw reference is kept alongside either way.
func (s *DefaultRequestService) normalizeProviderRef(ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := s.Users.GetByID(ref); err == nil && u != nil && u.IsProvider() {
		return u.ID
	}
	if u, err := s.Users.GetByUsername(ref); err == nil && u != nil && u.IsProvider() {
		return u.ID
	}
	return ""
}

package report

import (
	"strings"

	requestRepo "github.com/DDismyname28/home-portal/database/repository/request"
	serviceRepo "github.com/DDismyname28/home-portal/database/repository/service"
	userRepo "github.com/DDismyname28/home-portal/database/repository/user"
	"github.com/DDismyname28/home-portal/models"
)

// ReportService derives per-month status tallies for dashboard summaries.
type ReportService interface {
	// MemberSummary scans the member's own requests.
	MemberSummary(userID string) (*models.MemberReport, error)
	// ProviderSummary scans requests assigned to the provider and adds
	// the count of their active offerings.
	ProviderSummary(providerID string) (*models.ProviderReport, error)
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Requests requestRepo.RequestRepository
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
}

func (s *DefaultReportService) MemberSummary(userID string) (*models.MemberReport, error) {
	requests, err := s.Requests.ListByRequester(userID)
	if err != nil {
		return nil, err
	}
	return &models.MemberReport{Months: tallyByMonth(requests)}, nil
}

func (s *DefaultReportService) ProviderSummary(providerID string) (*models.ProviderReport, error) {
	login := ""
	if u, err := s.Users.GetByID(providerID); err == nil && u != nil {
		login = u.Username
	}

	requests, err := s.Requests.ListByProvider(providerID, login)
	if err != nil {
		return nil, err
	}
	offered, err := s.Services.CountActiveByProvider(providerID)
	if err != nil {
		return nil, err
	}
	return &models.ProviderReport{
		Months:          tallyByMonth(requests),
		ServicesOffered: offered,
	}, nil
}

// tallyByMonth buckets requests by the calendar month they were created in.
// Declined requests count toward Total but toward none of the three named
// buckets; the dashboard only highlights the healthy states.
func tallyByMonth(requests []models.ServiceRequest) map[string]models.MonthTally {
	months := make(map[string]models.MonthTally)
	for _, req := range requests {
		key := req.CreatedAt.Format("2006-01")
		tally := months[key]
		tally.Total++
		switch strings.ToLower(strings.TrimSpace(req.Status)) {
		case "pending":
			tally.Pending++
		case "active":
			tally.Active++
		case "completed":
			tally.Completed++
		}
		months[key] = tally
	}
	return months
}

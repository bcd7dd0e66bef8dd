package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/utils"

	"go.uber.org/zap"
)

const (
	vendorCachePrefix = "vendors:"
	vendorCacheTTL    = 5 * time.Minute
)

// FindVendorsByCategory matches active offerings in an exact category with
// their owning accounts, keeping only accounts that hold the provider role.
// The result carries a human-readable message when it is empty so the caller
// has something to render.
func (s *DefaultCatalogService) FindVendorsByCategory(category string) ([]models.VendorMatch, string, error) {
	if category == "" {
		return []models.VendorMatch{}, "Missing category.", nil
	}
	if !models.KnownCategory(category) {
		return []models.VendorMatch{}, "Category not found.", nil
	}

	if cached, ok := s.cachedMatches(category); ok {
		if len(cached) == 0 {
			return cached, "No providers offer this service yet.", nil
		}
		return cached, "", nil
	}

	services, err := s.Repo.ListActiveByCategory(category)
	if err != nil {
		return nil, "", err
	}

	matches := make([]models.VendorMatch, 0, len(services))
	owners := map[string]*models.User{}
	for _, svc := range services {
		owner, ok := owners[svc.ProviderID]
		if !ok {
			u, err := s.Users.GetByID(svc.ProviderID)
			if err != nil {
				return nil, "", err
			}
			owner = u
			owners[svc.ProviderID] = u
		}
		if owner == nil || !owner.IsProvider() {
			continue
		}
		matches = append(matches, models.VendorMatch{
			ServiceID:     svc.ID,
			ProviderID:    owner.ID,
			ProviderName:  owner.DisplayName(),
			ProviderEmail: owner.Email,
			Title:         svc.Title,
			Price:         svc.Price,
			Description:   svc.Description,
		})
	}

	// Deterministic order: repeated lookups with an unchanged catalog
	// must return the same sequence.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].ProviderName != matches[j].ProviderName {
			return matches[i].ProviderName < matches[j].ProviderName
		}
		return matches[i].Title < matches[j].Title
	})

	s.storeMatches(category, matches)

	if len(matches) == 0 {
		return matches, "No providers offer this service yet.", nil
	}
	return matches, "", nil
}

// cachedMatches reads a vendor lookup from Redis. Any cache failure counts
// as a miss.
func (s *DefaultCatalogService) cachedMatches(category string) ([]models.VendorMatch, bool) {
	if s.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := s.Cache.Get(ctx, vendorCachePrefix+category).Result()
	if err != nil {
		return nil, false
	}
	var matches []models.VendorMatch
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		return nil, false
	}
	if matches == nil {
		matches = []models.VendorMatch{}
	}
	return matches, true
}

func (s *DefaultCatalogService) storeMatches(category string, matches []models.VendorMatch) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(matches)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Set(ctx, vendorCachePrefix+category, b, vendorCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("vendor cache write failed",
			zap.String("category", category), zap.Error(err))
	}
}

// invalidateMatches drops cached lookups for the categories an offering
// mutation touched.
func (s *DefaultCatalogService) invalidateMatches(categories ...string) {
	if s.Cache == nil {
		return
	}
	keys := make([]string, 0, len(categories))
	seen := map[string]bool{}
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		keys = append(keys, vendorCachePrefix+c)
	}
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("vendor cache invalidation failed", zap.Error(err))
	}
}

// ListProviders builds the provider directory: each provider account with
// its published offerings.
func (s *DefaultCatalogService) ListProviders() ([]models.ProviderListing, error) {
	providers, err := s.Users.GetProviders()
	if err != nil {
		return nil, err
	}

	listings := make([]models.ProviderListing, 0, len(providers))
	for _, p := range providers {
		services, err := s.Repo.ListByProvider(p.ID)
		if err != nil {
			return nil, err
		}
		if services == nil {
			services = []models.Service{}
		}
		listings = append(listings, models.ProviderListing{
			ID:       p.ID,
			Name:     p.DisplayName(),
			Email:    p.Email,
			Services: services,
		})
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Name < listings[j].Name })
	return listings, nil
}

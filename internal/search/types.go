package search

import (
	"context"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
)

// Outcome is the answer to one search. Found is false, and Result nil, when
// nothing matched.
type Outcome struct {
	Result  *models.HolidayResult `json:"result"`
	Found   bool                  `json:"found"`
	Version uint64                `json:"dataset_version"`
}

type ServiceManagement interface {
	Search(ctx context.Context, req *models.HolidaySearchRequest) (Outcome, error)
}

type CacheService interface {
	GetOrCompute(ctx context.Context, key string, fn func(ctx context.Context) (Outcome, error)) (Outcome, error)
}

type RateLimiter interface {
	Allow(ip string) bool
}

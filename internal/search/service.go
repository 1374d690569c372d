package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
)

// Service runs searches against the catalog's current snapshot through a
// result cache.
type Service struct {
	catalog        SnapshotSource
	cache          CacheService
	metrics        *obs.Metrics
	computeTimeout time.Duration
}

func NewService(c SnapshotSource, ch CacheService, m *obs.Metrics, t time.Duration) *Service {
	return &Service{
		catalog:        c,
		cache:          ch,
		metrics:        m,
		computeTimeout: t,
	}
}

func (s *Service) Search(ctx context.Context, req *models.HolidaySearchRequest) (Outcome, error) {
	if s.metrics != nil {
		s.metrics.IncSearches()
	}

	snap := s.catalog.Snapshot()
	key := CacheKey(*req, snap.Version)

	cctx, cancel := context.WithTimeout(ctx, s.computeTimeout)
	defer cancel()

	out, err := s.cache.GetOrCompute(cctx, key, func(ctx context.Context) (Outcome, error) {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		out := Outcome{Version: snap.Version}
		if result, ok := Search(*req, snap.Flights, snap.Hotels); ok {
			out.Result = &result
			out.Found = true
		}
		return out, nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if !out.Found && s.metrics != nil {
		s.metrics.IncNoResult()
	}
	return out, nil
}

// CacheKey folds the request to upper case, which matching ignores, and
// pins it to a dataset version so a reload never serves an older answer.
func CacheKey(req models.HolidaySearchRequest, version uint64) string {
	return fmt.Sprintf("v%d|%s|%s|%s|%d",
		version,
		strings.ToUpper(req.DepartingFrom),
		strings.ToUpper(req.TravelingTo),
		req.DepartureDate,
		req.Duration,
	)
}

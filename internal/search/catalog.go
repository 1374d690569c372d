package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/providers"
)

// Snapshot is one immutable load of both datasets. Its slices must not be
// modified once published.
type Snapshot struct {
	Version  uint64
	Flights  []models.Flight
	Hotels   []models.Hotel
	LoadedAt time.Time
}

type SnapshotSource interface {
	Snapshot() *Snapshot
}

// Catalog publishes the current Snapshot. Readers never block; Reload
// replaces the snapshot only after both datasets loaded cleanly.
type Catalog struct {
	provider providers.Provider
	metrics  *obs.Metrics
	logger   *slog.Logger

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

var emptySnapshot = &Snapshot{}

func NewCatalog(p providers.Provider, m *obs.Metrics, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{provider: p, metrics: m, logger: logger}
}

func (c *Catalog) Snapshot() *Snapshot {
	if s := c.current.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

func (c *Catalog) Reload(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	flights, hotels, err := c.load(ctx)
	if c.metrics != nil {
		c.metrics.ObserveDatasetLoad(c.provider.Name(), time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.IncDatasetLoadFailure(c.provider.Name())
		}
		c.logger.Error("dataset load failed", "provider", c.provider.Name(), "error", err)
		return nil, err
	}

	next := &Snapshot{
		Version:  c.Snapshot().Version + 1,
		Flights:  flights,
		Hotels:   hotels,
		LoadedAt: time.Now(),
	}
	c.current.Store(next)
	if c.metrics != nil {
		c.metrics.SetDatasetSize(len(flights), len(hotels))
	}
	c.logger.Info("dataset loaded",
		"provider", c.provider.Name(),
		"version", next.Version,
		"flights", len(flights),
		"hotels", len(hotels),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return next, nil
}

func (c *Catalog) load(ctx context.Context) ([]models.Flight, []models.Hotel, error) {
	flights, err := c.provider.LoadFlights(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load flights: %w", err)
	}
	hotels, err := c.provider.LoadHotels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load hotels: %w", err)
	}
	return flights, hotels, nil
}

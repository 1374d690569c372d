package providers

import (
	"context"
	"errors"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
)

// ErrInvalidRecord marks a row that was read but cannot become a Flight or Hotel.
var ErrInvalidRecord = errors.New("invalid record")

// Provider loads the flight and hotel datasets from some source.
type Provider interface {
	Name() string
	LoadFlights(ctx context.Context) ([]models.Flight, error)
	LoadHotels(ctx context.Context) ([]models.Hotel, error)
}

// StaticProvider serves fixed in-memory datasets.
type StaticProvider struct {
	Flights []models.Flight
	Hotels  []models.Hotel
}

func NewStaticProvider(flights []models.Flight, hotels []models.Hotel) *StaticProvider {
	return &StaticProvider{Flights: flights, Hotels: hotels}
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) LoadFlights(ctx context.Context) ([]models.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Flight(nil), s.Flights...), nil
}

func (s *StaticProvider) LoadHotels(ctx context.Context) ([]models.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Hotel(nil), s.Hotels...), nil
}

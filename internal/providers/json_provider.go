package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
)

// JSONFileProvider reads flights.json and hotels.json style files, each a
// JSON array of records. Field names match case-insensitively.
type JSONFileProvider struct {
	flightsPath string
	hotelsPath  string
}

func NewJSONFileProvider(flightsPath, hotelsPath string) *JSONFileProvider {
	return &JSONFileProvider{flightsPath: flightsPath, hotelsPath: hotelsPath}
}

func (p *JSONFileProvider) Name() string { return "json" }

func (p *JSONFileProvider) LoadFlights(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := readJSONFile(ctx, p.flightsPath, &flights); err != nil {
		return nil, err
	}
	for i := range flights {
		if err := checkFlight(flights[i]); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", p.flightsPath, i, err)
		}
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	return flights, nil
}

func (p *JSONFileProvider) LoadHotels(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := readJSONFile(ctx, p.hotelsPath, &hotels); err != nil {
		return nil, err
	}
	for i := range hotels {
		if err := checkHotel(hotels[i]); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", p.hotelsPath, i, err)
		}
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	return hotels, nil
}

func readJSONFile(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// checkFlight and checkHotel reject rows with a required field absent.
// Values themselves, such as negative prices, pass through untouched.
func checkFlight(f models.Flight) error {
	if f.DepartureDate.IsZero() {
		return fmt.Errorf("flight %d: missing departure_date: %w", f.ID, ErrInvalidRecord)
	}
	return nil
}

func checkHotel(h models.Hotel) error {
	if h.ArrivalDate.IsZero() {
		return fmt.Errorf("hotel %d: missing arrival_date: %w", h.ID, ErrInvalidRecord)
	}
	if h.Nights <= 0 {
		return fmt.Errorf("hotel %d: nights must be positive: %w", h.ID, ErrInvalidRecord)
	}
	return nil
}

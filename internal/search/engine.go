package search

import (
	"sort"
	"strings"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
)

// londonAirports is read-only after init.
var londonAirports = map[string]struct{}{
	"LTN": {},
	"LGW": {},
	"LHR": {},
	"LCY": {},
	"STN": {},
}

// IsLondonAirport reports whether code, in any letter case, is one of the
// airports accepted for "Any London Airport".
func IsLondonAirport(code string) bool {
	_, ok := londonAirports[strings.ToUpper(code)]
	return ok
}

// LondonAirports returns a sorted copy of the London airport codes.
func LondonAirports() []string {
	codes := make([]string, 0, len(londonAirports))
	for c := range londonAirports {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// OriginMatches applies the departing-from rule: "Any Airport" accepts every
// origin, "Any London Airport" accepts the London set, anything else must
// equal the origin ignoring case.
func OriginMatches(requested, origin string) bool {
	switch {
	case strings.EqualFold(requested, models.AnyAirport):
		return true
	case strings.EqualFold(requested, models.AnyLondonAirport):
		return IsLondonAirport(origin)
	default:
		return strings.EqualFold(requested, origin)
	}
}

func FlightMatches(req models.HolidaySearchRequest, f models.Flight) bool {
	return OriginMatches(req.DepartingFrom, f.From) &&
		strings.EqualFold(f.To, req.TravelingTo) &&
		f.DepartureDate == req.DepartureDate
}

func HotelMatches(req models.HolidaySearchRequest, h models.Hotel) bool {
	return servesAirport(h, req.TravelingTo) &&
		h.ArrivalDate == req.DepartureDate &&
		h.Nights == req.Duration
}

func servesAirport(h models.Hotel, code string) bool {
	for _, a := range h.LocalAirports {
		if strings.EqualFold(a, code) {
			return true
		}
	}
	return false
}

// Rank returns every valid flight+hotel pairing, cheapest first. Equal totals
// are ordered by flight id, then hotel id, then input order.
func Rank(req models.HolidaySearchRequest, flights []models.Flight, hotels []models.Hotel) []models.HolidayResult {
	matchingFlights := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if FlightMatches(req, f) {
			matchingFlights = append(matchingFlights, f)
		}
	}
	if len(matchingFlights) == 0 {
		return nil
	}

	matchingHotels := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if HotelMatches(req, h) {
			matchingHotels = append(matchingHotels, h)
		}
	}
	if len(matchingHotels) == 0 {
		return nil
	}

	combos := make([]models.HolidayResult, 0, len(matchingFlights)*len(matchingHotels))
	for _, f := range matchingFlights {
		for _, h := range matchingHotels {
			combos = append(combos, models.NewHolidayResult(f, h))
		}
	}

	sort.SliceStable(combos, func(i, j int) bool {
		if c := combos[i].TotalPrice.Cmp(combos[j].TotalPrice); c != 0 {
			return c < 0
		}
		if combos[i].Flight.ID != combos[j].Flight.ID {
			return combos[i].Flight.ID < combos[j].Flight.ID
		}
		return combos[i].Hotel.ID < combos[j].Hotel.ID
	})
	return combos
}

// Search returns the cheapest valid holiday. ok is false when no flight and
// hotel both match the request; that is an answer, not a failure.
func Search(req models.HolidaySearchRequest, flights []models.Flight, hotels []models.Hotel) (result models.HolidayResult, ok bool) {
	combos := Rank(req, flights, hotels)
	if len(combos) == 0 {
		return models.HolidayResult{}, false
	}
	return combos[0], true
}

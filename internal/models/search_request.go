package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/validator"
)

// Origin sentinels accepted in DepartingFrom instead of an airport code.
const (
	AnyAirport       = "Any Airport"
	AnyLondonAirport = "Any London Airport"
)

// HolidaySearchRequest is what the customer asks for. DepartingFrom holds an
// airport code or one of the origin sentinels.
type HolidaySearchRequest struct {
	DepartingFrom string `json:"departing_from"`
	TravelingTo   string `json:"traveling_to"`
	DepartureDate Date   `json:"departure_date"`
	Duration      int    `json:"duration"`
}

func NewSearchRequest(from, to, date, duration string) (*HolidaySearchRequest, error) {
	if from == "" || to == "" || date == "" || duration == "" {
		return nil, fmt.Errorf("missing required params")
	}
	t, err := validator.ValidateDate(date)
	if err != nil {
		return nil, err
	}
	nights, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return nil, fmt.Errorf("invalid duration")
	}
	return &HolidaySearchRequest{
		DepartingFrom: from,
		TravelingTo:   to,
		DepartureDate: DateOf(t),
		Duration:      nights,
	}, nil
}

// Validate checks every field, reporting all problems at once, and
// normalises codes to upper case and sentinels to their canonical spelling.
func (r *HolidaySearchRequest) Validate() error {
	var errs []string

	if sentinel, ok := CanonicalSentinel(r.DepartingFrom); ok {
		r.DepartingFrom = sentinel
	} else if code, err := validator.ValidateAirportCode(r.DepartingFrom); err != nil {
		errs = append(errs, "invalid departing from")
	} else {
		r.DepartingFrom = code
	}

	code, err := validator.ValidateAirportCode(r.TravelingTo)
	if err != nil {
		errs = append(errs, "invalid traveling to")
	} else {
		r.TravelingTo = code
	}

	if r.DepartureDate.IsZero() {
		errs = append(errs, "missing departure date")
	}

	if err := validator.ValidateDuration(r.Duration); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, ", "))
	}
	return nil
}

// CanonicalSentinel reports whether s is an origin sentinel in any letter
// case, returning its canonical spelling.
func CanonicalSentinel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, AnyAirport):
		return AnyAirport, true
	case strings.EqualFold(s, AnyLondonAirport):
		return AnyLondonAirport, true
	}
	return "", false
}

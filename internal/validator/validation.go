package validator

import (
	"errors"
	"strings"
	"time"
)

const maxDuration = 365

// ValidateAirportCode trims and upper-cases an IATA airport code.
func ValidateAirportCode(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if len(c) != 3 {
		return "", errors.New("invalid airport code")
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", errors.New("invalid airport code")
		}
	}
	return c, nil
}

func ValidateDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, errors.New("invalid departure date")
	}
	return t, nil
}

func ValidateDuration(nights int) error {
	if nights <= 0 || nights > maxDuration {
		return errors.New("invalid or excessive duration")
	}
	return nil
}

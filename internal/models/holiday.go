package models

import "github.com/shopspring/decimal"

// HolidayResult pairs one flight with one hotel.
type HolidayResult struct {
	Flight     Flight          `json:"flight"`
	Hotel      Hotel           `json:"hotel"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func NewHolidayResult(f Flight, h Hotel) HolidayResult {
	return HolidayResult{
		Flight:     f,
		Hotel:      h,
		TotalPrice: f.Price.Add(h.StayPrice()),
	}
}

package models

import "github.com/shopspring/decimal"

// Hotel is one row of hotels.json. A hotel is reachable from any airport in
// LocalAirports and is sold only for its fixed stay of Nights.
type Hotel struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	ArrivalDate   Date            `json:"arrival_date"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	LocalAirports []string        `json:"local_airports"`
	Nights        int             `json:"nights"`
}

// StayPrice is the price of the whole stay.
func (h Hotel) StayPrice() decimal.Decimal {
	return h.PricePerNight.Mul(decimal.NewFromInt(int64(h.Nights)))
}

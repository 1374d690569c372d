package models

import "github.com/shopspring/decimal"

// Flight is one row of flights.json.
type Flight struct {
	ID            int             `json:"id"`
	Airline       string          `json:"airline"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Price         decimal.Decimal `json:"price"`
	DepartureDate Date            `json:"departure_date"`
}

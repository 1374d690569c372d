package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewSearchRequest(t *testing.T) {
	req, err := NewSearchRequest("MAN", "AGP", "2023-07-01", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.DepartureDate != NewDate(2023, time.July, 1) || req.Duration != 7 {
		t.Fatalf("unexpected request: %+v", req)
	}

	cases := []struct {
		name                   string
		from, to, date, nights string
		want                   string
	}{
		{name: "missing from", to: "AGP", date: "2023-07-01", nights: "7", want: "missing required params"},
		{name: "bad date", from: "MAN", to: "AGP", date: "2023-13-01", nights: "7", want: "invalid departure date"},
		{name: "bad duration", from: "MAN", to: "AGP", date: "2023-07-01", nights: "seven", want: "invalid duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSearchRequest(tc.from, tc.to, tc.date, tc.nights)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidate_Normalises(t *testing.T) {
	req := &HolidaySearchRequest{
		DepartingFrom: "any london AIRPORT",
		TravelingTo:   " pmi ",
		DepartureDate: NewDate(2023, time.June, 15),
		Duration:      10,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.DepartingFrom != AnyLondonAirport || req.TravelingTo != "PMI" {
		t.Fatalf("not normalised: %+v", req)
	}

	req = &HolidaySearchRequest{DepartingFrom: "man", TravelingTo: "AGP", DepartureDate: NewDate(2023, time.July, 1), Duration: 7}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.DepartingFrom != "MAN" {
		t.Fatalf("DepartingFrom = %q", req.DepartingFrom)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	req := &HolidaySearchRequest{DepartingFrom: "Manchester", TravelingTo: "A1", Duration: 0}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid departing from", "invalid traveling to", "missing departure date", "invalid or excessive duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestCanonicalSentinel(t *testing.T) {
	if s, ok := CanonicalSentinel("ANY AIRPORT"); !ok || s != AnyAirport {
		t.Fatalf("got %q, %v", s, ok)
	}
	if _, ok := CanonicalSentinel("MAN"); ok {
		t.Fatal("MAN is not a sentinel")
	}
}

func TestHolidayResult_Total(t *testing.T) {
	f := Flight{ID: 2, Price: decimal.RequireFromString("245")}
	h := Hotel{ID: 9, PricePerNight: decimal.RequireFromString("83"), Nights: 7}

	if !h.StayPrice().Equal(decimal.NewFromInt(581)) {
		t.Fatalf("stay price = %s", h.StayPrice())
	}
	res := NewHolidayResult(f, h)
	if !res.TotalPrice.Equal(decimal.NewFromInt(826)) {
		t.Fatalf("total = %s, want 826", res.TotalPrice)
	}

	h = Hotel{PricePerNight: decimal.RequireFromString("75.50"), Nights: 7}
	if !h.StayPrice().Equal(decimal.RequireFromString("528.5")) {
		t.Fatalf("stay price = %s, want 528.5", h.StayPrice())
	}
}

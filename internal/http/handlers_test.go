package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	ht "github.com/farzanehfar/onthebeach-holiday-search-lib/internal/http"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/providers"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/routes"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/search"
)

// ------------------------ MOCKS ------------------------
type mockService struct {
	searchFunc func(ctx context.Context, req *models.HolidaySearchRequest) (search.Outcome, error)
}

func (m *mockService) Search(ctx context.Context, req *models.HolidaySearchRequest) (search.Outcome, error) {
	return m.searchFunc(ctx, req)
}

type mockRateLimiter struct{ allow bool }

func (m *mockRateLimiter) Allow(ip string) bool { return m.allow }

type brokenCatalog struct{ *search.Catalog }

func (brokenCatalog) Reload(ctx context.Context) (*search.Snapshot, error) {
	return nil, errors.New("hotels.json: decode failed")
}

// ------------------------ HELPERS ------------------------
func testCatalog(t *testing.T) *search.Catalog {
	t.Helper()
	date := models.NewDate(2023, time.July, 1)
	p := providers.NewStaticProvider(
		[]models.Flight{{ID: 2, From: "MAN", To: "AGP", Price: decimal.NewFromInt(245), DepartureDate: date}},
		[]models.Hotel{{ID: 9, ArrivalDate: date, PricePerNight: decimal.NewFromInt(83), LocalAirports: []string{"AGP"}, Nights: 7}},
	)
	c := search.NewCatalog(p, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return c
}

func newServer(svc search.ServiceManagement, c ht.Catalog, rl search.RateLimiter) http.Handler {
	m := obs.NewMetrics(prometheus.NewRegistry())
	h := ht.NewHandler(svc, c, rl, m)
	return routes.GetRoutes(h, m, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Second)
}

func do(t *testing.T, srv http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

const validQuery = "/search?departingFrom=MAN&travelingTo=AGP&departureDate=2023-07-01&duration=7"

// ------------------------ TESTS ------------------------
func TestSearchHandler_Found(t *testing.T) {
	c := testCatalog(t)
	svc := search.NewService(c, search.NewCache(time.Minute, nil), obs.NewMetrics(prometheus.NewRegistry()), time.Second)
	srv := newServer(svc, c, &mockRateLimiter{allow: true})

	rr := do(t, srv, http.MethodGet, validQuery)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Found  bool `json:"found"`
		Result struct {
			Flight     struct{ ID int } `json:"flight"`
			Hotel      struct{ ID int } `json:"hotel"`
			TotalPrice string           `json:"total_price"`
		} `json:"result"`
		DatasetVersion uint64 `json:"dataset_version"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Found || resp.Result.Flight.ID != 2 || resp.Result.Hotel.ID != 9 {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
	if resp.Result.TotalPrice != "826" {
		t.Fatalf("total_price = %q, want 826", resp.Result.TotalPrice)
	}
	if resp.DatasetVersion != 1 {
		t.Fatalf("dataset_version = %d, want 1", resp.DatasetVersion)
	}
}

func TestSearchHandler_NotFoundIsOK(t *testing.T) {
	c := testCatalog(t)
	svc := search.NewService(c, search.NewCache(time.Minute, nil), obs.NewMetrics(prometheus.NewRegistry()), time.Second)
	srv := newServer(svc, c, &mockRateLimiter{allow: true})

	rr := do(t, srv, http.MethodGet, "/search?from=any+airport&to=PMI&date=2025-01-01&nights=5")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["found"] != false || resp["result"] != nil {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
}

func TestSearchHandler_BadRequest(t *testing.T) {
	svc := &mockService{searchFunc: func(ctx context.Context, req *models.HolidaySearchRequest) (search.Outcome, error) {
		t.Fatal("service must not be called for invalid input")
		return search.Outcome{}, nil
	}}
	srv := newServer(svc, testCatalog(t), &mockRateLimiter{allow: true})

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{name: "missing params", query: "/search?departingFrom=MAN", want: "missing required params"},
		{name: "bad date", query: "/search?departingFrom=MAN&travelingTo=AGP&departureDate=01-07-2023&duration=7", want: "invalid departure date"},
		{name: "bad duration", query: "/search?departingFrom=MAN&travelingTo=AGP&departureDate=2023-07-01&duration=abc", want: "invalid duration"},
		{name: "excessive duration", query: "/search?departingFrom=MAN&travelingTo=AGP&departureDate=2023-07-01&duration=400", want: "invalid or excessive duration"},
		{name: "bad airport", query: "/search?departingFrom=Manchester&travelingTo=AGP&departureDate=2023-07-01&duration=7", want: "invalid departing from"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodGet, tc.query)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			var resp ht.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(resp.Error, tc.want) {
				t.Fatalf("error %q does not contain %q", resp.Error, tc.want)
			}
			if resp.Meta["request_id"] == "" {
				t.Fatal("expected a request id in meta")
			}
		})
	}
}

func TestSearchHandler_RateLimited(t *testing.T) {
	svc := &mockService{searchFunc: func(ctx context.Context, req *models.HolidaySearchRequest) (search.Outcome, error) {
		return search.Outcome{}, nil
	}}
	srv := newServer(svc, testCatalog(t), &mockRateLimiter{allow: false})

	rr := do(t, srv, http.MethodGet, validQuery)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestSearchHandler_ServiceError(t *testing.T) {
	svc := &mockService{searchFunc: func(ctx context.Context, req *models.HolidaySearchRequest) (search.Outcome, error) {
		return search.Outcome{}, errors.New("compute failed")
	}}
	srv := newServer(svc, testCatalog(t), &mockRateLimiter{allow: true})

	rr := do(t, srv, http.MethodGet, validQuery)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestStatsAndReload(t *testing.T) {
	c := testCatalog(t)
	svc := &mockService{}
	srv := newServer(svc, c, &mockRateLimiter{allow: true})

	rr := do(t, srv, http.MethodGet, "/stats")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stats ht.StatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.DatasetVersion != 1 || stats.Flights != 1 || stats.Hotels != 1 || stats.LoadedAt == nil {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rr = do(t, srv, http.MethodPost, "/reload")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.DatasetVersion != 2 {
		t.Fatalf("dataset_version = %d, want 2", stats.DatasetVersion)
	}

	broken := newServer(svc, brokenCatalog{c}, &mockRateLimiter{allow: true})
	rr = do(t, broken, http.MethodPost, "/reload")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestHealthzMetricsAndUnknownRoute(t *testing.T) {
	srv := newServer(&mockService{}, testCatalog(t), &mockRateLimiter{allow: true})

	if rr := do(t, srv, http.MethodGet, "/healthz"); rr.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rr.Code)
	}
	rr := do(t, srv, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "http_requests_total") {
		t.Fatalf("metrics: unexpected response %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodGet, "/nope"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/search"
)

// Catalog is the part of search.Catalog the handlers need.
type Catalog interface {
	Snapshot() *search.Snapshot
	Reload(ctx context.Context) (*search.Snapshot, error)
}

type Handler struct {
	svc         search.ServiceManagement
	catalog     Catalog
	ratelimiter search.RateLimiter
	metrics     *obs.Metrics
}

func NewHandler(svc search.ServiceManagement, c Catalog, rl search.RateLimiter, m *obs.Metrics) *Handler {
	return &Handler{svc: svc, catalog: c, ratelimiter: rl, metrics: m}
}

type SearchResponse struct {
	Search         models.HolidaySearchRequest `json:"search"`
	Found          bool                        `json:"found"`
	Result         *models.HolidayResult       `json:"result"`
	DatasetVersion uint64                      `json:"dataset_version"`
}

type StatsResponse struct {
	DatasetVersion uint64     `json:"dataset_version"`
	Flights        int        `json:"flights"`
	Hotels         int        `json:"hotels"`
	LoadedAt       *time.Time `json:"loaded_at,omitempty"`
}

func (h *Handler) ipFromRequest(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	if id := r.Header.Get(middleware.RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// Search answers GET /search. A search that matches nothing is a 200 with
// found=false, never an error status.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta := map[string]string{"request_id": requestID(r)}

	q := r.URL.Query()
	req, err := models.NewSearchRequest(
		firstNotEmpty(q.Get("departingFrom"), q.Get("departing_from"), q.Get("from")),
		firstNotEmpty(q.Get("travelingTo"), q.Get("traveling_to"), q.Get("to")),
		firstNotEmpty(q.Get("departureDate"), q.Get("departure_date"), q.Get("date")),
		firstNotEmpty(q.Get("duration"), q.Get("nights")),
	)
	if err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}

	if err := req.Validate(); err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}

	if !h.ratelimiter.Allow(h.ipFromRequest(r)) {
		if h.metrics != nil {
			h.metrics.IncRateLimitDrops()
		}
		TooManyRequests(w, "rate limit exceeded", meta)
		return
	}

	out, err := h.svc.Search(ctx, req)
	if err != nil {
		InternalError(w, err.Error(), meta)
		return
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Search:         *req,
		Found:          out.Found,
		Result:         out.Result,
		DatasetVersion: out.Version,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, statsOf(h.catalog.Snapshot()))
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalog.Reload(r.Context())
	if err != nil {
		InternalError(w, err.Error(), map[string]string{"request_id": requestID(r)})
		return
	}
	WriteJSON(w, http.StatusOK, statsOf(snap))
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "route not found", map[string]string{"request_id": requestID(r)})
}

func statsOf(s *search.Snapshot) StatsResponse {
	out := StatsResponse{
		DatasetVersion: s.Version,
		Flights:        len(s.Flights),
		Hotels:         len(s.Hotels),
	}
	if !s.LoadedAt.IsZero() {
		loadedAt := s.LoadedAt
		out.LoadedAt = &loadedAt
	}
	return out
}

func firstNotEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

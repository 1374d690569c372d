package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
)

// ScyllaConfig holds the cluster settings for NewScyllaSession.
type ScyllaConfig struct {
	Hosts       []string
	Port        int
	Keyspace    string
	Username    string
	Password    string
	Consistency string
	LocalDC     string
	NumConns    int
	Timeout     time.Duration
}

// NewScyllaSession creates a gocql session with a token-aware policy,
// DC-aware when LocalDC is set.
func NewScyllaSession(cfg ScyllaConfig) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = cfg.Port
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = parseConsistency(cfg.Consistency)
	cluster.ProtoVersion = 4
	cluster.Timeout = cfg.Timeout
	cluster.ConnectTimeout = cfg.Timeout
	cluster.NumConns = cfg.NumConns
	if cfg.LocalDC != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.DCAwareRoundRobinPolicy(cfg.LocalDC))
	} else {
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	}
	cluster.DisableInitialHostLookup = true
	cluster.IgnorePeerAddr = true
	cluster.RetryPolicy = &gocql.ExponentialBackoffRetryPolicy{NumRetries: 5, Min: 200 * time.Millisecond, Max: 3 * time.Second}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{Username: cfg.Username, Password: cfg.Password}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("create scylla session: %w", err)
	}
	return session, nil
}

var consistencies = map[string]gocql.Consistency{
	"ANY":          gocql.Any,
	"ONE":          gocql.One,
	"TWO":          gocql.Two,
	"THREE":        gocql.Three,
	"QUORUM":       gocql.Quorum,
	"ALL":          gocql.All,
	"LOCAL_QUORUM": gocql.LocalQuorum,
	"EACH_QUORUM":  gocql.EachQuorum,
	"LOCAL_ONE":    gocql.LocalOne,
}

// parseConsistency falls back to QUORUM for unknown names.
func parseConsistency(name string) gocql.Consistency {
	if c, ok := consistencies[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return c
	}
	return gocql.Quorum
}

// ScyllaProvider reads the datasets from the flights and hotels tables.
// Prices are stored as decimal text so no precision is lost in transit.
//
//	CREATE TABLE flights (id int PRIMARY KEY, airline text, origin text,
//	    destination text, price text, departure_date date);
//	CREATE TABLE hotels (id int PRIMARY KEY, name text, arrival_date date,
//	    price_per_night text, local_airports list<text>, nights int);
type ScyllaProvider struct {
	session *gocql.Session
}

func NewScyllaProvider(session *gocql.Session) *ScyllaProvider {
	return &ScyllaProvider{session: session}
}

func (p *ScyllaProvider) Name() string { return "scylla" }

func (p *ScyllaProvider) LoadFlights(ctx context.Context) ([]models.Flight, error) {
	iter := p.session.Query(`SELECT id, airline, origin, destination, price, departure_date FROM flights`).
		WithContext(ctx).Iter()

	flights := make([]models.Flight, 0, iter.NumRows())
	var (
		id                       int
		airline, from, to, price string
		departure                time.Time
	)
	for iter.Scan(&id, &airline, &from, &to, &price, &departure) {
		f, err := flightFromRow(id, airline, from, to, price, departure)
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		flights = append(flights, f)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla flights: %w", err)
	}
	return flights, nil
}

func (p *ScyllaProvider) LoadHotels(ctx context.Context) ([]models.Hotel, error) {
	iter := p.session.Query(`SELECT id, name, arrival_date, price_per_night, local_airports, nights FROM hotels`).
		WithContext(ctx).Iter()

	hotels := make([]models.Hotel, 0, iter.NumRows())
	var (
		id, nights  int
		name, price string
		arrival     time.Time
		airports    []string
	)
	for iter.Scan(&id, &name, &arrival, &price, &airports, &nights) {
		h, err := hotelFromRow(id, name, arrival, price, airports, nights)
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		hotels = append(hotels, h)
		airports = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla hotels: %w", err)
	}
	return hotels, nil
}

func flightFromRow(id int, airline, from, to, price string, departure time.Time) (models.Flight, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return models.Flight{}, fmt.Errorf("flight %d: price %q: %w", id, price, ErrInvalidRecord)
	}
	f := models.Flight{
		ID:      id,
		Airline: airline,
		From:    from,
		To:      to,
		Price:   amount,
	}
	if !departure.IsZero() {
		f.DepartureDate = models.DateOf(departure.UTC())
	}
	if err := checkFlight(f); err != nil {
		return models.Flight{}, err
	}
	return f, nil
}

func hotelFromRow(id int, name string, arrival time.Time, price string, airports []string, nights int) (models.Hotel, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return models.Hotel{}, fmt.Errorf("hotel %d: price_per_night %q: %w", id, price, ErrInvalidRecord)
	}
	h := models.Hotel{
		ID:            id,
		Name:          name,
		PricePerNight: amount,
		LocalAirports: append([]string(nil), airports...),
		Nights:        nights,
	}
	if !arrival.IsZero() {
		h.ArrivalDate = models.DateOf(arrival.UTC())
	}
	if err := checkHotel(h); err != nil {
		return models.Hotel{}, err
	}
	return h, nil
}

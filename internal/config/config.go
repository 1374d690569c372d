package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceJSON   = "json"
	SourceScylla = "scylla"
)

// Config holds every runtime setting. All fields come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	Port           string
	DataSource     string
	FlightsPath    string
	HotelsPath     string
	CacheTTL       time.Duration
	SearchTimeout  time.Duration
	RequestTimeout time.Duration
	RateLimitCap   int
	RateLimitEvery time.Duration
	AllowedOrigins []string

	Redis  RedisConfig
	Scylla ScyllaConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Enabled reports whether a Redis cache was asked for.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

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

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		DataSource:     strings.ToLower(getEnv("DATA_SOURCE", SourceJSON)),
		FlightsPath:    getEnv("FLIGHTS_DATA_PATH", "data/flights.json"),
		HotelsPath:     getEnv("HOTELS_DATA_PATH", "data/hotels.json"),
		CacheTTL:       getEnvDuration("CACHE_TTL", 30*time.Second),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT", 3*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimitCap:   getEnvAsInt("RATE_LIMIT_CAP", 10),
		RateLimitEvery: getEnvDuration("RATE_LIMIT_REFILL", time.Minute),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("CACHE_PREFIX", "holiday"),
		},
		Scylla: ScyllaConfig{
			Hosts:       splitList(getEnv("SCYLLA_HOSTS", "127.0.0.1")),
			Port:        getEnvAsInt("SCYLLA_PORT", 9042),
			Keyspace:    getEnv("SCYLLA_KEYSPACE", "holidays"),
			Username:    os.Getenv("SCYLLA_USERNAME"),
			Password:    os.Getenv("SCYLLA_PASSWORD"),
			Consistency: getEnv("SCYLLA_CONSISTENCY", "QUORUM"),
			LocalDC:     os.Getenv("SCYLLA_LOCAL_DC"),
			NumConns:    getEnvAsInt("SCYLLA_NUM_CONNS", 4),
			Timeout:     getEnvDuration("SCYLLA_TIMEOUT", 15*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

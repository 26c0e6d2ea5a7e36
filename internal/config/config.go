package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/forecast-normalizer/internal/weather"
)

type AppConfig struct {
	Port string

	// Upstream provider.
	NWSBaseURL   string
	NWSUserAgent string
	HTTPTimeout  time.Duration

	// Fetcher resilience.
	FetchMaxRetries     int
	FetchBackoffInitial time.Duration
	FetchBackoffMax     time.Duration

	LogLevel  string
	LogFormat string

	// Upstream probe; nil when PROBE_LATITUDE/PROBE_LONGITUDE are unset.
	ProbeLocation *weather.Coordinate
	ProbeInterval time.Duration

	GeocoderAPIKey string

	// PrecipitationProbability overrides the engine default when set.
	PrecipitationProbability *int
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:           getenvDefault("PORT", "8080"),
		NWSBaseURL:     getenvDefault("NWS_BASE_URL", weather.DefaultBaseURL),
		NWSUserAgent:   getenvDefault("NWS_USER_AGENT", "forecast-normalizer (ops@example.com)"),
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		LogFormat:      getenvDefault("LOG_FORMAT", "json"),
		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchBackoffInitial, err = getenvDuration("FETCH_BACKOFF_INITIAL", "500ms"); err != nil {
		return nil, err
	}
	if cfg.FetchBackoffMax, err = getenvDuration("FETCH_BACKOFF_MAX", "5s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.FetchMaxRetries = getenvInt("FETCH_MAX_RETRIES", 2)
	if cfg.FetchMaxRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_RETRIES: must not be negative")
	}

	if cfg.ProbeLocation, err = loadProbeLocation(); err != nil {
		return nil, err
	}

	if v := os.Getenv("PRECIP_PROBABILITY"); v != "" {
		pop, err := strconv.Atoi(v)
		if err != nil || pop < 0 || pop > 100 {
			return nil, fmt.Errorf("invalid PRECIP_PROBABILITY %q: want an integer between 0 and 100", v)
		}
		cfg.PrecipitationProbability = &pop
	}

	return cfg, nil
}

func loadProbeLocation() (*weather.Coordinate, error) {
	latStr := os.Getenv("PROBE_LATITUDE")
	lonStr := os.Getenv("PROBE_LONGITUDE")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, fmt.Errorf("PROBE_LATITUDE and PROBE_LONGITUDE must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid PROBE_LATITUDE %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid PROBE_LONGITUDE %q", lonStr)
	}

	return &weather.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// ABOUTME: Configuration loader for the BooksArc CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// The hosted backend the original web client pointed at. Overridable via
// BOOKSARC_API_URL so the URL is no longer baked in.
const defaultAPIURL = "https://books-server-5p0q.onrender.com"

const defaultGeocodeURL = "https://nominatim.openstreetmap.org"

const defaultPageSize = 8

type Config struct {
	APIURL     string
	GeocodeURL string
	PageSize   int // books per catalog page

	// Optional device coordinates for location suggestions. A terminal has
	// no geolocation prompt, so these come from the environment.
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:     strings.TrimSuffix(getEnv("BOOKSARC_API_URL", defaultAPIURL), "/"),
		GeocodeURL: strings.TrimSuffix(getEnv("BOOKSARC_GEOCODE_URL", defaultGeocodeURL), "/"),
		PageSize:   getEnvInt("BOOKSARC_PAGE_SIZE", defaultPageSize),
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}

	lat, latOK := getEnvFloat("BOOKSARC_LAT")
	lon, lonOK := getEnvFloat("BOOKSARC_LON")
	if latOK && lonOK {
		cfg.Latitude = lat
		cfg.Longitude = lon
		cfg.HasCoordinates = true
	}

	return cfg
}

// DataDir returns the data directory following the XDG spec; it holds the
// dashboard cache and the TUI debug log.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "booksarc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "booksarc")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string) (float64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Package config loads and validates the application configuration from a
// yaml file and environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Providers selectable through Search.Provider.
const (
	// ProviderDuckDuckGo scrapes the DuckDuckGo HTML results page.
	ProviderDuckDuckGo = "duckduckgo"
	// ProviderPlaces queries the places/business-directory API.
	ProviderPlaces = "places"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":10000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// It must cover a full synchronous run triggered via GET /run; zero disables it.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"0s" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Brevo configures the marketing-contacts upload provider.
	Brevo struct {
		// APIKey is the api-key header value. Required; startup fails without it.
		APIKey string `env:"BREVO_API_KEY" yaml:"apiKey"`
		// ListID is the contact list uploaded leads are attached to.
		ListID int `env:"BREVO_LIST_ID" env-default:"4" yaml:"listId"`
		// BaseURL overrides the API address, mainly for tests.
		BaseURL string `env:"BREVO_BASE_URL" yaml:"baseUrl"`
	} `yaml:"brevo"`

	// Search configures the search provider that resolves query terms into
	// candidate URLs.
	Search struct {
		// Provider selects the backend: "duckduckgo" or "places".
		Provider string `env:"SEARCH_PROVIDER" env-default:"duckduckgo" yaml:"provider"`
		// PlacesAPIKey is required when Provider is "places".
		PlacesAPIKey string `env:"PLACES_API_KEY" yaml:"placesApiKey"`
		// PlacesBaseURL overrides the places API address, mainly for tests.
		PlacesBaseURL string `env:"PLACES_BASE_URL" yaml:"placesBaseUrl"`
		// MaxResults caps the candidate URLs considered per query term.
		MaxResults int `env:"SEARCH_MAX_RESULTS" env-default:"25" yaml:"maxResults"`
	} `yaml:"search"`

	// Scraper configures the page extractor and the run pacing.
	Scraper struct {
		// SearchTerms is the ordered list of query terms a run iterates.
		SearchTerms []string `env:"SEARCH_TERMS" env-separator:"," yaml:"searchTerms" env-default:"real estate agency Richmond VA contact,real estate office Henrico VA contact,realtors near Richmond VA site:kw.com OR site:longandfoster.com OR site:remax.com,real estate broker Chesterfield VA contact,real estate team Ashland VA contact,realty company Goochland VA contact"` //nolint: lll
		// FetchTimeout bounds each candidate-page fetch.
		FetchTimeout time.Duration `env:"SCRAPER_FETCH_TIMEOUT" env-default:"10s" yaml:"fetchTimeout"`
		// RequestDelay is the fixed pause between candidate URLs, a courtesy
		// to the scraped sites.
		RequestDelay time.Duration `env:"SCRAPER_REQUEST_DELAY" env-default:"1s" yaml:"requestDelay"`
		// UserAgent is the identifying header sent with every fetch.
		UserAgent string `env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0" yaml:"userAgent"`
		// LogCapacity bounds the dashboard log ring; oldest lines are evicted first.
		LogCapacity int `env:"SCRAPER_LOG_CAPACITY" env-default:"250" yaml:"logCapacity"`
	} `yaml:"scraper"`

	// Redis configures the optional shared dedup store. An empty Addr keeps
	// the default in-memory store.
	Redis struct {
		// Addr is the Redis server address, e.g. "localhost:6379".
		Addr string `env:"REDIS_ADDR" yaml:"addr"`
		// Password authenticates against the Redis server when set.
		Password string `env:"REDIS_PASSWORD" yaml:"password"`
		// DB selects the Redis logical database.
		DB int `env:"REDIS_DB" env-default:"0" yaml:"db"`
	} `yaml:"redis"`

	// Database configures the optional PostgreSQL lead archive. An empty Host
	// disables archiving and the service keeps process-lifetime state only.
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"prospector" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"prospector" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Validate checks the parts of the configuration that must be present for the
// process to start at all.
func (c *Config) Validate() error {
	if c.Brevo.APIKey == "" {
		return fmt.Errorf("missing BREVO_API_KEY")
	}

	switch c.Search.Provider {
	case ProviderDuckDuckGo:
	case ProviderPlaces:
		if c.Search.PlacesAPIKey == "" {
			return fmt.Errorf("missing PLACES_API_KEY for the places search provider")
		}
	default:
		return fmt.Errorf("unknown search provider %q", c.Search.Provider)
	}

	if len(c.Scraper.SearchTerms) == 0 {
		return fmt.Errorf("no search terms configured")
	}

	return nil
}

// Load receives the path for the yaml config file and returns a filled,
// validated Config struct. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

package config_test

import (
	"os"
	"path/filepath"
	"prospector/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return path
}

func TestLoad_DefaultsAndRequiredKey(t *testing.T) {
	path := writeConfigFile(t, `
brevo:
  apiKey: test-key
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, ":10000", cfg.HTTP.Addr)
	require.Equal(t, time.Duration(0), cfg.HTTP.WriteTimeout)
	require.Equal(t, "test-key", cfg.Brevo.APIKey)
	require.Equal(t, 4, cfg.Brevo.ListID)
	require.Equal(t, config.ProviderDuckDuckGo, cfg.Search.Provider)
	require.Equal(t, 25, cfg.Search.MaxResults)
	require.Len(t, cfg.Scraper.SearchTerms, 6)
	require.Equal(t, 10*time.Second, cfg.Scraper.FetchTimeout)
	require.Equal(t, time.Second, cfg.Scraper.RequestDelay)
	require.Equal(t, 250, cfg.Scraper.LogCapacity)
	require.Empty(t, cfg.Redis.Addr, "redis is off by default")
	require.Empty(t, cfg.Database.Host, "the archive is off by default")
}

func TestLoad_MissingBrevoKeyFails(t *testing.T) {
	path := writeConfigFile(t, `
environment: production
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "BREVO_API_KEY")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BREVO_API_KEY", "env-key")
	t.Setenv("SEARCH_TERMS", "realtors in Richmond VA,realtors in Henrico VA")
	t.Setenv("SCRAPER_REQUEST_DELAY", "250ms")

	path := writeConfigFile(t, `
brevo:
  apiKey: file-key
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "env-key", cfg.Brevo.APIKey)
	require.Equal(t, []string{"realtors in Richmond VA", "realtors in Henrico VA"}, cfg.Scraper.SearchTerms)
	require.Equal(t, 250*time.Millisecond, cfg.Scraper.RequestDelay)
}

func TestLoad_PlacesProviderRequiresKey(t *testing.T) {
	path := writeConfigFile(t, `
brevo:
  apiKey: test-key
search:
  provider: places
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PLACES_API_KEY")
}

func TestLoad_UnknownProviderFails(t *testing.T) {
	path := writeConfigFile(t, `
brevo:
  apiKey: test-key
search:
  provider: bing
`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown search provider")
}

func TestValidate_NoSearchTerms(t *testing.T) {
	var cfg config.Config
	cfg.Brevo.APIKey = "test-key"
	cfg.Search.Provider = config.ProviderDuckDuckGo

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no search terms")
}

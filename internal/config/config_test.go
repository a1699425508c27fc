package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dappscope/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, name := range []string{"BLOCKVISION_API_KEY", "REGISTRY_URL", "DAPPSCOPE_INDEXER_API_KEY", "DAPPSCOPE_REGISTRY_URL"} {
		t.Setenv(name, "")
	}

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Indexer.GetMaxPages())
	assert.Equal(t, 50, cfg.Indexer.GetPageSize())
	assert.Equal(t, 10*time.Second, cfg.Indexer.GetTimeout())
	assert.Equal(t, 10*time.Second, cfg.Registry.GetTimeout())
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.True(t, errors.Is(cfg.Validate(), domain.ErrConfiguration))
}

func TestLoadFromFileAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	content := []byte(`
server:
  port: "9090"
registry:
  url: "https://example.org/dapps.json"
  cache_ttl: 2m
indexer:
  max_pages: 2
  page_size: 25
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Setenv("REGISTRY_URL", "")
	t.Setenv("DAPPSCOPE_REGISTRY_URL", "")
	t.Setenv("DAPPSCOPE_INDEXER_API_KEY", "")
	t.Setenv("BLOCKVISION_API_KEY", "legacy-key")
	t.Setenv("DAPPSCOPE_SERVER_PORT", "7070")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "https://example.org/dapps.json", cfg.Registry.URL)
	assert.Equal(t, 2*time.Minute, cfg.Registry.CacheTTL)
	assert.Equal(t, 2, cfg.Indexer.MaxPages)
	assert.Equal(t, 25, cfg.Indexer.PageSize)
	assert.Equal(t, "legacy-key", cfg.Indexer.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Registry: RegistryConfig{URL: "https://example.org/dapps.json"},
		Indexer:  IndexerConfig{APIKey: "key"},
	}
	assert.NoError(t, cfg.Validate())

	missingKey := cfg
	missingKey.Indexer.APIKey = "  "
	err := missingKey.Validate()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "api key")

	missingURL := cfg
	missingURL.Registry.URL = ""
	err = missingURL.Validate()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "registry url")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

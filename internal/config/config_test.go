package config_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localereg/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, config.SourceEmbed, cfg.Source)
		assert.Equal(t, "manifest.toml", cfg.Manifest)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 8, cfg.LoaderConcurrency)
		assert.Equal(t, 256, cfg.ResolverCacheSize)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("fs source requires directory", func(t *testing.T) {
		t.Setenv("LOCALES_SOURCE", "fs")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOCALES_DIR")

		t.Setenv("LOCALES_DIR", "./locales")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "./locales", cfg.LocalesDir)
	})

	t.Run("postgres source validates url", func(t *testing.T) {
		t.Setenv("LOCALES_SOURCE", "postgres")
		t.Setenv("DATABASE_URL", "not a url")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")

		t.Setenv("DATABASE_URL", "postgres://localhost:5432/locales?sslmode=disable")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.RequireDatabase())
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Setenv("LOCALES_SOURCE", "s3")
		_, err := config.Load()
		assert.ErrorContains(t, err, "LOCALES_SOURCE")
	})

	t.Run("rejects non-positive concurrency", func(t *testing.T) {
		t.Setenv("LOADER_CONCURRENCY", "0")
		_, err := config.Load()
		assert.ErrorContains(t, err, "LOADER_CONCURRENCY")
	})
}

func TestParseManifest(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		m, err := config.ParseManifest([]byte(`
fallback = "en"
locales = ["ja", "en", "zh-Hans"]
namespaces = ["common", "navbar", "play", "settings", "supervisor"]
`))
		require.NoError(t, err)
		assert.Equal(t, "en", m.Fallback)
		assert.Equal(t, []string{"en", "ja", "zh-Hans"}, m.Locales)
		assert.Equal(t, []string{"common", "navbar", "play", "settings", "supervisor"}, m.Namespaces)
	})

	t.Run("adds fallback to locales", func(t *testing.T) {
		m, err := config.ParseManifest([]byte(`
fallback = "en"
namespaces = ["common"]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"en"}, m.Locales)
	})

	bad := map[string]string{
		"missing fallback":    `namespaces = ["common"]`,
		"invalid tag":         "fallback = \"en\"\nlocales = [\"@@\"]\nnamespaces = [\"common\"]",
		"duplicate locale":    "fallback = \"en\"\nlocales = [\"ja\", \"ja\"]\nnamespaces = [\"common\"]",
		"no namespaces":       `fallback = "en"`,
		"duplicate namespace": "fallback = \"en\"\nnamespaces = [\"common\", \"common\"]",
		"path in namespace":   "fallback = \"en\"\nnamespaces = [\"../common\"]",
		"dot in namespace":    "fallback = \"en\"\nnamespaces = [\"play.x\"]",
		"unknown field":       "fallback = \"en\"\nnamespaces = [\"common\"]\nextra = 1",
		"not toml":            "{",
	}
	for name, input := range bad {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := config.ParseManifest([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.toml": &fstest.MapFile{Data: []byte("fallback = \"en\"\nnamespaces = [\"common\"]\n")},
	}

	m, err := config.LoadManifest(fsys, "manifest.toml")
	require.NoError(t, err)
	assert.Equal(t, "en", m.Fallback)

	_, err = config.LoadManifest(fsys, "missing.toml")
	assert.ErrorContains(t, err, "missing.toml")
}

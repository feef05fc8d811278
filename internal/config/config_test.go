package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "CATALOG_PATH", "GRADE_PROFILE", "LOG_MAX_SIZE_MB", "CATALOG_STRICT"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, ModeOffline, c.Mode)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, []string{"./catalog/bundle.json"}, c.CatalogPaths)
	assert.Equal(t, "bac.v1", c.GradeProfile)
	assert.Equal(t, 50, c.LogMaxSizeMB)
	assert.False(t, c.StrictCatalog)
	assert.Equal(t, c.CORSOriginsOffline, c.CORSOrigins())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("CATALOG_PATH", " a.json, b.yaml ,")
	t.Setenv("LOG_MAX_SIZE_MB", "bogus")
	t.Setenv("CATALOG_STRICT", "")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://x.example")

	c := FromEnv()
	assert.Equal(t, ModeOnline, c.Mode)
	assert.Equal(t, []string{"a.json", "b.yaml"}, c.CatalogPaths)
	assert.Equal(t, 50, c.LogMaxSizeMB)
	assert.True(t, c.StrictCatalog)
	assert.Equal(t, []string{"https://x.example"}, c.CORSOrigins())
}

func TestFromEnv_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITE_ID=lab-7\nHTTP_ADDR=:9090\n"), 0o644))
	t.Setenv("SITE_ID", "")
	t.Setenv("HTTP_ADDR", ":7070")
	os.Unsetenv("SITE_ID")

	LoadDotEnv(filepath.Join(dir, ".env"))
	LoadDotEnv(filepath.Join(dir, "missing.env"))
	c := FromEnv()
	assert.Equal(t, "lab-7", c.SiteID)
	assert.Equal(t, ":7070", c.HTTPAddr, "environment wins over .env")
}

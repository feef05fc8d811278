package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Comma-separated bundle files, loaded in order.
	CatalogPaths    []string
	ContentBasePath string
	GradeProfile    string
	SiteID          string
	// StrictCatalog refuses to start when a preset fails validation.
	StrictCatalog bool

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	LogFile       string // empty logs to stderr
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// CORSOrigins returns the allow-list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// LoadDotEnv reads .env (or the given files) into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: dotenv: %v", err)
	}
}

func FromEnv() Config {
	LoadDotEnv()
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		CatalogPaths:       csvOr("CATALOG_PATH", "./catalog/bundle.json"),
		ContentBasePath:    envOr("CONTENT_BASE_PATH", "./content"),
		GradeProfile:       envOr("GRADE_PROFILE", "bac.v1"),
		SiteID:             envOr("SITE_ID", "local"),
		StrictCatalog:      envBool("CATALOG_STRICT", mode == ModeOnline),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://bac.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:8081,http://localhost:19006"),
		LogFile:            envOr("LOG_FILE", ""),
		LogMaxSizeMB:       envInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:      envInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays:      envInt("LOG_MAX_AGE_DAYS", 28),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

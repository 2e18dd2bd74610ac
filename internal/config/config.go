package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration. Flags (bound by the CLI layer)
// take precedence over environment variables.
type Config struct {
	Profile     string
	ProfilesDir string
	OutDir      string
	DBPath      string
	PDFPath     string
	Trace       bool
	Debug       bool
}

// Load populates Config from environment variables and defaults. The CLI
// binds its flags on top of the returned values.
func Load() *Config {
	cfg := &Config{}

	cfg.Profile = getEnv("WIZTRIAGE_PROFILE", "broker")
	cfg.ProfilesDir = getEnv("WIZTRIAGE_PROFILES_DIR", getDefaultProfilesDir())
	cfg.OutDir = getEnv("WIZTRIAGE_OUT", "")
	cfg.DBPath = getEnv("WIZTRIAGE_DB", "")
	cfg.Trace = getEnvBool("WIZTRIAGE_TRACE", false)
	cfg.Debug = getEnvBool("WIZTRIAGE_DEBUG", false)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultProfilesDir returns ~/.wiztriage/profiles, or "" when the home
// directory cannot be resolved (builtin profiles still work without it).
func getDefaultProfilesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wiztriage", "profiles")
}

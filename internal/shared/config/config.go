package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingDatabase is returned by Validate when no datastore is configured
// for an environment that cannot run on in-memory repositories.
var ErrMissingDatabase = errors.New("DATABASE_URL is required in production")

// ErrSystemLoginUserID is returned by Validate when the bootstrap credential is
// enabled without the id of the user it logs in as.
var ErrSystemLoginUserID = errors.New("SYSTEM_LOGIN_USER_ID must be a positive user id when system login is enabled")

// Config holds application configuration.
type Config struct {
	Port                string
	Env                 string
	DatabaseURL         string
	CORSAllowOrigin     []string
	SessionCookieName   string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	DiagnosticsEnabled  bool
	BcryptCost          int
	SystemLogin         SystemLogin
}

// SystemLogin is the bootstrap credential accepted ahead of the users table.
// It is disabled unless both Username and Password are set.
type SystemLogin struct {
	Username string
	Password string
	UserID   int64
}

// Enabled reports whether the bootstrap credential is configured.
func (s SystemLogin) Enabled() bool {
	return s.Username != "" && s.Password != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "resume_session"),
		SessionTTL:          getDuration("SESSION_TTL", 24*time.Hour),
		SessionCookieSecure: getBool("SESSION_COOKIE_SECURE", env == "production"),
		DiagnosticsEnabled:  getBool("DIAGNOSTICS_ENABLED", false),
		BcryptCost:          getInt("BCRYPT_COST", 0),
		SystemLogin: SystemLogin{
			Username: strings.TrimSpace(os.Getenv("SYSTEM_LOGIN_USERNAME")),
			Password: os.Getenv("SYSTEM_LOGIN_PASSWORD"),
			UserID:   int64(getInt("SYSTEM_LOGIN_USER_ID", 0)),
		},
	}
}

// Validate reports configuration that must stop the process before serving.
func (c Config) Validate() error {
	if c.Env == "production" && strings.TrimSpace(c.DatabaseURL) == "" {
		return ErrMissingDatabase
	}
	if c.SystemLogin.Enabled() && c.SystemLogin.UserID <= 0 {
		return ErrSystemLoginUserID
	}
	return nil
}

// DiagnosticsAllowed reports whether the ?debug flag may surface raw storage errors.
func (c Config) DiagnosticsAllowed() bool {
	return c.DiagnosticsEnabled && c.Env != "production"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

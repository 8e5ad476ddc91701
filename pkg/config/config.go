package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ReferenceLive makes period windows end at the current time.
const ReferenceLive = "now"

type Config struct {
	ListenAddr   string
	DatabaseURL  string
	DBSearchPath string
	LogLevel     string
	LogFormat    string
	MaxCPU       int
	ShutdownWait time.Duration

	// ReferenceTime pins the end of period windows. Zero keeps the
	// per-endpoint anchors, unless LiveReference is set.
	ReferenceTime time.Time
	LiveReference bool

	AppUsername     string
	AppPassword     string
	Offline         bool
	RateLimitPerMin int
	CORSOrigins     []string
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.ListenAddr = getenv("LISTEN_ADDR", ":3000")
	c.DatabaseURL = getenv("DATABASE_URL", "")
	c.DBSearchPath = getenv("DB_SEARCH_PATH", "analytics")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "json")
	c.MaxCPU = mustInt(getenv("MAX_CPU", "0"))
	c.ShutdownWait = mustDuration(getenv("SHUTDOWN_WAIT", "5s"))
	c.AppUsername = getenv("APP_USERNAME", "user")
	c.AppPassword = getenv("APP_PASSWORD", "")
	c.RateLimitPerMin = mustInt(getenv("RATE_LIMIT_PER_MIN", "600"))
	c.CORSOrigins = splitList(getenv("CORS_ALLOWED_ORIGINS", ""))

	if c.DatabaseURL == "" {
		dsn, err := postgresDSN()
		if err != nil {
			errs = append(errs, err)
		}
		c.DatabaseURL = dsn
	}

	if v := getenv("APP_OFFLINE", "false"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("APP_OFFLINE must be a boolean"))
		}
		c.Offline = b
	}

	switch ref := getenv("REFERENCE_TIME", ""); ref {
	case "":
	case ReferenceLive:
		c.LiveReference = true
	default:
		t, err := time.Parse(time.RFC3339, ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("REFERENCE_TIME must be RFC3339 or %q", ReferenceLive))
		}
		c.ReferenceTime = t.UTC()
	}

	if c.MaxCPU < 0 {
		errs = append(errs, fmt.Errorf("MAX_CPU must be >= 0"))
	}
	if c.RateLimitPerMin < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MIN must be >= 0"))
	}
	if c.DBSearchPath == "" || strings.ContainsAny(c.DBSearchPath, ";'\"") {
		errs = append(errs, fmt.Errorf("DB_SEARCH_PATH is invalid"))
	}
	if len(errs) > 0 {
		return nil, joinErrs(errs)
	}
	return c, nil
}

// postgresDSN builds a connection URL from the POSTGRES_* variables.
func postgresDSN() (string, error) {
	port := getenv("POSTGRES_PORT", "5432")
	if n, err := strconv.Atoi(port); err != nil || n <= 0 {
		return "", fmt.Errorf("POSTGRES_PORT must be a port number")
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(getenv("POSTGRES_HOST", "localhost"), port),
		Path:   "/" + getenv("POSTGRES_DB", "cyberimpact_dwh"),
	}
	user := getenv("POSTGRES_USER", "barnum_api")
	if pass := os.Getenv("POSTGRES_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	return u.String(), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func mustInt(s string) int { n, _ := strconv.Atoi(s); return n }
func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	if d <= 0 {
		return time.Second
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinErrs(errs []error) error {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return errors.New(msg)
}

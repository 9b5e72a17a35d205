// Package config reads server settings from the environment. Values come from
// the process environment or a .env file loaded by the binary; every setting
// has a development default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	GinMode     string
	DBPath      string
	ContentPath string

	SubmitDelay  time.Duration
	TypeInterval time.Duration
	ViewTTL      time.Duration

	TrackVisitors bool

	AdminUsername string
	AdminPassword string
	// AdminDefaults is set when either credential fell back to its default.
	AdminDefaults bool

	OTLPEndpoint string
	ServiceName  string
}

// Load reads the environment through getenv (os.Getenv when nil).
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          str("PORT", "8080"),
		GinMode:       getenv("GIN_MODE"),
		DBPath:        str("DB_PATH", "data/portfolio.db"),
		ContentPath:   getenv("CONTENT_PATH"),
		AdminUsername: getenv("ADMIN_USERNAME"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		OTLPEndpoint:  getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:   str("OTEL_SERVICE_NAME", "portfolio"),
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		cfg.AdminDefaults = true
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		cfg.AdminDefaults = true
	}

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"SUBMIT_DELAY", 1500 * time.Millisecond, &cfg.SubmitDelay},
		{"TYPE_INTERVAL", 100 * time.Millisecond, &cfg.TypeInterval},
		{"VIEW_TTL", 30 * time.Minute, &cfg.ViewTTL},
	}
	for _, d := range durations {
		*d.dst = d.def
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		if parsed < 0 {
			return Config{}, fmt.Errorf("%s: negative duration %s", d.key, v)
		}
		*d.dst = parsed
	}

	cfg.TrackVisitors = true
	if v := getenv("TRACK_VISITORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRACK_VISITORS: %w", err)
		}
		cfg.TrackVisitors = b
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Package config loads the settings of the envd server.
//
// Every setting is read explicitly and run through env.ValidateServer, so a
// misconfigured process stops before it serves anything. Defaults are
// supplied here, at the call site, never by the validator.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/thesunny/get-dynamic-env/env"
	"github.com/thesunny/get-dynamic-env/internal/pkg/errors"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
)

const (
	defaultHTTPPort        = "8080"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultLogSource       = "false"
	defaultServiceName     = "envd"
	defaultShutdownTimeout = "15s"
	defaultCORSOrigins     = "*"
)

const opLoad = "config.Load"

type Config struct {
	HTTPPort           string
	LogLevel           string
	LogFormat          string
	LogSource          bool
	ServiceName        string
	PublicPrefix       string
	PublicEnvNames     []string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads the configuration from src. PUBLIC_ENV_NAMES has no default and
// must be set, even if only to an empty list.
func Load(src env.Source) (*Config, error) {
	if src == nil {
		src = env.OS
	}

	vars, err := env.ValidateServer(env.Values{
		"HTTP_PORT":            Or(get(src, "HTTP_PORT"), defaultHTTPPort),
		"LOG_LEVEL":            Or(get(src, "LOG_LEVEL"), defaultLogLevel),
		"LOG_FORMAT":           Or(get(src, "LOG_FORMAT"), defaultLogFormat),
		"LOG_SOURCE":           Or(get(src, "LOG_SOURCE"), defaultLogSource),
		"SERVICE_NAME":         Or(get(src, "SERVICE_NAME"), defaultServiceName),
		"PUBLIC_PREFIX":        Or(get(src, "PUBLIC_PREFIX"), env.DefaultPublicPrefix),
		"PUBLIC_ENV_NAMES":     get(src, "PUBLIC_ENV_NAMES"),
		"CORS_ALLOWED_ORIGINS": Or(get(src, "CORS_ALLOWED_ORIGINS"), defaultCORSOrigins),
		"SHUTDOWN_TIMEOUT":     Or(get(src, "SHUTDOWN_TIMEOUT"), defaultShutdownTimeout),
	})
	if err != nil {
		return nil, errors.Wrap(err, opLoad, "invalid configuration")
	}

	logSource, err := strconv.ParseBool(vars.Get("LOG_SOURCE"))
	if err != nil {
		return nil, invalid("LOG_SOURCE", err)
	}

	timeout, err := time.ParseDuration(vars.Get("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, invalid("SHUTDOWN_TIMEOUT", err)
	}
	if timeout <= 0 {
		return nil, errors.ValidationKey(opLoad, "SHUTDOWN_TIMEOUT", nil,
			"expected %q to be positive, got %s", "SHUTDOWN_TIMEOUT", timeout)
	}

	return &Config{
		HTTPPort:           vars.Get("HTTP_PORT"),
		LogLevel:           vars.Get("LOG_LEVEL"),
		LogFormat:          vars.Get("LOG_FORMAT"),
		LogSource:          logSource,
		ServiceName:        vars.Get("SERVICE_NAME"),
		PublicPrefix:       vars.Get("PUBLIC_PREFIX"),
		PublicEnvNames:     CSV(vars.Get("PUBLIC_ENV_NAMES")),
		CORSAllowedOrigins: CSV(vars.Get("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout:    timeout,
	}, nil
}

// Logger returns the logger configuration described by c.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		AddSource:   c.LogSource,
		ServiceName: c.ServiceName,
	}
}

// Addr returns the listen address for HTTPPort.
func (c *Config) Addr() string {
	if strings.Contains(c.HTTPPort, ":") {
		return c.HTTPPort
	}
	return "0.0.0.0:" + c.HTTPPort
}

// Or returns def when v is absent or blank, and v otherwise. Values of other
// types are passed through so the validator can reject them.
func Or(v any, def string) any {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return def
	}
	return v
}

// CSV splits a comma separated list, dropping blank entries.
func CSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func get(src env.Source, key string) any {
	v, _ := src.Lookup(key)
	return v
}

func invalid(key string, err error) error {
	return errors.ValidationKey(opLoad, key, err, "invalid value for %q", key)
}

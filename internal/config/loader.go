package config

import (
	"context"
	"os"
	"strings"

	"github.com/katiamach/wind-viability-report/internal/logger"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "WINDREPORT_"
	EnvConfigPath = "WINDREPORT_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file at path, or at WINDREPORT_CONFIG when path is empty
//  3. env (prefix WINDREPORT_)
//
// Load never fails on bad input: an unreadable file is skipped with a
// warning and every malformed value keeps its default.
func Load(_ context.Context, path string) *Config {
	cfg := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("config file ignored")
		}
	}

	// WINDREPORT_GRID_SIZE -> grid_size
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		logger.WithFields(logrus.Fields{"error": err}).Warn("environment config ignored")
	}

	apply(cfg, k)

	return cfg
}

// apply copies every known key present in k into cfg.
func apply(cfg *Config, k *koanf.Koanf) {
	for _, f := range fields {
		if !k.Exists(f.key) {
			continue
		}

		raw := k.String(f.key)
		if err := f.set(cfg, raw); err != nil {
			logger.WithFields(logrus.Fields{
				"key":     f.key,
				"value":   raw,
				"default": f.get(cfg),
			}).Debug("invalid config value, using default")
		}
	}
}

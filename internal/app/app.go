// Package app wires configuration into a runnable pipeline.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/chart"
	"github.com/katiamach/wind-viability-report/internal/config"
	"github.com/katiamach/wind-viability-report/internal/forecast"
	"github.com/katiamach/wind-viability-report/internal/logger"
	"github.com/katiamach/wind-viability-report/internal/metrics"
	"github.com/katiamach/wind-viability-report/internal/report"
	"github.com/katiamach/wind-viability-report/internal/service"
	"github.com/sirupsen/logrus"
)

// Run builds every pipeline component from cfg and executes one run.
func Run(ctx context.Context, cfg *config.Config) (*service.Summary, error) {
	atlas, err := boundaries.Load(cfg.BoundariesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load country boundaries: %w", err)
	}
	logger.WithFields(logrus.Fields{"path": cfg.BoundariesPath, "countries": atlas.Len()}).Info("boundaries loaded")

	if cfg.APIKey == "" {
		logger.Warn("forecast api key is empty, requests will likely be rejected")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	recorder := metrics.New()

	client := forecast.NewHTTPClient(cfg.APIURL, cfg.APIKey,
		forecast.WithModel(cfg.Model),
		forecast.WithLevel(cfg.Level),
		forecast.WithTimeout(cfg.RequestTimeout),
	)

	fetcher := forecast.NewFetcher(client,
		forecast.WithBudget(cfg.RequestBudget),
		forecast.WithRetryDelay(cfg.RetryDelay),
		forecast.WithThrottle(cfg.Throttle),
		forecast.WithConcurrency(cfg.Concurrency),
		forecast.WithSampler(forecast.NewRandomSampler(seed)),
		forecast.WithRecorder(recorder),
	)

	svc := service.New(fetcher, atlas, chart.NewRenderer(), report.NewWriter(), recorder, cfg.OutputDir)

	logger.WithFields(logrus.Fields{
		"region":      cfg.Region,
		"gridSize":    cfg.GridSize,
		"budget":      cfg.RequestBudget,
		"concurrency": cfg.Concurrency,
		"seed":        seed,
	}).Info("starting wind viability run")

	return svc.Run(ctx, cfg.Params())
}

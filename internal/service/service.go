package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/chart"
	"github.com/katiamach/wind-viability-report/internal/country"
	"github.com/katiamach/wind-viability-report/internal/finance"
	"github.com/katiamach/wind-viability-report/internal/grid"
	"github.com/katiamach/wind-viability-report/internal/logger"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/katiamach/wind-viability-report/internal/report"
	"github.com/katiamach/wind-viability-report/internal/wind"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mock/mock.go

// MetricsFile is the Prometheus textfile written into every run directory.
const MetricsFile = "metrics.prom"

const runDirLayout = "20060102-150405"

var ErrOutputDir = errors.New("output directory is not writable")

// Fetcher requests forecasts for grid points.
type Fetcher interface {
	Fetch(ctx context.Context, points []model.GridPoint) ([]model.ForecastResult, error)
}

// Atlas locates points in country boundaries.
type Atlas interface {
	Locate(lat, lon float64) (boundaries.Country, bool)
	Features() []boundaries.Feature
}

// Renderer draws the charts of one run.
type Renderer interface {
	RenderAll(dir string, in chart.Input) (*chart.Images, error)
}

// Reporter writes the report files of one run.
type Reporter interface {
	Write(dir string, doc report.Document) (*report.Files, error)
}

// Metrics collects pipeline gauges and exports them.
type Metrics interface {
	SetObservations(n int)
	SetCountries(n int)
	ObserveStage(stage string, d time.Duration)
	WriteTextfile(path string) error
}

// Summary describes a finished run.
type Summary struct {
	RunID        string
	Dir          string
	GridPoints   int
	Fetched      int
	Observations int
	Countries    int
	Top          []string
	Images       *chart.Images
	Files        *report.Files
}

// WindService runs the viability pipeline.
type WindService struct {
	fetcher   Fetcher
	atlas     Atlas
	renderer  Renderer
	reporter  Reporter
	metrics   Metrics
	outputDir string
	now       func() time.Time
	newID     func() string
}

// Option applies a configuration option to the WindService.
type Option func(*WindService)

// WithClock replaces time.Now for run directory names.
func WithClock(now func() time.Time) Option {
	return func(s *WindService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the random run id suffix.
func WithIDGenerator(newID func() string) Option {
	return func(s *WindService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New creates new WindService writing runs under outputDir.
func New(fetcher Fetcher, atlas Atlas, renderer Renderer, reporter Reporter, metrics Metrics, outputDir string, opts ...Option) *WindService {
	s := &WindService{
		fetcher:   fetcher,
		atlas:     atlas,
		renderer:  renderer,
		reporter:  reporter,
		metrics:   metrics,
		outputDir: outputDir,
		now:       time.Now,
		newID:     func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one pipeline run for the given parameters. A failed run
// leaves no run directory behind.
func (s *WindService) Run(ctx context.Context, p model.Params) (_ *Summary, err error) {
	started := s.now()

	points, err := grid.Generate(p.Region, p.GridSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate grid: %w", err)
	}

	lonKm, latKm, err := grid.Spacing(p.Region, p.GridSize)
	if err != nil {
		return nil, fmt.Errorf("failed to compute grid spacing: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"region":     p.Region,
		"points":     len(points),
		"spacingLon": fmt.Sprintf("%.0fkm", lonKm),
		"spacingLat": fmt.Sprintf("%.0fkm", latKm),
	}).Info("grid generated")

	runID, dir, err := s.createRunDir(started)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.Error(fmt.Errorf("failed to remove run directory %s: %w", dir, rmErr))
		}
	}()

	stageStart := s.now()
	results, err := s.fetcher.Fetch(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecasts: %w", err)
	}
	s.observe("fetch", stageStart)

	fetched := 0
	for _, r := range results {
		if r.Record != nil {
			fetched++
		}
	}

	stageStart = s.now()
	observations, err := wind.Process(results)
	if err != nil {
		return nil, fmt.Errorf("failed to process wind data: %w", err)
	}
	s.metrics.SetObservations(len(observations))

	assignments := country.FilterRegion(country.Assign(observations, s.atlas), p.Region)
	stats := country.Stats(assignments)
	s.metrics.SetCountries(len(stats))
	s.observe("aggregate", stageStart)

	if len(stats) == 0 {
		logger.WithFields(logrus.Fields{"region": p.Region, "observations": len(observations)}).
			Warn("no observation fell inside a country of the region")
	}

	stageStart = s.now()
	financials, err := finance.AnalyzeAll(stats, p)
	if err != nil {
		return nil, fmt.Errorf("failed to run financial model: %w", err)
	}
	top := financials[:topCount(p.TopN, len(financials))]
	s.observe("finance", stageStart)

	stageStart = s.now()
	images, err := s.renderer.RenderAll(dir, chart.Input{
		Region:       p.Region,
		Results:      results,
		Observations: observations,
		Features:     s.atlas.Features(),
		Financials:   financials,
		Top:          top,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}
	s.observe("charts", stageStart)

	stageStart = s.now()
	files, err := s.reporter.Write(dir, report.Document{
		RunID:        runID,
		GeneratedAt:  started,
		Params:       p,
		SpacingLonKm: lonKm,
		SpacingLatKm: latKm,
		GridPoints:   len(points),
		Fetched:      fetched,
		Stats:        stats,
		Results:      financials,
		Observations: observations,
		Images:       images.Paths(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	s.observe("report", stageStart)
	s.observe("total", started)

	if mErr := s.metrics.WriteTextfile(filepath.Join(dir, MetricsFile)); mErr != nil {
		logger.Error(fmt.Errorf("failed to write metrics: %w", mErr))
	}

	summary := &Summary{
		RunID:        runID,
		Dir:          dir,
		GridPoints:   len(points),
		Fetched:      fetched,
		Observations: len(observations),
		Countries:    len(stats),
		Top:          country.Top(stats, p.TopN),
		Images:       images,
		Files:        files,
	}

	logger.WithFields(logrus.Fields{
		"run":          summary.RunID,
		"dir":          summary.Dir,
		"points":       summary.GridPoints,
		"fetched":      summary.Fetched,
		"observations": summary.Observations,
		"countries":    summary.Countries,
		"top":          strings.Join(summary.Top, ", "),
		"took":         s.now().Sub(started).Round(time.Millisecond).String(),
	}).Info("run finished")

	return summary, nil
}

// createRunDir creates <outputDir>/<UTC timestamp>-<id>. An existing
// directory is an error so runs never overwrite each other.
func (s *WindService) createRunDir(at time.Time) (string, string, error) {
	runID := fmt.Sprintf("%s-%s", at.UTC().Format(runDirLayout), s.newID())
	dir := filepath.Join(s.outputDir, runID)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	return runID, dir, nil
}

func (s *WindService) observe(stage string, start time.Time) {
	s.metrics.ObserveStage(stage, s.now().Sub(start))
}

func topCount(n, total int) int {
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}

	return n
}

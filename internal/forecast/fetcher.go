package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/katiamach/wind-viability-report/internal/logger"
	"github.com/katiamach/wind-viability-report/internal/metrics"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetcher defaults.
const (
	DefaultBudget      = 500
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 500 * time.Millisecond
	DefaultThrottle    = 100 * time.Millisecond
)

// Recorder receives fetch metrics.
type Recorder interface {
	RecordAttempt(outcome string)
	RecordPoint(ok bool)
	RecordBackoff(d time.Duration)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Fetcher requests forecasts for a list of points with bounded retries.
type Fetcher struct {
	client      Client
	budget      int
	maxAttempts int
	retryDelay  time.Duration
	throttle    time.Duration
	concurrency int
	sampler     Sampler
	sleep       SleepFunc
	recorder    Recorder
}

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithBudget caps the number of points requested.
func WithBudget(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.budget = n
		}
	}
}

// WithMaxAttempts sets the attempts per point.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the first backoff delay; it doubles after every retry.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.retryDelay = d
		}
	}
}

// WithThrottle sets the pause after each point. Zero disables it.
func WithThrottle(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.throttle = d
		}
	}
}

// WithConcurrency sets how many points are fetched at the same time.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithSampler sets the strategy used when the grid exceeds the budget.
func WithSampler(s Sampler) Option {
	return func(f *Fetcher) {
		if s != nil {
			f.sampler = s
		}
	}
}

// WithSleep replaces the sleep implementation.
func WithSleep(sleep SleepFunc) Option {
	return func(f *Fetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(f *Fetcher) {
		if r != nil {
			f.recorder = r
		}
	}
}

// NewFetcher creates new Fetcher.
func NewFetcher(client Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		budget:      DefaultBudget,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		throttle:    DefaultThrottle,
		concurrency: 1,
		sampler:     NewRandomSampler(time.Now().UnixNano()),
		sleep:       sleepContext,
		recorder:    nopRecorder{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch requests every point, or a sample of budget points when the grid is
// larger. The result is aligned with the requested points; failed points
// carry a nil record. Only context cancellation returns an error.
func (f *Fetcher) Fetch(ctx context.Context, points []model.GridPoint) ([]model.ForecastResult, error) {
	selected := points
	if len(points) > f.budget {
		selected = f.sampler.Sample(points, f.budget)
		logger.Info(fmt.Sprintf("grid has %d points, sampled %d to respect request budget", len(points), len(selected)))
	}

	results := make([]model.ForecastResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, p := range selected {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			record, err := f.fetchPoint(gctx, p)
			if err != nil {
				return err
			}
			results[i] = model.ForecastResult{Point: p, Record: record}

			if f.throttle > 0 {
				return f.sleep(gctx, f.throttle)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch forecasts: %w", err)
	}

	return results, nil
}

func (f *Fetcher) fetchPoint(ctx context.Context, p model.GridPoint) (*model.ForecastRecord, error) {
	log := logger.WithFields(logrus.Fields{"lat": p.Latitude, "lon": p.Longitude})
	delay := f.retryDelay

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		out := f.client.Forecast(ctx, p)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f.recorder.RecordAttempt(out.Kind.String())

		switch out.Kind {
		case Success:
			f.recorder.RecordPoint(true)
			return out.Record, nil
		case Terminal:
			log.WithField("status", out.Status).Warnf("forecast request failed: %v", out.Err)
			f.recorder.RecordPoint(false)
			return nil, nil
		}

		if attempt == f.maxAttempts {
			log.WithField("attempts", attempt).Warnf("giving up on point: %v", out.Err)
			break
		}

		log.WithFields(logrus.Fields{"attempt": attempt, "delay": delay.String()}).Debugf("retrying: %v", out.Err)
		if err := f.sleep(ctx, delay); err != nil {
			return nil, err
		}
		f.recorder.RecordBackoff(delay)
		delay *= 2
	}

	f.recorder.RecordPoint(false)
	return nil, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(string)        {}
func (nopRecorder) RecordPoint(bool)            {}
func (nopRecorder) RecordBackoff(time.Duration) {}

var _ Recorder = (*metrics.Recorder)(nil)

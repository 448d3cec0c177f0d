// Package forecast retrieves point wind forecasts for grid points.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/katiamach/wind-viability-report/internal/model"
)

//go:generate mockgen -source=client.go -destination=mock/mock.go Client

// Kind classifies the outcome of a single forecast request.
type Kind int

const (
	// Success means the payload was received and decoded.
	Success Kind = iota
	// Transient failures are retried with backoff (rate limit, transport, decode).
	Transient
	// Terminal failures are not retried.
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Transient:
		return "transient"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one request.
type Outcome struct {
	Kind   Kind
	Record *model.ForecastRecord
	Status int
	Err    error
}

var (
	ErrRateLimited      = errors.New("forecast api rate limit exceeded")
	ErrUnexpectedStatus = errors.New("unexpected forecast api status")
)

// Client requests the forecast of a single point.
type Client interface {
	Forecast(ctx context.Context, point model.GridPoint) Outcome
}

// Defaults of the point forecast API.
const (
	DefaultURL     = "https://api.windy.com/api/point-forecast/v2"
	DefaultModel   = "gfs"
	DefaultLevel   = "surface"
	DefaultTimeout = 10 * time.Second
)

// HTTPClient talks to a Windy-compatible point forecast API.
type HTTPClient struct {
	url        string
	key        string
	model      string
	parameters []string
	levels     []string
	http       *http.Client
	now        func() time.Time
}

// ClientOption applies a configuration option to the HTTPClient.
type ClientOption func(*HTTPClient)

// WithModel sets the forecast model identifier.
func WithModel(m string) ClientOption {
	return func(c *HTTPClient) {
		if m != "" {
			c.model = m
		}
	}
}

// WithLevel sets the single vertical level requested.
func WithLevel(level string) ClientOption {
	return func(c *HTTPClient) {
		if level != "" {
			c.levels = []string{level}
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClock sets the clock used for acquisition timestamps.
func WithClock(now func() time.Time) ClientOption {
	return func(c *HTTPClient) {
		if now != nil {
			c.now = now
		}
	}
}

// NewHTTPClient creates new HTTPClient.
func NewHTTPClient(url, key string, opts ...ClientOption) *HTTPClient {
	if url == "" {
		url = DefaultURL
	}

	c := &HTTPClient{
		url:        url,
		key:        key,
		model:      DefaultModel,
		parameters: []string{"wind"},
		levels:     []string{DefaultLevel},
		http:       &http.Client{Timeout: DefaultTimeout},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type forecastRequest struct {
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Model      string   `json:"model"`
	Parameters []string `json:"parameters"`
	Levels     []string `json:"levels"`
	Key        string   `json:"key"`
}

// Forecast implements Client.
func (c *HTTPClient) Forecast(ctx context.Context, point model.GridPoint) Outcome {
	body, err := json.Marshal(forecastRequest{
		Lat:        point.Latitude,
		Lon:        point.Longitude,
		Model:      c.model,
		Parameters: c.parameters,
		Levels:     c.levels,
		Key:        c.key,
	})
	if err != nil {
		return Outcome{Kind: Terminal, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: Terminal, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Kind: Transient, Err: fmt.Errorf("failed to get forecast: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Outcome{Kind: Transient, Status: resp.StatusCode, Err: ErrRateLimited}
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Outcome{Kind: Terminal, Status: resp.StatusCode, Err: fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)}
	}

	record, err := c.decode(resp.Body)
	if err != nil {
		return Outcome{Kind: Transient, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	record.AcquiredAt = c.now().UTC()

	return Outcome{Kind: Success, Status: resp.StatusCode, Record: record}
}

// decode reads the wind components of the first requested level. Null
// entries become NaN so that timesteps stay aligned with ts.
func (c *HTTPClient) decode(r io.Reader) (*model.ForecastRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	record := &model.ForecastRecord{}

	if ts, ok := raw["ts"]; ok {
		if err := json.Unmarshal(ts, &record.Timestamps); err != nil {
			return nil, fmt.Errorf("invalid ts: %w", err)
		}
	}

	level := DefaultLevel
	if len(c.levels) > 0 {
		level = c.levels[0]
	}

	var err error
	record.WindU, err = decodeSeries(raw, "wind_u-"+level)
	if err != nil {
		return nil, err
	}
	record.WindV, err = decodeSeries(raw, "wind_v-"+level)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func decodeSeries(raw map[string]json.RawMessage, key string) ([]float64, error) {
	data, ok := raw[key]
	if !ok {
		return nil, nil
	}

	var values []*float64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}

	series := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			series[i] = math.NaN()
			continue
		}
		series[i] = *v
	}

	return series, nil
}

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/tj/assert"

	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/chart"
	"github.com/katiamach/wind-viability-report/internal/grid"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/katiamach/wind-viability-report/internal/report"
	"github.com/katiamach/wind-viability-report/internal/wind"
	mock "github.com/katiamach/wind-viability-report/internal/service/mock"
)

var (
	errTest = errors.New("test error")
	runTime = time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
)

const runID = "20260301-123045-abcdef01"

type mocks struct {
	fetcher  *mock.MockFetcher
	atlas    *mock.MockAtlas
	renderer *mock.MockRenderer
	reporter *mock.MockReporter
	metrics  *mock.MockMetrics
}

func newTestService(t *testing.T, outputDir string) (*WindService, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		fetcher:  mock.NewMockFetcher(ctrl),
		atlas:    mock.NewMockAtlas(ctrl),
		renderer: mock.NewMockRenderer(ctrl),
		reporter: mock.NewMockReporter(ctrl),
		metrics:  mock.NewMockMetrics(ctrl),
	}

	s := New(m.fetcher, m.atlas, m.renderer, m.reporter, m.metrics, outputDir,
		WithClock(func() time.Time { return runTime }),
		WithIDGenerator(func() string { return "abcdef01" }),
	)

	return s, m
}

func testParams() model.Params {
	return model.Params{
		Region:       model.Europe,
		GridSize:     2,
		TurbineArea:  12400,
		Efficiency:   0.4,
		PricePerKWh:  0.12,
		Capex:        1_500_000,
		Opex:         65_000,
		DiscountRate: 0.07,
		Lifetime:     20,
		TopN:         1,
	}
}

// forecasts returns results for the 2x2 Europe grid: speeds 5, 10, none, 1.
func forecasts(points []model.GridPoint) []model.ForecastResult {
	records := []*model.ForecastRecord{
		{WindU: []float64{3}, WindV: []float64{4}},
		{WindU: []float64{6}, WindV: []float64{8}},
		nil,
		{WindU: []float64{1}, WindV: []float64{0}},
	}

	results := make([]model.ForecastResult, len(points))
	for i, p := range points {
		results[i] = model.ForecastResult{Point: p, Record: records[i]}
	}

	return results
}

func locate(lat, lon float64) (boundaries.Country, bool) {
	switch {
	case lat > 60:
		return boundaries.Country{}, false
	case lon < 0:
		return boundaries.Country{Name: "Portugal", Continent: "Europe"}, true
	default:
		return boundaries.Country{Name: "Greece", Continent: "Europe"}, true
	}
}

func TestRun(t *testing.T) {
	outputDir := t.TempDir()
	s, m := newTestService(t, outputDir)
	dir := filepath.Join(outputDir, runID)

	points, err := grid.Generate(model.Europe, 2)
	assert.NoError(t, err)

	images := &chart.Images{
		Coverage:   filepath.Join(dir, chart.CoverageFile),
		Heatmap:    filepath.Join(dir, chart.HeatmapFile),
		Choropleth: filepath.Join(dir, chart.ChoroplethFile),
		CashFlows:  filepath.Join(dir, chart.CashFlowFile),
		PaybackIRR: filepath.Join(dir, chart.PaybackIRRFile),
	}
	files := &report.Files{PDF: filepath.Join(dir, report.PDFFile), Workbook: filepath.Join(dir, report.WorkbookFile)}

	var (
		rendered chart.Input
		written  report.Document
	)

	m.fetcher.EXPECT().Fetch(gomock.Any(), points).Return(forecasts(points), nil)
	m.atlas.EXPECT().Locate(gomock.Any(), gomock.Any()).DoAndReturn(locate).Times(3)
	m.atlas.EXPECT().Features().Return(nil)
	m.renderer.EXPECT().RenderAll(dir, gomock.Any()).DoAndReturn(func(_ string, in chart.Input) (*chart.Images, error) {
		rendered = in
		return images, nil
	})
	m.reporter.EXPECT().Write(dir, gomock.Any()).DoAndReturn(func(_ string, doc report.Document) (*report.Files, error) {
		written = doc
		return files, nil
	})
	m.metrics.EXPECT().SetObservations(3)
	m.metrics.EXPECT().SetCountries(2)
	m.metrics.EXPECT().ObserveStage(gomock.Any(), gomock.Any()).AnyTimes()
	m.metrics.EXPECT().WriteTextfile(filepath.Join(dir, MetricsFile)).Return(nil)

	summary, err := s.Run(context.Background(), testParams())
	assert.NoError(t, err)

	assert.Equal(t, runID, summary.RunID)
	assert.Equal(t, dir, summary.Dir)
	assert.Equal(t, 4, summary.GridPoints)
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 3, summary.Observations)
	assert.Equal(t, 2, summary.Countries)
	assert.Equal(t, []string{"Greece"}, summary.Top)
	assert.Equal(t, images, summary.Images)
	assert.Equal(t, files, summary.Files)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Len(t, rendered.Financials, 2)
	assert.Len(t, rendered.Top, 1)
	assert.Equal(t, "Greece", rendered.Top[0].Country)
	assert.Len(t, rendered.Results, 4)

	assert.Equal(t, runID, written.RunID)
	assert.Equal(t, runTime, written.GeneratedAt)
	assert.Equal(t, 4, written.GridPoints)
	assert.Equal(t, 3, written.Fetched)
	assert.Equal(t, images.Paths(), written.Images)
	assert.Equal(t, "Greece", written.Stats[0].Country)
	assert.Equal(t, 10.0, written.Stats[0].MeanWindSpeed)
	assert.Equal(t, "Portugal", written.Stats[1].Country)
	assert.True(t, written.SpacingLonKm > 0)
}

func TestRunErrors(t *testing.T) {
	points, err := grid.Generate(model.Europe, 2)
	assert.NoError(t, err)

	empty := make([]model.ForecastResult, len(points))
	for i, p := range points {
		empty[i] = model.ForecastResult{Point: p}
	}

	cases := []struct {
		name          string
		setup         func(m mocks)
		expectedError error
	}{
		{
			name: "fetch error",
			setup: func(m mocks) {
				m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errTest)
			},
			expectedError: errTest,
		},
		{
			name: "no observations",
			setup: func(m mocks) {
				m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(empty, nil)
				m.metrics.EXPECT().ObserveStage(gomock.Any(), gomock.Any()).AnyTimes()
			},
			expectedError: wind.ErrNoObservations,
		},
		{
			name: "fetch canceled",
			setup: func(m mocks) {
				m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)
			},
			expectedError: context.Canceled,
		},
		{
			name: "render error",
			setup: func(m mocks) {
				m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(forecasts(points), nil)
				m.atlas.EXPECT().Locate(gomock.Any(), gomock.Any()).DoAndReturn(locate).AnyTimes()
				m.atlas.EXPECT().Features().Return(nil)
				m.metrics.EXPECT().SetObservations(gomock.Any())
				m.metrics.EXPECT().SetCountries(gomock.Any())
				m.metrics.EXPECT().ObserveStage(gomock.Any(), gomock.Any()).AnyTimes()
				m.renderer.EXPECT().RenderAll(gomock.Any(), gomock.Any()).Return(nil, errTest)
			},
			expectedError: errTest,
		},
		{
			name: "report error",
			setup: func(m mocks) {
				m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(forecasts(points), nil)
				m.atlas.EXPECT().Locate(gomock.Any(), gomock.Any()).DoAndReturn(locate).AnyTimes()
				m.atlas.EXPECT().Features().Return(nil)
				m.metrics.EXPECT().SetObservations(gomock.Any())
				m.metrics.EXPECT().SetCountries(gomock.Any())
				m.metrics.EXPECT().ObserveStage(gomock.Any(), gomock.Any()).AnyTimes()
				m.renderer.EXPECT().RenderAll(gomock.Any(), gomock.Any()).Return(&chart.Images{}, nil)
				m.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil, errTest)
			},
			expectedError: errTest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outputDir := t.TempDir()
			s, m := newTestService(t, outputDir)
			tc.setup(m)

			_, err := s.Run(context.Background(), testParams())
			assert.True(t, errors.Is(err, tc.expectedError))

			_, err = os.Stat(filepath.Join(outputDir, runID))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestRunMetricsExportFailureIsNotFatal(t *testing.T) {
	points, err := grid.Generate(model.Europe, 2)
	assert.NoError(t, err)

	s, m := newTestService(t, t.TempDir())
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(forecasts(points), nil)
	m.atlas.EXPECT().Locate(gomock.Any(), gomock.Any()).DoAndReturn(locate).AnyTimes()
	m.atlas.EXPECT().Features().Return(nil)
	m.metrics.EXPECT().SetObservations(gomock.Any())
	m.metrics.EXPECT().SetCountries(gomock.Any())
	m.metrics.EXPECT().ObserveStage(gomock.Any(), gomock.Any()).AnyTimes()
	m.renderer.EXPECT().RenderAll(gomock.Any(), gomock.Any()).Return(&chart.Images{}, nil)
	m.reporter.EXPECT().Write(gomock.Any(), gomock.Any()).Return(&report.Files{}, nil)
	m.metrics.EXPECT().WriteTextfile(gomock.Any()).Return(errTest)

	summary, err := s.Run(context.Background(), testParams())
	assert.NoError(t, err)
	assert.Equal(t, runID, summary.RunID)
}

func TestRunInvalidGrid(t *testing.T) {
	s, _ := newTestService(t, t.TempDir())

	p := testParams()
	p.GridSize = 0

	_, err := s.Run(context.Background(), p)
	assert.True(t, errors.Is(err, grid.ErrInvalidResolution))
}

func TestRunOutputDir(t *testing.T) {
	t.Run("output path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports")
		assert.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		s, _ := newTestService(t, path)

		_, err := s.Run(context.Background(), testParams())
		assert.True(t, errors.Is(err, ErrOutputDir))
	})

	t.Run("run directory already exists", func(t *testing.T) {
		outputDir := t.TempDir()
		assert.NoError(t, os.Mkdir(filepath.Join(outputDir, runID), 0o755))

		s, _ := newTestService(t, outputDir)

		_, err := s.Run(context.Background(), testParams())
		assert.True(t, errors.Is(err, ErrOutputDir))
	})
}

func TestTopCount(t *testing.T) {
	assert.Equal(t, 0, topCount(-1, 5))
	assert.Equal(t, 3, topCount(3, 5))
	assert.Equal(t, 5, topCount(10, 5))
}

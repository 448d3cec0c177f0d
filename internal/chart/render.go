package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Fixed image names inside the run directory.
const (
	CoverageFile   = "coverage.png"
	HeatmapFile    = "heatmap.png"
	ChoroplethFile = "rentability.png"
	CashFlowFile   = "cashflows.png"
	PaybackIRRFile = "payback_irr.png"
)

var ErrRender = errors.New("failed to render chart")

var (
	outlineColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	noDataColor  = color.RGBA{R: 225, G: 225, B: 225, A: 255}
	okColor      = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	failedColor  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
)

// Input is everything the renderer draws.
type Input struct {
	Region       model.Region
	Results      []model.ForecastResult
	Observations []model.WindObservation
	Features     []boundaries.Feature
	Financials   []model.FinancialResult // all analysed countries
	Top          []model.FinancialResult // countries shown in detail
}

// Images lists the written files.
type Images struct {
	Coverage   string
	Heatmap    string
	Choropleth string
	CashFlows  string
	PaybackIRR string
}

// Paths returns the image files in report order.
func (i Images) Paths() []string {
	return []string{i.Coverage, i.Heatmap, i.Choropleth, i.CashFlows, i.PaybackIRR}
}

// Renderer draws the charts of one run.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size.
func WithSize(width, height vg.Length) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// NewRenderer creates new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		width:  10 * vg.Inch,
		height: 7 * vg.Inch,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RenderAll draws all five charts into dir.
func (r *Renderer) RenderAll(dir string, in Input) (*Images, error) {
	box, ok := in.Region.Box()
	if !ok {
		return nil, fmt.Errorf("%w: unknown region %s", ErrRender, in.Region)
	}

	images := &Images{
		Coverage:   filepath.Join(dir, CoverageFile),
		Heatmap:    filepath.Join(dir, HeatmapFile),
		Choropleth: filepath.Join(dir, ChoroplethFile),
		CashFlows:  filepath.Join(dir, CashFlowFile),
		PaybackIRR: filepath.Join(dir, PaybackIRRFile),
	}

	steps := []struct {
		name string
		fn   func() (*plot.Plot, error)
		path string
	}{
		{name: "coverage", fn: func() (*plot.Plot, error) { return coveragePlot(in, box) }, path: images.Coverage},
		{name: "heatmap", fn: func() (*plot.Plot, error) { return heatmapPlot(in, box) }, path: images.Heatmap},
		{name: "choropleth", fn: func() (*plot.Plot, error) { return choroplethPlot(in, box) }, path: images.Choropleth},
		{name: "cash flows", fn: func() (*plot.Plot, error) { return cashFlowPlot(in.Top) }, path: images.CashFlows},
		{name: "payback/irr", fn: func() (*plot.Plot, error) { return paybackIRRPlot(in.Top) }, path: images.PaybackIRR},
	}

	for _, s := range steps {
		p, err := s.fn()
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrRender, s.name, err)
		}

		if err := p.Save(r.width, r.height, s.path); err != nil {
			return nil, fmt.Errorf("%w %s: failed to save: %v", ErrRender, s.name, err)
		}
	}

	return images, nil
}

func coveragePlot(in Input, box model.BBox) (*plot.Plot, error) {
	p := newMapPlot(fmt.Sprintf("Forecast coverage - %s", in.Region), box)

	if err := addOutlines(p, in.Features, box); err != nil {
		return nil, err
	}

	fetched, failed := CoverageSeries(in.Results)
	for _, s := range []struct {
		label string
		xys   plotter.XYs
		color color.Color
	}{
		{label: "forecast", xys: fetched, color: okColor},
		{label: "no data", xys: failed, color: failedColor},
	} {
		if len(s.xys) == 0 {
			continue
		}

		sc, err := plotter.NewScatter(s.xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = s.color
		sc.GlyphStyle.Radius = vg.Points(4)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("%s (%d)", s.label, len(s.xys)), sc)
	}

	return p, nil
}

func heatmapPlot(in Input, box model.BBox) (*plot.Plot, error) {
	p := newMapPlot(fmt.Sprintf("Average wind speed (m/s) - %s", in.Region), box)

	if err := addOutlines(p, in.Features, box); err != nil {
		return nil, err
	}

	xyz := HeatmapSeries(in.Observations)
	if len(xyz) == 0 {
		return p, nil
	}

	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, v := range xyz {
		minZ = math.Min(minZ, v.Z)
		maxZ = math.Max(maxZ, v.Z)
	}
	if maxZ == minZ {
		maxZ = minZ + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(minZ)
	cm.SetMax(maxZ)

	sc, err := plotter.NewScatter(xyz)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(xyz[i].Z)
		if err != nil {
			c = noDataColor
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(6), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	labels := make([]string, len(xyz))
	for i, v := range xyz {
		labels[i] = fmt.Sprintf("%.1f", v.Z)
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xyzToXYs(xyz), Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)

	return p, nil
}

func choroplethPlot(in Input, box model.BBox) (*plot.Plot, error) {
	p := newMapPlot(fmt.Sprintf("Rentability (NPV / CAPEX) - %s", in.Region), box)

	areas := ChoroplethSeries(in.Features, in.Financials)

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, a := range areas {
		if a.HasValue {
			minV = math.Min(minV, a.Rentability)
			maxV = math.Max(maxV, a.Rentability)
		}
	}
	if math.IsInf(minV, 1) {
		minV, maxV = 0, 1
	}
	if maxV == minV {
		maxV = minV + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(minV)
	cm.SetMax(maxV)

	for _, a := range areas {
		if !intersects(a.Shape.Bound(), box) {
			continue
		}

		fill := color.Color(noDataColor)
		if a.HasValue {
			if c, err := cm.At(a.Rentability); err == nil {
				fill = c
			}
		}

		for _, poly := range a.Shape {
			rings := make([]plotter.XYer, 0, len(poly))
			for _, ring := range poly {
				rings = append(rings, ringXYs(ring))
			}

			pg, err := plotter.NewPolygon(rings...)
			if err != nil {
				return nil, err
			}
			pg.Color = fill
			pg.LineStyle.Color = outlineColor
			pg.LineStyle.Width = vg.Points(0.5)
			p.Add(pg)
		}
	}
	fitBox(p, box)

	return p, nil
}

func cashFlowPlot(results []model.FinancialResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Cumulative cash flow"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "EUR"
	p.Add(plotter.NewGrid())

	for i, s := range CashFlowSeries(results) {
		line, err := plotter.NewLine(s.Cumulative)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(s.Country, line)
	}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	zero.Color = outlineColor
	p.Add(zero)

	p.Legend.Top = false
	p.Legend.Left = true

	return p, nil
}

func paybackIRRPlot(results []model.FinancialResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "IRR (%) and payback (years)"
	p.Add(plotter.NewGrid())

	series := PaybackIRRSeries(results)
	if len(series) == 0 {
		return p, nil
	}

	irr := make(plotter.Values, len(series))
	payback := make(plotter.Values, len(series))
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Country
		if s.IRRPercent != nil {
			irr[i] = *s.IRRPercent
		}
		if s.Payback != nil {
			payback[i] = float64(*s.Payback)
		}
	}

	w := vg.Points(18)

	irrBars, err := plotter.NewBarChart(irr, w)
	if err != nil {
		return nil, err
	}
	irrBars.Color = plotutil.Color(0)
	irrBars.Offset = -w / 2

	paybackBars, err := plotter.NewBarChart(payback, w)
	if err != nil {
		return nil, err
	}
	paybackBars.Color = plotutil.Color(1)
	paybackBars.Offset = w / 2

	p.Add(irrBars, paybackBars)
	p.Legend.Add("IRR %", irrBars)
	p.Legend.Add("Payback years", paybackBars)
	p.Legend.Top = true
	p.NominalX(names...)

	return p, nil
}

func newMapPlot(title string, box model.BBox) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())
	fitBox(p, box)

	return p
}

// addOutlines draws country borders intersecting the box.
func addOutlines(p *plot.Plot, features []boundaries.Feature, box model.BBox) error {
	for _, f := range features {
		if !intersects(f.Shape.Bound(), box) {
			continue
		}

		for _, poly := range f.Shape {
			if len(poly) == 0 {
				continue
			}

			line, err := plotter.NewLine(ringXYs(poly[0]))
			if err != nil {
				return err
			}
			line.LineStyle.Color = outlineColor
			line.LineStyle.Width = vg.Points(0.5)
			p.Add(line)
		}
	}

	fitBox(p, box)

	return nil
}

// fitBox resets the axes to the region, shapes reaching outside are clipped.
func fitBox(p *plot.Plot, box model.BBox) {
	p.X.Min, p.X.Max = box.MinLon, box.MaxLon
	p.Y.Min, p.Y.Max = box.MinLat, box.MaxLat
}

func ringXYs(ring orb.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, pt := range ring {
		xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
	}

	return xys
}

func xyzToXYs(xyz plotter.XYZs) plotter.XYs {
	xys := make(plotter.XYs, len(xyz))
	for i, v := range xyz {
		xys[i] = plotter.XY{X: v.X, Y: v.Y}
	}

	return xys
}

func intersects(b orb.Bound, box model.BBox) bool {
	return b.Min[0] <= box.MaxLon && b.Max[0] >= box.MinLon &&
		b.Min[1] <= box.MaxLat && b.Max[1] >= box.MinLat
}

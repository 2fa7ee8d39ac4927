package layout

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartPoint is a single labelled chart value.
type ChartPoint struct {
	Label string
	Value float64
}

// ChartSeries is one named series of points.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// EChartsRenderer renders server-side chart HTML for a fixed chart type.
type EChartsRenderer struct {
	chartType  string
	cache      RenderCache
	theme      string
	assetsHost string
}

// EChartsOption customizes renderer behavior.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(p *EChartsRenderer) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsOption {
	return func(p *EChartsRenderer) {
		p.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(p *EChartsRenderer) {
		p.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer for a specific chart type.
func NewEChartsRenderer(chartType string, options ...EChartsOption) *EChartsRenderer {
	p := &EChartsRenderer{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// RenderSeries converts series data into chart markup. A non-empty cache key
// memoizes the rendered HTML.
func (p *EChartsRenderer) RenderSeries(key, title, subtitle string, xAxis []string, series []ChartSeries) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("layout: chart series is required")
	}
	renderFn := func() (string, error) {
		return p.render(title, subtitle, xAxis, series)
	}
	if p.cache != nil && key != "" {
		return p.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (p *EChartsRenderer) render(title, subtitle string, xAxis []string, series []ChartSeries) (string, error) {
	switch p.chartType {
	case "bar":
		return p.renderBarChart(title, subtitle, xAxis, series)
	case "line":
		return p.renderLineChart(title, subtitle, xAxis, series)
	default:
		return "", fmt.Errorf("layout: unsupported chart type: %s", p.chartType)
	}
}

func (p *EChartsRenderer) renderBarChart(title, subtitle string, xAxis []string, series []ChartSeries) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalChartOptions(title, subtitle)...)
	bar.SetXAxis(xAxis)
	for _, s := range series {
		bar.AddSeries(s.Name, toBarData(s.Points))
	}
	return renderChart(bar)
}

func (p *EChartsRenderer) renderLineChart(title, subtitle string, xAxis []string, series []ChartSeries) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(title, subtitle)...)
	line.SetXAxis(xAxis)
	for _, s := range series {
		line.AddSeries(s.Name, toLineData(s.Points))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (p *EChartsRenderer) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  p.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

package playground

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "320px"
	// ActivityChartID is the DOM id of the rendered chart element.
	ActivityChartID = "activity-chart"
)

type snapshotSource interface {
	Snapshot(ctx context.Context) Snapshot
}

// ActivityChart renders a bar chart of applied status updates per widget.
type ActivityChart struct {
	source     snapshotSource
	catalog    Catalog
	cache      RenderCache
	theme      string
	assetsHost string
}

// ActivityChartOption customizes chart rendering.
type ActivityChartOption func(*ActivityChart)

// WithActivityCache injects a render cache.
func WithActivityCache(cache RenderCache) ActivityChartOption {
	return func(c *ActivityChart) {
		c.cache = cache
	}
}

// WithActivityTheme sets the chart theme (defaults to Westeros).
func WithActivityTheme(theme string) ActivityChartOption {
	return func(c *ActivityChart) {
		if theme != "" {
			c.theme = theme
		}
	}
}

// WithActivityAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithActivityAssetsHost(host string) ActivityChartOption {
	return func(c *ActivityChart) {
		c.assetsHost = host
	}
}

// NewActivityChart builds a chart reading counts from the service.
func NewActivityChart(service *Service, opts ...ActivityChartOption) *ActivityChart {
	c := &ActivityChart{
		source:  service,
		catalog: service.Catalog(),
		cache:   NewChartCache(5 * time.Second),
		theme:   types.ThemeWesteros,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render returns the chart HTML for the current counts.
func (c *ActivityChart) Render(ctx context.Context) (string, error) {
	counts := c.source.Snapshot(ctx).DispatchCount
	render := func() (string, error) {
		return c.render(counts)
	}
	if c.cache == nil {
		return render()
	}
	return c.cache.GetOrRender("activity:"+c.theme+":"+countsHash(counts), render)
}

func (c *ActivityChart) render(counts map[WidgetKey]int) (string, error) {
	defs := c.catalog.Definitions()
	labels := make([]string, 0, len(defs))
	data := make([]opts.BarData, 0, len(defs))
	for _, def := range defs {
		labels = append(labels, def.Name)
		data = append(data, opts.BarData{Name: def.Name, Value: counts[def.Key]})
	}

	initOpts := opts.Initialization{
		PageTitle: "Widget Activity",
		ChartID:   ActivityChartID,
		Theme:     c.theme,
		Width:     "100%",
		Height:    defaultChartHeight,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Widget Activity", Subtitle: "Applied status updates"}),
		charts.WithInitializationOpts(initOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("updates", data)
	return renderChart(bar)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package playground

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	keys []string
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return render()
}

func TestActivityChartRendersBarChart(t *testing.T) {
	service := NewService(Options{})
	_, err := service.Gesture(context.Background(), GestureRequest{Widget: WidgetClick, Action: ActionClick})
	require.NoError(t, err)

	chart := NewActivityChart(service, WithActivityCache(nil))
	html, err := chart.Render(context.Background())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "Widget Activity", strings.TrimSpace(doc.Find("title").Text()))
	assert.Equal(t, 1, doc.Find("#"+ActivityChartID).Length())
	assert.Contains(t, html, "Single Click")
	assert.Contains(t, html, "echarts")
}

func TestActivityChartCacheKeyFollowsCounts(t *testing.T) {
	service := NewService(Options{})
	cache := &countingCache{}
	chart := NewActivityChart(service, WithActivityCache(cache), WithActivityTheme("dark"))

	_, err := chart.Render(context.Background())
	require.NoError(t, err)
	_, err = service.Gesture(context.Background(), GestureRequest{Widget: WidgetRightClick, Action: ActionContextMenu})
	require.NoError(t, err)
	_, err = chart.Render(context.Background())
	require.NoError(t, err)

	require.Len(t, cache.keys, 2)
	assert.Equal(t, "activity:dark:empty", cache.keys[0])
	assert.NotEqual(t, cache.keys[0], cache.keys[1])
}

func TestActivityChartAssetsHost(t *testing.T) {
	service := NewService(Options{})
	chart := NewActivityChart(service, WithActivityCache(nil), WithActivityAssetsHost("https://cdn.example.com/echarts/"))
	html, err := chart.Render(context.Background())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	var sources []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		sources = append(sources, src)
	})
	require.NotEmpty(t, sources)
	assert.True(t, strings.HasPrefix(sources[0], "https://cdn.example.com/echarts/"))
}

package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"sync"
	"time"
)

var ErrChartNotVisible = errors.New("dashboard chart container never became visible")

const (
	chartWidth  = 600
	chartHeight = 300
	baselineMax = 200

	pollInterval = 100 * time.Millisecond
	pollTimeout  = 5 * time.Second
)

var chartTmpl = template.Must(template.New("chart").Parse(`<svg id="stats-chart" viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="Clinic statistics">
{{- range .Bars}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.BarWidth}}" height="{{.BarHeight}}" class="bar bar-{{.Key}}"></rect>
<text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="middle" class="bar-label">{{.Label}}</text>
<text x="{{.LabelX}}" y="{{.ValueY}}" text-anchor="middle" class="bar-value">{{.Value}}</text>
{{- end}}
</svg>
`))

type bar struct {
	Key       string
	Label     string
	Value     int
	X, Y      int
	BarWidth  int
	BarHeight int
	LabelX    int
	LabelY    int
	ValueY    int
}

// Chart renders the dashboard bar chart. Each render replaces the previous
// one wholesale; there is no incremental update of an existing chart.
type Chart struct {
	mu       sync.Mutex
	rendered template.HTML
}

func NewChart() *Chart {
	return &Chart{}
}

// Render rebuilds the chart SVG from the given counts. The scale keeps a
// floor of 200 so small clinics do not get a chart where every bar hits
// the ceiling.
func (c *Chart) Render(counts Counts) (template.HTML, error) {
	series := []struct {
		key   string
		label string
		value int
	}{
		{"files", "Files", counts.Files},
		{"appointments", "Appointments", counts.Appointments},
		{"records", "Records", counts.Records},
		{"users", "Users", counts.Users},
	}

	yMax := baselineMax
	for _, s := range series {
		if s.value > yMax {
			yMax = ((s.value / 50) + 1) * 50
		}
	}

	const plotHeight = chartHeight - 40
	barWidth := chartWidth / (len(series) * 2)

	bars := make([]bar, len(series))
	for i, s := range series {
		h := s.value * plotHeight / yMax
		x := barWidth/2 + i*barWidth*2
		bars[i] = bar{
			Key:       s.key,
			Label:     s.label,
			Value:     s.value,
			X:         x,
			Y:         plotHeight - h,
			BarWidth:  barWidth,
			BarHeight: h,
			LabelX:    x + barWidth/2,
			LabelY:    chartHeight - 20,
			ValueY:    chartHeight - 4,
		}
	}

	var buf bytes.Buffer
	err := chartTmpl.Execute(&buf, struct {
		Width, Height int
		Bars          []bar
	}{chartWidth, chartHeight, bars})
	if err != nil {
		return "", fmt.Errorf("failed to render stats chart: %w", err)
	}

	html := template.HTML(buf.String())
	c.mu.Lock()
	c.rendered = html
	c.mu.Unlock()
	return html, nil
}

// Rendered returns the last rendered chart, empty before the first render.
func (c *Chart) Rendered() template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendered
}

// WaitVisible polls until visible reports true, every 100ms for up to 5s.
// A first timeout gets one retry round before giving up, since the caches
// may still be filling on a cold start.
func WaitVisible(ctx context.Context, visible func() bool) error {
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("Dashboard chart container not visible yet, retrying")
		}
		if pollVisible(ctx, visible) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return ErrChartNotVisible
}

func pollVisible(ctx context.Context, visible func() bool) bool {
	deadline := time.Now().Add(pollTimeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if visible() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

package performance

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskpilot/internal/models"
)

// RenderChart renders the series as a PNG line chart. Two series: the
// portfolio (blue solid) and the SPY benchmark (gray dashed).
func (s *Service) RenderChart(series *models.PerformanceSeries) ([]byte, error) {
	if series == nil || len(series.Dates) < 2 {
		return nil, fmt.Errorf("need at least 2 data points to render a chart")
	}

	portfolioSeries := chart.TimeSeries{
		Name: "Portfolio",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: series.Dates,
		YValues: series.Portfolio,
	}

	benchmarkSeries := chart.TimeSeries{
		Name: "S&P 500 (SPY)",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: series.Dates,
		YValues: series.Benchmark,
	}

	graph := chart.Chart{
		Title:  "Portfolio Performance",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			portfolioSeries,
			benchmarkSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

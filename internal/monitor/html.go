package monitor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive page with one line chart per series.
func RenderHTML(w io.Writer, title string, series []Series) error {
	if err := checkSeries(series); err != nil {
		return err
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	for _, s := range series {
		page.AddCharts(seriesChart(s))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}

// SaveHTML writes RenderHTML output to path, creating parent directories.
func SaveHTML(path, title string, series []Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderHTML(f, title, series); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	monitoring.Logf("wrote chart page %s (%d charts)", path, len(series))
	return nil
}

func seriesChart(s Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: s.title(), Subtitle: fmt.Sprintf("raw=%d conditioned=%d", len(s.Raw), len(s.Conditioned))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: string(s.Kind)}),
	)

	origin, ok := s.origin()
	if !ok {
		return line
	}
	for axis, name := range axisNames {
		if len(s.Raw) > 0 {
			line.AddSeries(name+" raw", lineData(s.Raw, axis, origin),
				charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Opacity: opts.Float(0.5)}),
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			)
		}
		if len(s.Conditioned) > 0 {
			line.AddSeries(name+" conditioned", lineData(s.Conditioned, axis, origin),
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			)
		}
	}
	return line
}

func lineData(samples []measurement.Triad, axis int, origin int64) []opts.LineData {
	data := make([]opts.LineData, 0, len(samples))
	for _, m := range samples {
		data = append(data, opts.LineData{Value: []interface{}{seconds(m.Timestamp, origin), component(m, axis)}})
	}
	return data
}

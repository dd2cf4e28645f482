package monitor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	panelWidth  = 14 * vg.Inch
	panelHeight = 5 * vg.Inch
)

// RenderPNG draws one panel per series, stacked vertically. Raw samples
// are dashed, conditioned samples solid, one color per axis.
func RenderPNG(w io.Writer, series []Series) error {
	if err := checkSeries(series); err != nil {
		return err
	}

	plots := make([][]*plot.Plot, 0, len(series))
	for _, s := range series {
		p, err := seriesPlot(s)
		if err != nil {
			return err
		}
		plots = append(plots, []*plot.Plot{p})
	}

	img := vgimg.New(panelWidth, vg.Length(len(plots))*panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadY:      vg.Points(8),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes RenderPNG output to path, creating parent directories.
func SavePNG(path string, series []Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderPNG(f, series); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	monitoring.Logf("wrote chart %s (%d panels)", path, len(series))
	return nil
}

func seriesPlot(s Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.title()
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = string(s.Kind)

	origin, ok := s.origin()
	if !ok {
		return p, nil
	}

	for axis, name := range axisNames {
		raw := xys(s.Raw, axis, origin)
		cond := xys(s.Conditioned, axis, origin)

		if len(raw) > 0 {
			line, err := plotter.NewLine(raw)
			if err != nil {
				return nil, err
			}
			line.Color = plotutil.Color(axis)
			line.Width = vg.Points(0.5)
			line.Dashes = plotutil.Dashes(1)
			p.Add(line)
			p.Legend.Add(name+" raw", line)
		}
		if len(cond) > 0 {
			line, err := plotter.NewLine(cond)
			if err != nil {
				return nil, err
			}
			line.Color = plotutil.Color(axis)
			line.Width = vg.Points(1.5)
			p.Add(line)
			p.Legend.Add(name+" conditioned", line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

func xys(samples []measurement.Triad, axis int, origin int64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(samples))
	for _, m := range samples {
		pts = append(pts, plotter.XY{X: seconds(m.Timestamp, origin), Y: component(m, axis)})
	}
	return pts
}

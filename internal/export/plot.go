package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"roi-analyzer/internal/analysis"
)

// SavePlot renders the series as a PNG line chart. When the derived
// statistics are defined they are added to the legend; an empty or
// zero-minimum series is plotted without them.
func SavePlot(path string, series analysis.Series) error {
	p := plot.New()
	p.Title.Text = "Kerr Contrast: ROI Intensity vs Magnetic Field"
	p.X.Label.Text = "Magnetic Field Step (Frame Number)"
	p.Y.Label.Text = "Mean ROI Intensity"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(series))
	for i, s := range series {
		pts[i].X = float64(s.FrameIndex)
		pts[i].Y = s.MeanIntensity
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building line plot: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	if stats, err := series.Stats(); err == nil {
		p.Legend.Add(fmt.Sprintf("Contrast Ratio: %.1f%%  Min: %.1f  Max: %.1f",
			stats.ContrastRatio, stats.Min, stats.Max), line)
		p.Legend.Top = true
		p.Legend.Left = true
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}

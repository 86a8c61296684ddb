// Package plotting renders the combined boxplot/histogram view of a
// numeric column.
package plotting

import (
	"image/color"
	"io"
	"math"

	moremath "github.com/aclements/go-moremath/stats"
	montana "github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"statkit/domain/dataset"
	"statkit/internal/errors"
)

// DefaultBins is used when the caller does not pick a bin count
const DefaultBins = 20

// Reference-line palette, matching the matplotlib C1/C2/C3 cycle
var (
	colorMean   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorMedian = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorMode   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Composer renders distribution views
type Composer struct {
	Width  vg.Length
	Height vg.Length
}

// NewComposer creates a composer with the default figure size
func NewComposer() *Composer {
	return &Composer{Width: 7 * vg.Inch, Height: 6 * vg.Inch}
}

// Compose renders the two stacked panels for one numeric column: a
// boxplot with mean and median markers above a histogram with a smoothed
// density overlay and mean/median/mode reference lines. The figure is
// written as PNG. Missing values are omitted; bins <= 0 selects the
// default bin count.
func (c *Composer) Compose(frame *dataset.Frame, column string, bins int, out io.Writer) error {
	raw, err := frame.Numeric(column)
	if err != nil {
		return err
	}
	values := dataset.OmitNaN(raw)
	if len(values) == 0 {
		return errors.InvalidInput("cannot plot an empty column")
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	mean, _ := montana.Mean(values)
	median, _ := montana.Median(values)
	mode := firstMode(values)

	lo, _ := montana.Min(values)
	hi, _ := montana.Max(values)
	if lo == hi {
		// degenerate range still renders
		lo, hi = lo-1, hi+1
	}

	boxPanel, err := c.buildBoxPanel(values, lo, hi)
	if err != nil {
		return err
	}
	histPanel, err := c.buildHistPanel(values, bins, lo, hi, mean, median, mode)
	if err != nil {
		return err
	}

	// Stack the panels on a shared horizontal range: a short boxplot
	// strip above the histogram.
	img := vgimg.New(c.Width, c.Height)
	dc := draw.New(img)

	boxHeight := c.Height / 5
	topCanvas := draw.Crop(dc, 0, 0, c.Height-boxHeight, 0)
	bottomCanvas := draw.Crop(dc, 0, 0, 0, -boxHeight)

	boxPanel.Draw(topCanvas)
	histPanel.Draw(bottomCanvas)

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		return errors.Wrap(err, "failed to encode plot")
	}
	return nil
}

func (c *Composer) buildBoxPanel(values []float64, lo, hi float64) (*plot.Plot, error) {
	p := plot.New()
	p.HideY()
	p.X.Min, p.X.Max = padRange(lo, hi)

	box, err := plotter.NewBoxPlot(vg.Points(30), 0, plotter.Values(values))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build boxplot")
	}
	box.Horizontal = true
	box.MedianStyle.Color = colorMedian
	box.MedianStyle.Width = vg.Points(1.5)
	box.MedianStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(box)

	// Mean marker, dashed, in the mean color
	mean, _ := montana.Mean(values)
	meanLine := verticalLine(mean, -0.5, 0.5)
	meanLine.Color = colorMean
	meanLine.Width = vg.Points(1.5)
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(meanLine)

	return p, nil
}

func (c *Composer) buildHistPanel(values []float64, bins int, lo, hi, mean, median, mode float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Min, p.X.Max = padRange(lo, hi)
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build histogram")
	}
	hist.FillColor = color.RGBA{R: 31, G: 119, B: 180, A: 200}
	p.Add(hist)

	maxCount := 0.0
	for _, bin := range hist.Bins {
		if bin.Weight > maxCount {
			maxCount = bin.Weight
		}
	}

	// Smoothed density overlay, scaled from density to counts
	if kdeLine := kdeOverlay(values, bins, lo, hi); kdeLine != nil {
		kdeLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		kdeLine.Width = vg.Points(1.5)
		p.Add(kdeLine)
	}

	top := maxCount * 1.05
	for _, ref := range []struct {
		label string
		x     float64
		color color.RGBA
	}{
		{"Mean", mean, colorMean},
		{"Median", median, colorMedian},
		{"Mode", mode, colorMode},
	} {
		line := verticalLine(ref.x, 0, top)
		line.Color = ref.color
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add(ref.label, line)
	}
	p.Legend.Top = true

	return p, nil
}

// kdeOverlay evaluates a kernel density estimate across the padded range
// and scales it to the histogram's count axis
func kdeOverlay(values []float64, bins int, lo, hi float64) *plotter.Line {
	sample := moremath.Sample{Xs: values}
	kde := &moremath.KDE{Sample: sample}

	binWidth := (hi - lo) / float64(bins)
	scale := float64(len(values)) * binWidth
	if scale <= 0 || math.IsNaN(scale) {
		return nil
	}

	const points = 200
	min, max := padRange(lo, hi)
	pts := make(plotter.XYs, points)
	for i := 0; i < points; i++ {
		x := min + (max-min)*float64(i)/float64(points-1)
		pts[i] = plotter.XY{X: x, Y: kde.PDF(x) * scale}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil
	}
	return line
}

func verticalLine(x, yMin, yMax float64) *plotter.Line {
	line, _ := plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
	return line
}

func padRange(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// firstMode returns the first (smallest) mode; with no repeated value the
// minimum stands in, mirroring the first element of a full-sample mode.
func firstMode(values []float64) float64 {
	modes, err := montana.Mode(values)
	if err == nil && len(modes) > 0 {
		return modes[0]
	}
	min, _ := montana.Min(values)
	return min
}

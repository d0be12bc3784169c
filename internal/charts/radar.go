package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/types"
)

// RadarColumns and RadarLabels define the radar spokes
var (
	RadarColumns = []string{types.ColGasConsumption, types.ColOilConsumption, types.ColCoalConsumption}
	RadarLabels  = []string{"Gas", "Oil", "Coal"}
)

// RadarSince keeps rows with Year strictly after this value
const RadarSince = 2000

const radarTitle = "Europe Total Consumption (log) Radar By Fuel Type (2000-2021)"

// RadarOptions returns the 6x6 inch defaults for the radar image
func RadarOptions() Options {
	return Options{
		Title:  radarTitle,
		Width:  6 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    100,
		Format: "png",
	}
}

// RenderRadar draws log(1+total) EU consumption per fuel type since 2000
// as a filled radar polygon.
func RenderRadar(w io.Writer, records []types.Record, o Options) error {
	keep := func(r *types.Record) bool {
		return r.EuroBloc == types.BlocEU && r.Year > RadarSince
	}
	values := stats.Log1pSums(records, keep, RadarColumns)

	p, err := radarPlot(o.Title, values, RadarLabels, color.NRGBA{G: 128, A: 128})
	if err != nil {
		return err
	}

	cw, err := newCanvas(o)
	if err != nil {
		return err
	}
	c := draw.Canvas{Canvas: cw, Rectangle: vg.Rectangle{Max: vg.Point{X: o.Width, Y: o.Height}}}
	fillBackground(c, color.White)
	p.Draw(c)

	if _, err := cw.WriteTo(w); err != nil {
		return fmt.Errorf("encoding %s: %w", o.Format, err)
	}
	return nil
}

// radarPlot places one spoke per value, evenly spaced starting at 3
// o'clock, with values scaled to the largest one.
func radarPlot(title string, values []float64, labels []string, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	n := len(values)
	maxV := 0.0
	for _, v := range values {
		maxV = math.Max(maxV, v)
	}

	angle := func(i int) float64 { return 2 * math.Pi * float64(i) / float64(n) }

	// Reference rings at quarter steps.
	for _, frac := range []float64{0.25, 0.5, 0.75, 1} {
		ring := make(plotter.XYs, 0, 65)
		for k := 0; k <= 64; k++ {
			a := 2 * math.Pi * float64(k) / 64
			ring = append(ring, plotter.XY{X: frac * math.Cos(a), Y: frac * math.Sin(a)})
		}
		l, err := plotter.NewLine(ring)
		if err != nil {
			return nil, err
		}
		l.Color = color.Gray{Y: 200}
		p.Add(l)
	}

	poly := make(plotter.XYs, n)
	spokeLabels := plotter.XYLabels{XYs: make(plotter.XYs, n), Labels: make([]string, n)}
	for i := 0; i < n; i++ {
		a := angle(i)
		spoke, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: math.Cos(a), Y: math.Sin(a)}})
		if err != nil {
			return nil, err
		}
		spoke.Color = color.Gray{Y: 160}
		p.Add(spoke)

		r := 0.0
		if maxV > 0 {
			r = values[i] / maxV
		}
		poly[i] = plotter.XY{X: r * math.Cos(a), Y: r * math.Sin(a)}
		spokeLabels.XYs[i] = plotter.XY{X: 1.15 * math.Cos(a), Y: 1.15 * math.Sin(a)}
		if i < len(labels) {
			spokeLabels.Labels[i] = fmt.Sprintf("%s (%.1f)", labels[i], values[i])
		}
	}

	if n >= 3 {
		shape, err := plotter.NewPolygon(poly)
		if err != nil {
			return nil, err
		}
		shape.Color = fill
		shape.LineStyle.Color = fill
		p.Add(shape)
	}

	lbls, err := plotter.NewLabels(spokeLabels)
	if err != nil {
		return nil, err
	}
	p.Add(lbls)

	p.X.Min, p.X.Max = -1.4, 1.4
	p.Y.Min, p.Y.Max = -1.4, 1.4
	return p, nil
}

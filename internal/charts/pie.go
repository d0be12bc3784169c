package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/types"
)

// PieBlocs are the slices of the gas pie charts, in drawing order
var PieBlocs = []string{string(types.BlocEU), string(types.BlocRussia), string(types.BlocUkraine)}

// pieExplode pulls each slice away from the centre by a fraction of the radius
var pieExplode = []float64{0, 0, 0.2}

// pieExtent is the half-width of the pie's data range; the radius is 1.
const pieExtent = 1.45

// PieChart draws wedges proportional to Values centred on the data origin.
type PieChart struct {
	Values  []float64
	Labels  []string
	Colors  []color.Color
	Explode []float64
	// Format renders the percentage shown inside each wedge
	Format string
}

var _ plot.Plotter = (*PieChart)(nil)
var _ plot.DataRanger = (*PieChart)(nil)

// DataRange implements plot.DataRanger
func (pc *PieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -pieExtent, pieExtent, -pieExtent, pieExtent
}

// Plot implements plot.Plotter. Wedges start at 3 o'clock and run
// counter-clockwise.
func (pc *PieChart) Plot(c draw.Canvas, plt *plot.Plot) {
	var total float64
	for _, v := range pc.Values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}

	trX, trY := plt.Transforms(&c)
	center := vg.Point{X: trX(0), Y: trY(0)}
	radius := trX(1) - center.X
	if ry := trY(1) - center.Y; ry < radius {
		radius = ry
	}

	sty := textStyle(radius / 9)
	start := 0.0
	for i, v := range pc.Values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		mid := start + sweep/2
		dir := vg.Point{X: vg.Length(math.Cos(mid)), Y: vg.Length(math.Sin(mid))}

		o := center
		if i < len(pc.Explode) {
			o = o.Add(dir.Scale(radius * vg.Length(pc.Explode[i])))
		}

		var path vg.Path
		path.Move(o)
		path.Line(vg.Point{
			X: o.X + radius*vg.Length(math.Cos(start)),
			Y: o.Y + radius*vg.Length(math.Sin(start)),
		})
		path.Arc(o, radius, start, sweep)
		path.Close()

		c.SetColor(pc.color(i))
		c.Fill(path)

		pct := fmt.Sprintf(pc.Format, 100*v/total)
		c.FillText(sty, o.Add(dir.Scale(radius*0.6)), pct)
		if i < len(pc.Labels) {
			c.FillText(sty, o.Add(dir.Scale(radius*1.18)), pc.Labels[i])
		}
		start += sweep
	}
}

func (pc *PieChart) color(i int) color.Color {
	if i < len(pc.Colors) {
		return pc.Colors[i]
	}
	return plotutil.Color(i)
}

// swatch is a filled-square legend thumbnail
type swatch struct {
	color color.Color
}

// Thumbnail implements plot.Thumbnailer
func (s swatch) Thumbnail(c *draw.Canvas) {
	c.SetColor(s.color)
	c.Fill(c.Rectangle.Path())
}

// euroGasPie plots the summed column for EU, Russia and Ukraine.
func euroGasPie(records []types.Record, column, title string) (*plot.Plot, error) {
	p := newPlot(title)
	p.HideAxes()
	p.Legend.Left = true

	groups := stats.SumBy(records, stats.ByLabel(types.ColEURU), stats.Column(column), PieBlocs)
	pie := &PieChart{Explode: pieExplode, Format: "%.0f%%"}
	for i, g := range groups {
		pie.Values = append(pie.Values, g.Value)
		pie.Labels = append(pie.Labels, g.Label)
		pie.Colors = append(pie.Colors, plotutil.Color(i))
		p.Legend.Add(g.Label, swatch{color: plotutil.Color(i)})
	}
	p.Add(pie)
	return p, nil
}

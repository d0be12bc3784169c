package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/types"
)

// EuropeCountries are plotted in the coal line charts
var EuropeCountries = []string{"Germany", "France", "United Kingdom", "Italy", "Russia", "Ukraine"}

const (
	lineYearMin  = 1992
	lineYearMax  = 2020
	pandemicYear = 2019
)

// europeCoalLines plots column over time for EuropeCountries with a dashed
// marker at the start of the pandemic.
func europeCoalLines(records []types.Record, column, title string) (*plot.Plot, error) {
	p := newPlot(title)
	p.X.Label.Text = types.ColYear
	p.Y.Label.Text = column

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, s := range stats.EntitySeries(records, EuropeCountries, stats.Column(column)) {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = pt.Value
			yMin = math.Min(yMin, pt.Value)
			yMax = math.Max(yMax, pt.Value)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.Entity, line)
	}

	if !math.IsInf(yMin, 0) {
		marker, err := plotter.NewLine(plotter.XYs{{X: pandemicYear, Y: yMin}, {X: pandemicYear, Y: yMax}})
		if err != nil {
			return nil, err
		}
		marker.Color = color.Black
		marker.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(marker)
		p.Legend.Add("Pandemic", marker)
	}

	p.Add(plotter.NewGrid())
	p.X.Min = lineYearMin
	p.X.Max = lineYearMax
	return p, nil
}

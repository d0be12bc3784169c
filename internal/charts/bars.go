package charts

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/types"
)

// BarYears are the years compared in the organization bar charts
var BarYears = []int{2010, 2013, 2016, 2019}

// regionBars plots mean total consumption and production per region as
// paired horizontal bars.
func regionBars(records []types.Record, rect vg.Rectangle) (*plot.Plot, error) {
	p := newPlot("Average Fossil Fuels Utilisation Across Regions")
	p.X.Label.Text = "Fuel Use"
	p.Y.Label.Text = "Regions"

	consumption := stats.MeanBy(records, stats.ByLabel(types.ColRegion), stats.TotalConsumption)
	production := stats.MeanBy(records, stats.ByLabel(types.ColRegion), stats.TotalProduction)
	if len(consumption) == 0 {
		return p, nil
	}

	// Two bars per category take 80% of the slot height.
	slot := rect.Size().Y * 0.7 / vg.Length(len(consumption))
	width := slot * 0.4

	names := make([]string, len(consumption))
	cv := make(plotter.Values, len(consumption))
	pv := make(plotter.Values, len(production))
	for i := range consumption {
		names[i] = consumption[i].Label
		cv[i] = consumption[i].Value
		pv[i] = production[i].Value
	}

	cb, err := plotter.NewBarChart(cv, width)
	if err != nil {
		return nil, err
	}
	cb.Horizontal = true
	cb.Offset = -width / 2
	cb.Color = plotutil.Color(0)
	cb.LineStyle.Width = 0

	pb, err := plotter.NewBarChart(pv, width)
	if err != nil {
		return nil, err
	}
	pb.Horizontal = true
	pb.Offset = width / 2
	pb.Color = plotutil.Color(1)
	pb.LineStyle.Width = 0

	p.Add(plotter.NewGrid(), cb, pb)
	p.Legend.Add("Consumption", cb)
	p.Legend.Add("Production", pb)
	p.NominalY(names...)
	return p, nil
}

// organizationBars plots the mean of column per organization, one bar per
// year in BarYears.
func organizationBars(records []types.Record, column, title string, rect vg.Rectangle) (*plot.Plot, error) {
	p := newPlot(title)
	p.X.Label.Text = types.ColOrganizations
	p.Y.Label.Text = column

	grid := stats.MeanByGroupAndYear(records, stats.ByLabel(types.ColOrganizations), stats.Column(column), BarYears)
	if len(grid.Groups) == 0 {
		return p, nil
	}

	slot := rect.Size().X * 0.7 / vg.Length(len(grid.Groups))
	width := slot / vg.Length(len(grid.Years)+1)

	for yi, year := range grid.Years {
		vals := make(plotter.Values, len(grid.Groups))
		for gi, v := range grid.Values[yi] {
			if math.IsNaN(v) {
				v = 0
			}
			vals[gi] = v
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, err
		}
		bars.Offset = (vg.Length(yi) - vg.Length(len(grid.Years)-1)/2) * width
		bars.Color = plotutil.Color(yi)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(strconv.Itoa(year), bars)
	}
	p.NominalX(grid.Groups...)
	return p, nil
}

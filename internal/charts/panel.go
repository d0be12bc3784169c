// Package charts renders the fossil infographic panel with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/untoldecay/fossiluse/internal/types"
)

// Options controls the rendered image
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
	// Format is png, jpg, svg, pdf, eps or tiff.
	Format string
}

// DefaultTitle is the super title of the poster
const DefaultTitle = "Infographics Plots - 22084758"

// DefaultOptions matches the 30x30 inch poster layout
func DefaultOptions() Options {
	return Options{
		Title:  DefaultTitle,
		Width:  30 * vg.Inch,
		Height: 30 * vg.Inch,
		DPI:    100,
		Format: "png",
	}
}

// FormatFromPath picks an image format from a file extension, defaulting to png.
func FormatFromPath(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png", "jpg", "jpeg", "svg", "pdf", "eps", "tif", "tiff":
		return ext
	}
	return "png"
}

func newCanvas(o Options) (vg.CanvasWriterTo, error) {
	switch o.Format {
	case "", "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(o.Width, o.Height), vgimg.UseDPI(o.DPI))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(o.Width, o.Height), vgimg.UseDPI(o.DPI))}, nil
	default:
		c, err := draw.NewFormattedCanvas(o.Width, o.Height, o.Format)
		if err != nil {
			return nil, fmt.Errorf("creating %s canvas: %w", o.Format, err)
		}
		return c, nil
	}
}

// Panel positions, top to bottom.
const (
	panelRegions = iota
	panelCoalProduction
	panelCoalConsumption
	panelOilProduction
	panelOilConsumption
	panelGasProduction
	panelGasConsumption
	panelCount
)

// rowHeights are the relative heights of the four grid rows
var rowHeights = []float64{1.5, 1.5, 1.5, 2}

// RenderPanel draws the seven-chart infographic for records and writes the
// encoded image to w.
func RenderPanel(w io.Writer, records []types.Record, o Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid image size %vx%v", o.Width, o.Height)
	}
	cw, err := newCanvas(o)
	if err != nil {
		return err
	}
	full := draw.Canvas{Canvas: cw, Rectangle: vg.Rectangle{Max: vg.Point{X: o.Width, Y: o.Height}}}
	fillBackground(full, color.White)

	titleBand := o.Height * 0.05
	drawTitle(full, o.Title, titleBand)

	area := vg.Rectangle{
		Min: vg.Point{X: o.Width * 0.02, Y: o.Height * 0.02},
		Max: vg.Point{X: o.Width * 0.98, Y: o.Height - titleBand},
	}
	rects := panelRects(area, o.Width*0.04, o.Height*0.025)

	plots, err := buildPanels(records, rects)
	if err != nil {
		return err
	}
	for i, p := range plots {
		p.Draw(draw.Canvas{Canvas: cw, Rectangle: rects[i]})
	}

	if _, err := cw.WriteTo(w); err != nil {
		return fmt.Errorf("encoding %s: %w", o.Format, err)
	}
	return nil
}

func buildPanels(records []types.Record, rects []vg.Rectangle) ([]*plot.Plot, error) {
	var (
		plots = make([]*plot.Plot, panelCount)
		err   error
	)
	plots[panelRegions], err = regionBars(records, rects[panelRegions])
	if err != nil {
		return nil, fmt.Errorf("region chart: %w", err)
	}
	plots[panelCoalProduction], err = europeCoalLines(records, types.ColCoalProduction, "Coal Production Across Europe")
	if err != nil {
		return nil, fmt.Errorf("coal production chart: %w", err)
	}
	plots[panelCoalConsumption], err = europeCoalLines(records, types.ColCoalConsumption, "Coal Consumption Across Europe")
	if err != nil {
		return nil, fmt.Errorf("coal consumption chart: %w", err)
	}
	plots[panelOilProduction], err = organizationBars(records, types.ColOilProduction, "Crude Oil Production By Organization", rects[panelOilProduction])
	if err != nil {
		return nil, fmt.Errorf("oil production chart: %w", err)
	}
	plots[panelOilConsumption], err = organizationBars(records, types.ColOilConsumption, "Crude Oil Consumption By Organization", rects[panelOilConsumption])
	if err != nil {
		return nil, fmt.Errorf("oil consumption chart: %w", err)
	}
	plots[panelGasProduction], err = euroGasPie(records, types.ColGasProduction, "Natural Gas Production in Europe (1980-2021)")
	if err != nil {
		return nil, fmt.Errorf("gas production chart: %w", err)
	}
	plots[panelGasConsumption], err = euroGasPie(records, types.ColGasConsumption, "Natural Gas Consumption in Europe (1980-2021)")
	if err != nil {
		return nil, fmt.Errorf("gas consumption chart: %w", err)
	}
	return plots, nil
}

// panelRects lays out a 4x2 grid inside area. The first row is a single
// panel spanning both columns; the others hold two panels each.
func panelRects(area vg.Rectangle, padX, padY vg.Length) []vg.Rectangle {
	var total float64
	for _, h := range rowHeights {
		total += h
	}
	avail := area.Size().Y - padY*vg.Length(len(rowHeights)-1)
	colW := (area.Size().X - padX) / 2

	rects := make([]vg.Rectangle, 0, panelCount)
	top := area.Max.Y
	for row, h := range rowHeights {
		height := avail * vg.Length(h/total)
		bottom := top - height
		if row == 0 {
			rects = append(rects, vg.Rectangle{
				Min: vg.Point{X: area.Min.X, Y: bottom},
				Max: vg.Point{X: area.Max.X, Y: top},
			})
		} else {
			rects = append(rects,
				vg.Rectangle{
					Min: vg.Point{X: area.Min.X, Y: bottom},
					Max: vg.Point{X: area.Min.X + colW, Y: top},
				},
				vg.Rectangle{
					Min: vg.Point{X: area.Max.X - colW, Y: bottom},
					Max: vg.Point{X: area.Max.X, Y: top},
				})
		}
		top = bottom - padY
	}
	return rects
}

func fillBackground(c draw.Canvas, col color.Color) {
	c.SetColor(col)
	c.Fill(c.Rectangle.Path())
}

func drawTitle(c draw.Canvas, title string, band vg.Length) {
	if title == "" {
		return
	}
	sty := textStyle(band * 0.5)
	sty.YAlign = text.YCenter
	c.FillText(sty, vg.Point{X: c.Max.X / 2, Y: c.Max.Y - band/2}, title)
}

// textStyle is the default plot text style at the given size
func textStyle(size vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(6)
	p.Legend.Top = true
	return p
}

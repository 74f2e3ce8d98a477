package render

import (
	"bytes"
	"fmt"
	"image/color"
	"powerdash/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	staticWidth  = 10 * vg.Inch
	staticHeight = 8 * vg.Inch
	minBarWidth  = vg.Length(0.25)
	maxBarWidth  = vg.Length(36)
)

// matplotlib's default C0 blue at alpha 0.7
var barColor = color.NRGBA{R: 31, G: 119, B: 180, A: 178}

// tariffBars places every bar at the index of its energy type, categories in
// order of first appearance. Layer k holds the k-th bar of each category and
// zero where a category has fewer bars, so layers overlay like a categorical axis.
func tariffBars(table *models.Table) ([]plotter.Values, []plot.Tick) {
	index := make(map[string]int)
	ticks := make([]plot.Tick, 0)
	groups := make([][]float64, 0)
	for _, row := range table.Rows {
		if !row.HasTariff() {
			continue
		}
		x, ok := index[row.EnergySourceLevel2]
		if !ok {
			x = len(ticks)
			index[row.EnergySourceLevel2] = x
			ticks = append(ticks, plot.Tick{Value: float64(x), Label: row.EnergySourceLevel2})
			groups = append(groups, nil)
		}
		groups[x] = append(groups[x], *row.Tariff)
	}

	layers := make([]plotter.Values, 0)
	for x, group := range groups {
		for k, value := range group {
			if k == len(layers) {
				layers = append(layers, make(plotter.Values, len(groups)))
			}
			layers[k][x] = value
		}
	}
	return layers, ticks
}

func TariffPlot(table *models.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = tariffTitle
	p.X.Label.Text = energyTypeLabel
	p.Y.Label.Text = tariffLabel

	layers, ticks := tariffBars(table)
	if len(layers) == 0 {
		return p, nil
	}
	width := staticWidth * 0.8 / vg.Length(len(ticks))
	if width < minBarWidth {
		width = minBarWidth
	}
	if width > maxBarWidth {
		width = maxBarWidth
	}
	for _, values := range layers {
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, fmt.Errorf("failed to create tariff bars: %w", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return p, nil
}

// TariffPNG renders the static tariff chart at 10x8 inches
func TariffPNG(table *models.Table) ([]byte, error) {
	p, err := TariffPlot(table)
	if err != nil {
		return nil, err
	}
	return encodePNG(p, staticWidth, staticHeight)
}

func encodePNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

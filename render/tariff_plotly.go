package render

import "powerdash/models"

const (
	tariffTitle     = "Tariff for each energy type"
	energyTypeLabel = "Energy type"
	tariffLabel     = "Tariff in CHF"
	traceBar        = "bar"
	barHover        = energyTypeLabel + "=%{x}<br>" + tariffLabel + "=%{y}<extra></extra>"
)

// TariffFigure draws one bar per plant with a tariff, keyed by its energy type
func TariffFigure(table *models.Table) *Figure {
	x := make([]string, 0, table.Len())
	y := make([]float64, 0, table.Len())
	for _, row := range table.Rows {
		if !row.HasTariff() {
			continue
		}
		x = append(x, row.EnergySourceLevel2)
		y = append(y, *row.Tariff)
	}
	trace := &BarTrace{
		Type: traceBar,
		X:    x,
		Y:    y,
		Marker: &Marker{
			Opacity: 0.5,
			Line:    &MarkerLine{Width: 0},
		},
		HoverTemplate: barHover,
	}
	return &Figure{
		Data: []interface{}{trace},
		Layout: &Layout{
			Title:  &Title{Text: tariffTitle, Font: &Font{Size: 22}},
			Width:  750,
			Height: 600,
			XAxis:  &Axis{Title: &Title{Text: energyTypeLabel}},
			YAxis:  &Axis{Title: &Title{Text: tariffLabel}},
		},
	}
}

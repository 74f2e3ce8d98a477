package render

import (
	"encoding/json"
	"powerdash/metrics/counters"
	"powerdash/models"
)

const (
	ChartMap = "map"

	mapTitle          = "Have you ever wondered which kanton has the highest electrical capacity? Of course you have, today you finally find out!"
	capacityLabel     = "Electrical Capacity"
	cantonLabel       = "Name of Kanton"
	traceChoropleth   = "choroplethmapbox"
	mapHoverTemplate  = cantonLabel + "=%{location}<br>" + capacityLabel + "=%{z}<extra></extra>"
	defaultMapStyle   = "carto-positron"
	defaultColorScale = "Earth"
)

// MapOptions are the fixed view parameters of the capacity map, tuned for Switzerland
type MapOptions struct {
	Zoom            float64
	CenterLat       float64
	CenterLon       float64
	Opacity         float64
	Width           int
	Height          int
	Style           string
	ColorScale      string
	FixedColorRange bool
	ColorMin        float64
	ColorMax        float64
}

func DefaultMapOptions() MapOptions {
	return MapOptions{
		Zoom:       7,
		CenterLat:  46.84,
		CenterLon:  8.34,
		Opacity:    0.2,
		Width:      1200,
		Height:     900,
		Style:      defaultMapStyle,
		ColorScale: defaultColorScale,
		ColorMin:   1,
		ColorMax:   2,
	}
}

// ColorRange is the min and max of values unless the options pin a fixed range
func ColorRange(values []float64, opts MapOptions) (float64, float64) {
	if opts.FixedColorRange {
		return opts.ColorMin, opts.ColorMax
	}
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// Choropleth colors each row's canton polygon by the row's electrical capacity.
// Rows are not aggregated: a canton with several plants gets one location per plant.
func Choropleth(table *models.Table, geojson json.RawMessage, featureIdKey string, opts MapOptions) *Figure {
	locations := make([]string, table.Len())
	z := make([]float64, table.Len())
	for i, row := range table.Rows {
		locations[i] = row.CantonName
		z[i] = row.ElectricalCapacity
	}
	zMin, zMax := ColorRange(z, opts)
	if opts.Style == "" {
		opts.Style = defaultMapStyle
	}
	if opts.ColorScale == "" {
		opts.ColorScale = defaultColorScale
	}

	trace := &ChoroplethMapboxTrace{
		Type:          traceChoropleth,
		GeoJSON:       geojson,
		FeatureIdKey:  featureIdKey,
		Locations:     locations,
		Z:             z,
		ZMin:          zMin,
		ZMax:          zMax,
		ColorScale:    opts.ColorScale,
		Marker:        &Marker{Opacity: opts.Opacity},
		ColorBar:      &ColorBar{Title: &Title{Text: capacityLabel}},
		HoverTemplate: mapHoverTemplate,
	}
	counters.CountRender(ChartMap, string(BackendPlotly))
	return &Figure{
		Data: []interface{}{trace},
		Layout: &Layout{
			Title:  &Title{Text: mapTitle},
			Width:  opts.Width,
			Height: opts.Height,
			Mapbox: &Mapbox{
				Style:  opts.Style,
				Zoom:   opts.Zoom,
				Center: LatLon{Lat: opts.CenterLat, Lon: opts.CenterLon},
			},
			Margin: &Margin{L: 0, R: 0, T: 60, B: 0},
		},
	}
}

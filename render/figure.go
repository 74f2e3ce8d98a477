package render

import "encoding/json"

// Figure is a Plotly figure; the page passes it to Plotly.newPlot as is
type Figure struct {
	Data   []interface{} `json:"data"`
	Layout *Layout       `json:"layout"`
}

type Layout struct {
	Title  *Title  `json:"title,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	XAxis  *Axis   `json:"xaxis,omitempty"`
	YAxis  *Axis   `json:"yaxis,omitempty"`
	Mapbox *Mapbox `json:"mapbox,omitempty"`
	Margin *Margin `json:"margin,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

type Font struct {
	Size int `json:"size,omitempty"`
}

type Axis struct {
	Title *Title `json:"title,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Mapbox struct {
	Style  string  `json:"style"`
	Zoom   float64 `json:"zoom"`
	Center LatLon  `json:"center"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

type ChoroplethMapboxTrace struct {
	Type          string          `json:"type"`
	GeoJSON       json.RawMessage `json:"geojson"`
	FeatureIdKey  string          `json:"featureidkey"`
	Locations     []string        `json:"locations"`
	Z             []float64       `json:"z"`
	ZMin          float64         `json:"zmin"`
	ZMax          float64         `json:"zmax"`
	ColorScale    string          `json:"colorscale"`
	Marker        *Marker         `json:"marker,omitempty"`
	ColorBar      *ColorBar       `json:"colorbar,omitempty"`
	HoverTemplate string          `json:"hovertemplate,omitempty"`
}

type Marker struct {
	Opacity float64     `json:"opacity"`
	Line    *MarkerLine `json:"line,omitempty"`
}

type MarkerLine struct {
	Width float64 `json:"width"`
}

type BarTrace struct {
	Type          string    `json:"type"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Marker        *Marker   `json:"marker,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
}

package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"powerdash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const boundaryDocument = `{"type":"FeatureCollection","features":[]}`

func price(v float64) *float64 {
	return &v
}

func sampleTable() *models.Table {
	table := &models.Table{
		Columns: []string{models.ColumnCanton, models.ColumnEnergySourceLevel2, models.ColumnElectricalCapacity, models.ColumnTariff},
		Rows: []*models.PowerPlant{
			{Canton: "ZH", EnergySourceLevel2: "Hydro", ElectricalCapacity: 5, Tariff: price(10)},
			{Canton: "BE", EnergySourceLevel2: "Solar", ElectricalCapacity: 3, Tariff: price(20)},
			{Canton: "ZH", EnergySourceLevel2: "Hydro", ElectricalCapacity: 0.5, Tariff: price(12)},
			{Canton: "GE", EnergySourceLevel2: "Wind", ElectricalCapacity: 7},
		},
	}
	models.JoinCantonNames(table)
	return table
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"Matplotlib", "Matplotlib-style"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, BackendMatplotlib, b)
	}
	b, err := ParseBackend("Plotly-style")
	require.NoError(t, err)
	assert.Equal(t, BackendPlotly, b)

	_, err = ParseBackend("plotly")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestColorRange(t *testing.T) {
	opts := DefaultMapOptions()

	lo, hi := ColorRange([]float64{3, 0.5, 7}, opts)
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 7.0, hi)

	lo, hi = ColorRange([]float64{4, 4}, opts)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi = ColorRange(nil, opts)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	opts.FixedColorRange = true
	lo, hi = ColorRange([]float64{3, 0.5, 7}, opts)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestChoropleth(t *testing.T) {
	figure := Choropleth(sampleTable(), json.RawMessage(boundaryDocument), "properties.kan_name", DefaultMapOptions())

	require.Len(t, figure.Data, 1)
	trace, ok := figure.Data[0].(*ChoroplethMapboxTrace)
	require.True(t, ok)
	assert.Equal(t, "choroplethmapbox", trace.Type)
	assert.Equal(t, []string{"Zürich", "Bern", "Zürich", "Genève"}, trace.Locations)
	assert.Equal(t, []float64{5, 3, 0.5, 7}, trace.Z)
	assert.Equal(t, 0.5, trace.ZMin)
	assert.Equal(t, 7.0, trace.ZMax)
	assert.Equal(t, "Earth", trace.ColorScale)
	assert.Equal(t, 0.2, trace.Marker.Opacity)
	assert.Equal(t, "properties.kan_name", trace.FeatureIdKey)

	layout := figure.Layout
	assert.Equal(t, 1200, layout.Width)
	assert.Equal(t, 900, layout.Height)
	assert.Equal(t, "carto-positron", layout.Mapbox.Style)
	assert.Equal(t, 7.0, layout.Mapbox.Zoom)
	assert.Equal(t, LatLon{Lat: 46.84, Lon: 8.34}, layout.Mapbox.Center)
}

func TestChoroplethJSON(t *testing.T) {
	figure := Choropleth(sampleTable(), json.RawMessage(boundaryDocument), "properties.kan_name", DefaultMapOptions())
	data, err := json.Marshal(figure)
	require.NoError(t, err)

	var decoded struct {
		Data []struct {
			GeoJSON map[string]interface{} `json:"geojson"`
			Marker  struct {
				Opacity float64 `json:"opacity"`
			} `json:"marker"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Data[0].GeoJSON["type"])
	assert.Equal(t, 0.2, decoded.Data[0].Marker.Opacity)
}

func TestTariffFigureSkipsMissingTariffs(t *testing.T) {
	figure := TariffFigure(sampleTable())

	trace, ok := figure.Data[0].(*BarTrace)
	require.True(t, ok)
	assert.Equal(t, "bar", trace.Type)
	assert.Equal(t, []string{"Hydro", "Solar", "Hydro"}, trace.X)
	assert.Equal(t, []float64{10, 20, 12}, trace.Y)
	assert.Equal(t, 0.5, trace.Marker.Opacity)
	assert.Equal(t, 22, figure.Layout.Title.Font.Size)
	assert.Equal(t, 750, figure.Layout.Width)
	assert.Equal(t, 600, figure.Layout.Height)
}

func TestTariffBarsShareCategoryPosition(t *testing.T) {
	layers, ticks := tariffBars(sampleTable())

	require.Len(t, ticks, 2)
	assert.Equal(t, plot.Tick{Value: 0, Label: "Hydro"}, ticks[0])
	assert.Equal(t, plot.Tick{Value: 1, Label: "Solar"}, ticks[1])

	require.Len(t, layers, 2)
	assert.Equal(t, []float64{10, 20}, []float64(layers[0]))
	assert.Equal(t, []float64{12, 0}, []float64(layers[1]))
}

func TestTariffBarsFollowFirstAppearance(t *testing.T) {
	table := &models.Table{Rows: []*models.PowerPlant{
		{EnergySourceLevel2: "Wind", Tariff: price(8)},
		{EnergySourceLevel2: "Bioenergy", Tariff: price(15)},
		{EnergySourceLevel2: "Wind", Tariff: price(9)},
		{EnergySourceLevel2: "Wind", Tariff: price(7)},
	}}
	layers, ticks := tariffBars(table)

	require.Len(t, ticks, 2)
	assert.Equal(t, "Wind", ticks[0].Label)
	assert.Equal(t, "Bioenergy", ticks[1].Label)
	require.Len(t, layers, 3)
	assert.Equal(t, []float64{8, 15}, []float64(layers[0]))
	assert.Equal(t, []float64{9, 0}, []float64(layers[1]))
	assert.Equal(t, []float64{7, 0}, []float64(layers[2]))
}

func TestTariffPNG(t *testing.T) {
	png, err := TariffPNG(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))

	empty, err := TariffPNG(&models.Table{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, pngSignature))
}

func TestTariffSelectsOneBackend(t *testing.T) {
	table := sampleTable()

	plotly, err := Tariff(table, BackendPlotly)
	require.NoError(t, err)
	assert.Equal(t, BackendPlotly, plotly.Backend)
	assert.NotNil(t, plotly.Figure)
	assert.Empty(t, plotly.Image)
	assert.Nil(t, plotly.PNG())

	static, err := Tariff(table, BackendMatplotlib)
	require.NoError(t, err)
	assert.Equal(t, BackendMatplotlib, static.Backend)
	assert.Nil(t, static.Figure)
	assert.Contains(t, static.Image, "data:image/png;base64,")
	assert.True(t, bytes.HasPrefix(static.PNG(), pngSignature))

	_, err = Tariff(table, Backend("Bokeh"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

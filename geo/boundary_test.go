package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cantonsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"kan_name": "Zürich", "kan_code": "1"},
     "geometry": {"type": "Polygon", "coordinates": [[[8.4, 47.2], [8.9, 47.2], [8.9, 47.7], [8.4, 47.7], [8.4, 47.2]]]}},
    {"type": "Feature", "properties": {"kan_name": ["Bern"], "kan_code": "2"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[7.0, 46.3], [8.4, 46.3], [8.4, 47.3], [7.0, 47.3], [7.0, 46.3]]]]}}
  ]
}`

func TestParseBoundaries(t *testing.T) {
	b, err := ParseBoundaries([]byte(cantonsGeoJSON), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultFeatureKey, b.Key())
	assert.Equal(t, "properties.kan_name", b.FeatureIdKey())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"Bern", "Zürich"}, b.Names())
	assert.True(t, b.Has("Zürich"))
	assert.False(t, b.Has("zürich"))
	assert.JSONEq(t, cantonsGeoJSON, string(b.Document()))
}

func TestBoundariesMissing(t *testing.T) {
	b, err := ParseBoundaries([]byte(cantonsGeoJSON), "kan_name")
	require.NoError(t, err)

	missing := b.Missing([]string{"Zürich", "nan", "Bern", "nan", "Uri"})
	assert.Equal(t, []string{"Uri", "nan"}, missing)
	assert.Empty(t, b.Missing([]string{"Bern"}))
}

func TestBoundariesCenter(t *testing.T) {
	b, err := ParseBoundaries([]byte(cantonsGeoJSON), "kan_name")
	require.NoError(t, err)

	lat, lon := b.Center()
	assert.InDelta(t, 47.0, lat, 1e-9)
	assert.InDelta(t, 7.95, lon, 1e-9)
}

func TestParseBoundariesInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":    "canton;polygon",
		"no features": `{"type": "FeatureCollection", "features": []}`,
		"no key":      `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"name": "Uri"}, "geometry": null}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBoundaries([]byte(body), "kan_name")
			assert.Error(t, err)
		})
	}
}

func TestLoadBoundaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cantons.geojson")
	require.NoError(t, os.WriteFile(path, []byte(cantonsGeoJSON), 0o600))

	b, err := LoadBoundaries(path, "kan_name")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	_, err = LoadBoundaries(filepath.Join(t.TempDir(), "absent.geojson"), "kan_name")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

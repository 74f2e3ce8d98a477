package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8501", conf.Listen.Port)
	assert.Equal(t, "./data/renewable_power_plants_CH.csv", conf.Data.PlantsPath)
	assert.Equal(t, "./data/georef-switzerland-kanton.geojson", conf.Data.BoundariesPath)
	assert.Equal(t, "kan_name", conf.Data.FeatureKey)
	assert.Equal(t, 8, conf.Cache.Size)
	assert.Equal(t, 30*time.Minute, conf.Cache.TTL)
	assert.Equal(t, 7.0, conf.Map.Zoom)
	assert.Equal(t, 46.84, conf.Map.CenterLat)
	assert.Equal(t, 8.34, conf.Map.CenterLon)
	assert.False(t, conf.Map.FixedColorRange)
	assert.False(t, conf.Mongo.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
is_debug: true
listen:
  port: "9000"
data:
  plants_path: /srv/plants.csv
cache:
  size: 2
  ttl: 5s
map:
  fixed_color_range: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.True(t, conf.IsDebug)
	assert.Equal(t, "9000", conf.Listen.Port)
	assert.Equal(t, "/srv/plants.csv", conf.Data.PlantsPath)
	assert.Equal(t, 2, conf.Cache.Size)
	assert.Equal(t, 5*time.Second, conf.Cache.TTL)
	assert.True(t, conf.Map.FixedColorRange)
	assert.Equal(t, 1.0, conf.Map.ColorMin)
	assert.Equal(t, 2.0, conf.Map.ColorMax)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

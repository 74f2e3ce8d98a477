package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"powerdash/utility"
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const DefaultFeatureKey = "kan_name"

// Boundaries holds the canton polygons indexed by the join property
type Boundaries struct {
	key      string
	document json.RawMessage
	features map[string]*geojson.Feature
	bounds   *geom.Bounds
}

func LoadBoundaries(path, key string) (*Boundaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open boundaries: %w", err)
	}
	boundaries, err := ParseBoundaries(data, key)
	if err != nil {
		return nil, fmt.Errorf("read boundaries %s: %w", path, err)
	}
	return boundaries, nil
}

func ParseBoundaries(data []byte, key string) (*Boundaries, error) {
	if key == "" {
		key = DefaultFeatureKey
	}
	var collection geojson.FeatureCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	if len(collection.Features) == 0 {
		return nil, utility.Err("geojson has no features")
	}
	b := &Boundaries{
		key:      key,
		document: json.RawMessage(data),
		features: make(map[string]*geojson.Feature, len(collection.Features)),
		bounds:   geom.NewBounds(geom.XY),
	}
	for i, feature := range collection.Features {
		name, ok := propertyString(feature.Properties[key])
		if !ok {
			return nil, utility.Errf("feature %d has no %q property", i, key)
		}
		b.features[name] = feature
		if feature.Geometry != nil {
			b.bounds.Extend(feature.Geometry)
		}
	}
	return b, nil
}

// opendatasoft exports sometimes wrap single values in a list
func propertyString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []interface{}:
		if len(v) == 1 {
			s, ok := v[0].(string)
			return s, ok
		}
	}
	return "", false
}

func (b *Boundaries) Key() string {
	return b.key
}

// FeatureIdKey is the property path used by the map to match locations
func (b *Boundaries) FeatureIdKey() string {
	return "properties." + b.key
}

// Document is the GeoJSON as read, embedded verbatim into map figures
func (b *Boundaries) Document() json.RawMessage {
	return b.document
}

func (b *Boundaries) Len() int {
	return len(b.features)
}

func (b *Boundaries) Names() []string {
	names := make([]string, 0, len(b.features))
	for name := range b.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Boundaries) Has(name string) bool {
	_, ok := b.features[name]
	return ok
}

// Missing lists the names without a polygon; those rows render as gaps on the map
func (b *Boundaries) Missing(names []string) []string {
	missing := make([]string, 0)
	for _, name := range utility.SortedUnique(names) {
		if !b.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Center is the middle of the bounding box of all features as lat, lon
func (b *Boundaries) Center() (lat, lon float64) {
	if b.bounds.IsEmpty() {
		return 0, 0
	}
	lon = (b.bounds.Min(0) + b.bounds.Max(0)) / 2
	lat = (b.bounds.Min(1) + b.bounds.Max(1)) / 2
	return lat, lon
}

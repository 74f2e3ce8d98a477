package dashboard

import (
	"fmt"
	"powerdash/geo"
	"powerdash/internal"
	"powerdash/internal/config"
	"powerdash/loader"
	"powerdash/metrics/counters"
	"powerdash/models"
	"powerdash/render"
	"strings"
	"sync"
	"time"
)

// EventListener is notified about dataset loads, e.g. the telegram bot
type EventListener interface {
	OnDatasetLoaded(summary *Summary)
	OnDatasetFailed(path string, err error)
}

// Summary describes the dataset currently served
type Summary struct {
	Path        string    `json:"path"`
	Rows        int       `json:"rows"`
	EnergyTypes []string  `json:"energy_types"`
	MapGaps     []string  `json:"map_gaps"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type Dashboard struct {
	plantsPath string
	loader     *loader.Loader
	boundaries *geo.Boundaries
	mapOptions render.MapOptions
	logger     internal.LogHandler
	mutex      sync.RWMutex
	listeners  []EventListener
	summary    *Summary
}

func MapOptions(conf *config.Config) render.MapOptions {
	return render.MapOptions{
		Zoom:            conf.Map.Zoom,
		CenterLat:       conf.Map.CenterLat,
		CenterLon:       conf.Map.CenterLon,
		Opacity:         conf.Map.Opacity,
		Width:           conf.Map.Width,
		Height:          conf.Map.Height,
		Style:           conf.Map.Style,
		ColorScale:      conf.Map.ColorScale,
		FixedColorRange: conf.Map.FixedColorRange,
		ColorMin:        conf.Map.ColorMin,
		ColorMax:        conf.Map.ColorMax,
	}
}

// New loads the boundaries and the plant dataset; both must be readable
func New(conf *config.Config, logger internal.LogHandler) (*Dashboard, error) {
	if logger == nil {
		logger = internal.Discard
	}
	boundaries, err := geo.LoadBoundaries(conf.Data.BoundariesPath, conf.Data.FeatureKey)
	if err != nil {
		return nil, err
	}
	logger.FeatureEvent("boundaries", "", fmt.Sprintf("loaded %d features from %s", boundaries.Len(), conf.Data.BoundariesPath))

	plantLoader := loader.NewLoader(conf.Cache.Size, conf.Cache.TTL)
	plantLoader.SetLogger(logger)

	d := &Dashboard{
		plantsPath: conf.Data.PlantsPath,
		loader:     plantLoader,
		boundaries: boundaries,
		mapOptions: MapOptions(conf),
		logger:     logger,
	}
	if _, err = d.refreshSummary(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dashboard) AddEventListener(listener EventListener) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.listeners = append(d.listeners, listener)
}

func (d *Dashboard) eventListeners() []EventListener {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return append([]EventListener(nil), d.listeners...)
}

func (d *Dashboard) Boundaries() *geo.Boundaries {
	return d.boundaries
}

// WorkingTable is a deep copy of the cached dataset with canton names joined
func (d *Dashboard) WorkingTable() (*models.Table, error) {
	raw, err := d.loader.Load(d.plantsPath)
	if err != nil {
		return nil, err
	}
	table := raw.Clone()
	models.JoinCantonNames(table)
	return table, nil
}

func (d *Dashboard) Options() (*Options, error) {
	table, err := d.WorkingTable()
	if err != nil {
		return nil, err
	}
	return NewOptions(table), nil
}

// Render is a full pass over all controls
func (d *Dashboard) Render(selection Selection) (*View, error) {
	table, err := d.WorkingTable()
	if err != nil {
		return nil, err
	}
	view := &View{
		Selection: &selection,
		Options:   NewOptions(table),
	}
	if err = d.renderMap(view, table, selection.EnergyType); err != nil {
		return nil, err
	}
	if view.Tariff, err = render.Tariff(table, selection.Backend); err != nil {
		return nil, err
	}
	if selection.ShowTable {
		view.Table = NewTableView(table)
	}
	return view, nil
}

func (d *Dashboard) renderMap(view *View, table *models.Table, energyType string) error {
	filtered, err := Filter(table, energyType)
	if err != nil {
		return err
	}
	view.Map = render.Choropleth(filtered, d.boundaries.Document(), d.boundaries.FeatureIdKey(), d.mapOptions)
	view.MapGaps = d.boundaries.Missing(filtered.CantonNames())
	return nil
}

// MapView holds only the map of the table narrowed to energyType
func (d *Dashboard) MapView(energyType string) (*View, error) {
	table, err := d.WorkingTable()
	if err != nil {
		return nil, err
	}
	view := &View{}
	if err = d.renderMap(view, table, energyType); err != nil {
		return nil, err
	}
	return view, nil
}

// TariffPNG renders the static tariff chart of the working table
func (d *Dashboard) TariffPNG() ([]byte, error) {
	table, err := d.WorkingTable()
	if err != nil {
		return nil, err
	}
	return render.TariffPNG(table)
}

// Reload drops the cached dataset and reads it again
func (d *Dashboard) Reload() (*Summary, error) {
	d.loader.Invalidate(d.plantsPath)
	return d.refreshSummary()
}

func (d *Dashboard) Summary() *Summary {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.summary
}

func (d *Dashboard) refreshSummary() (*Summary, error) {
	table, err := d.WorkingTable()
	if err != nil {
		d.logger.Error(fmt.Sprintf("loading %s", d.plantsPath), err)
		for _, listener := range d.eventListeners() {
			listener.OnDatasetFailed(d.plantsPath, err)
		}
		return nil, err
	}
	summary := &Summary{
		Path:        d.plantsPath,
		Rows:        table.Len(),
		EnergyTypes: table.EnergyTypes(),
		MapGaps:     d.boundaries.Missing(table.CantonNames()),
		LoadedAt:    time.Now(),
	}
	counters.ObserveMapGaps(len(summary.MapGaps))
	if len(summary.MapGaps) > 0 {
		d.logger.Warn(fmt.Sprintf("no boundary for: %s", strings.Join(summary.MapGaps, ", ")))
	}
	d.mutex.Lock()
	d.summary = summary
	d.mutex.Unlock()
	for _, listener := range d.eventListeners() {
		listener.OnDatasetLoaded(summary)
	}
	return summary, nil
}

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"powerdash/internal"
	"powerdash/metrics/counters"
	"powerdash/models"
	"powerdash/utility"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheSize = 8
	DefaultCacheTTL  = 30 * time.Minute
)

// Loader reads plant datasets and memoizes them by path. Cached tables are
// shared between callers and must be cloned before modification.
type Loader struct {
	mutex  sync.Mutex
	cache  *expirable.LRU[string, *models.Table]
	parses atomic.Int64
	logger internal.LogHandler
}

func NewLoader(size int, ttl time.Duration) *Loader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Loader{
		cache:  expirable.NewLRU[string, *models.Table](size, nil, ttl),
		logger: internal.Discard,
	}
}

func (l *Loader) SetLogger(logger internal.LogHandler) {
	l.logger = logger
}

// Load returns the table for path, parsing the file only on a cache miss
func (l *Loader) Load(path string) (*models.Table, error) {
	if table, ok := l.cache.Get(path); ok {
		counters.CacheHit()
		return table, nil
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	// another caller may have filled the entry while we waited
	if table, ok := l.cache.Get(path); ok {
		counters.CacheHit()
		return table, nil
	}
	counters.CacheMiss()

	table, err := l.readFile(path)
	counters.ObserveParse(path, tableLen(table), err)
	if err != nil {
		return nil, err
	}
	l.cache.Add(path, table)
	l.logger.FeatureEvent("loader", "", fmt.Sprintf("parsed %s: %d rows", path, table.Len()))
	return table, nil
}

func (l *Loader) readFile(path string) (*models.Table, error) {
	l.parses.Add(1)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()
	table, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return table, nil
}

// Invalidate drops the cached table for path
func (l *Loader) Invalidate(path string) bool {
	return l.cache.Remove(path)
}

func (l *Loader) Purge() {
	l.cache.Purge()
}

// Parses reports how many times a file was actually read
func (l *Loader) Parses() int64 {
	return l.parses.Load()
}

func (l *Loader) Cached() int {
	return l.cache.Len()
}

func tableLen(table *models.Table) int {
	if table == nil {
		return 0
	}
	return table.Len()
}

// ReadTable parses plant records from CSV with a header row
func ReadTable(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, utility.Err("empty dataset: header row missing")
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for _, column := range models.RequiredColumns {
		if !utility.Contains(header, column) {
			return nil, utility.Errf("required column %q missing", column)
		}
	}

	table := &models.Table{
		Columns: header,
		Rows:    make([]*models.PowerPlant, 0),
	}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		plant, err := newPlant(header, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		table.Rows = append(table.Rows, plant)
	}
	return table, nil
}

func newPlant(header, record []string) (*models.PowerPlant, error) {
	fields := make(map[string]string, len(header))
	for i, column := range header {
		fields[column] = record[i]
	}
	plant := &models.PowerPlant{
		Canton:             strings.TrimSpace(fields[models.ColumnCanton]),
		EnergySourceLevel1: fields[models.ColumnEnergySourceLevel1],
		EnergySourceLevel2: fields[models.ColumnEnergySourceLevel2],
		EnergySourceLevel3: fields[models.ColumnEnergySourceLevel3],
		Fields:             fields,
	}
	capacity, ok, err := utility.ToFloat(fields[models.ColumnElectricalCapacity])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColumnElectricalCapacity, err)
	}
	if !ok {
		return nil, utility.Errf("%s is empty", models.ColumnElectricalCapacity)
	}
	plant.ElectricalCapacity = capacity
	tariff, ok, err := utility.ToFloat(fields[models.ColumnTariff])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColumnTariff, err)
	}
	if ok {
		plant.Tariff = &tariff
	}
	return plant, nil
}

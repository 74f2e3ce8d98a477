package render

import (
	"encoding/base64"
	"errors"
	"fmt"
	"powerdash/metrics/counters"
	"powerdash/models"
)

type Backend string

const (
	BackendMatplotlib Backend = "Matplotlib"
	BackendPlotly     Backend = "Plotly"

	ChartTariff = "tariff"
)

var ErrUnknownBackend = errors.New("unknown chart backend")

func Backends() []Backend {
	return []Backend{BackendMatplotlib, BackendPlotly}
}

// Label is the name shown on the backend selector
func (b Backend) Label() string {
	return string(b) + "-style"
}

// ParseBackend accepts a backend name or its label
func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends() {
		if s == string(b) || s == b.Label() {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// TariffChart is the tariff bar chart as shown by the selected backend
type TariffChart struct {
	Backend Backend `json:"backend"`
	Figure  *Figure `json:"figure,omitempty"`
	Image   string  `json:"image,omitempty"`
	png     []byte
}

func (c *TariffChart) PNG() []byte {
	return c.png
}

// Tariff constructs the chart with both backends and exposes only the selected one
func Tariff(table *models.Table, backend Backend) (*TariffChart, error) {
	if _, err := ParseBackend(string(backend)); err != nil {
		return nil, err
	}
	figure := TariffFigure(table)
	counters.CountRender(ChartTariff, string(BackendPlotly))
	png, err := TariffPNG(table)
	if err != nil {
		return nil, err
	}
	counters.CountRender(ChartTariff, string(BackendMatplotlib))

	chart := &TariffChart{Backend: backend}
	switch backend {
	case BackendPlotly:
		chart.Figure = figure
	case BackendMatplotlib:
		chart.png = png
		chart.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	}
	return chart, nil
}

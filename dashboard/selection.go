package dashboard

import (
	"errors"
	"fmt"
	"powerdash/models"
	"powerdash/render"
	"powerdash/utility"
)

// AllEnergyTypes disables the energy type filter
const AllEnergyTypes = "All"

var ErrUnknownEnergyType = errors.New("unknown energy type")

// Selection is the state of the dashboard controls for one view
type Selection struct {
	EnergyType string         `json:"energy_type"`
	Backend    render.Backend `json:"backend"`
	ShowTable  bool           `json:"show_table"`
}

func DefaultSelection() Selection {
	return Selection{
		EnergyType: AllEnergyTypes,
		Backend:    render.BackendMatplotlib,
		ShowTable:  false,
	}
}

type BackendOption struct {
	Value render.Backend `json:"value"`
	Label string         `json:"label"`
}

// Options are the values offered by the selectors
type Options struct {
	EnergyTypes []string        `json:"energy_types"`
	Backends    []BackendOption `json:"backends"`
}

func NewOptions(table *models.Table) *Options {
	options := &Options{
		EnergyTypes: EnergyTypeOptions(table),
		Backends:    make([]BackendOption, 0, len(render.Backends())),
	}
	for _, b := range render.Backends() {
		options.Backends = append(options.Backends, BackendOption{Value: b, Label: b.Label()})
	}
	return options
}

// EnergyTypeOptions is "All" followed by the sorted energy types present in table
func EnergyTypeOptions(table *models.Table) []string {
	return append([]string{AllEnergyTypes}, table.EnergyTypes()...)
}

// Filter narrows table to one energy type; "All" returns table itself
func Filter(table *models.Table, energyType string) (*models.Table, error) {
	if energyType == AllEnergyTypes {
		return table, nil
	}
	if !utility.Contains(table.EnergyTypes(), energyType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnergyType, energyType)
	}
	return table.WhereEnergyType(energyType), nil
}

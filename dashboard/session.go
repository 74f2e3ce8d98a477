package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"powerdash/metrics/counters"
	"powerdash/render"
)

type Control string

const (
	ControlEnergyType Control = "energy_type"
	ControlBackend    Control = "backend"
	ControlShowTable  Control = "show_table"
)

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValue   = errors.New("invalid control value")
)

// ControlEvent is sent by the page whenever one of its inputs changes
type ControlEvent struct {
	Control Control         `json:"control"`
	Value   json.RawMessage `json:"value"`
}

// Session keeps the control state of one connected page. Each handler
// recomputes only the part of the view its control affects.
type Session struct {
	id        string
	dashboard *Dashboard
	selection Selection
}

// NewSession starts a session with the default selection and returns its first full view
func (d *Dashboard) NewSession(id string) (*Session, *View, error) {
	s := &Session{
		id:        id,
		dashboard: d,
		selection: DefaultSelection(),
	}
	view, err := d.Render(s.selection)
	if err != nil {
		return nil, nil, err
	}
	return s, view, nil
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Selection() Selection {
	return s.selection
}

func (s *Session) Handle(event ControlEvent) (*View, error) {
	counters.CountControlEvent(string(event.Control))
	s.dashboard.logger.FeatureEvent(string(event.Control), s.id, string(event.Value))
	switch event.Control {
	case ControlEnergyType:
		var value string
		if err := json.Unmarshal(event.Value, &value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, err)
		}
		return s.OnEnergyTypeChanged(value)
	case ControlBackend:
		var value string
		if err := json.Unmarshal(event.Value, &value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, err)
		}
		return s.OnBackendChanged(value)
	case ControlShowTable:
		var value bool
		if err := json.Unmarshal(event.Value, &value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, err)
		}
		return s.OnShowTableToggled(value)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownControl, event.Control)
	}
}

// OnEnergyTypeChanged refilters the table and redraws the map
func (s *Session) OnEnergyTypeChanged(value string) (*View, error) {
	view, err := s.dashboard.MapView(value)
	if err != nil {
		return nil, err
	}
	s.selection.EnergyType = value
	view.Selection = s.selectionCopy()
	return view, nil
}

// OnBackendChanged redraws the tariff chart with the other backend
func (s *Session) OnBackendChanged(value string) (*View, error) {
	backend, err := render.ParseBackend(value)
	if err != nil {
		return nil, err
	}
	table, err := s.dashboard.WorkingTable()
	if err != nil {
		return nil, err
	}
	tariff, err := render.Tariff(table, backend)
	if err != nil {
		return nil, err
	}
	s.selection.Backend = backend
	return &View{Selection: s.selectionCopy(), Tariff: tariff}, nil
}

func (s *Session) OnShowTableToggled(show bool) (*View, error) {
	view := &View{}
	if show {
		table, err := s.dashboard.WorkingTable()
		if err != nil {
			return nil, err
		}
		view.Table = NewTableView(table)
	}
	s.selection.ShowTable = show
	view.Selection = s.selectionCopy()
	return view, nil
}

func (s *Session) selectionCopy() *Selection {
	selection := s.selection
	return &selection
}

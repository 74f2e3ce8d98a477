package dashboard

import (
	"powerdash/models"
	"powerdash/render"
)

// View is what the page draws. Event handlers return partial views holding
// only the parts their control affects; Selection is always set.
type View struct {
	Selection *Selection          `json:"selection,omitempty"`
	Options   *Options            `json:"options,omitempty"`
	Table     *TableView          `json:"table,omitempty"`
	Map       *render.Figure      `json:"map,omitempty"`
	MapGaps   []string            `json:"map_gaps,omitempty"`
	Tariff    *render.TariffChart `json:"tariff,omitempty"`
}

type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func NewTableView(table *models.Table) *TableView {
	return &TableView{
		Columns: table.Columns,
		Rows:    table.Records(),
	}
}

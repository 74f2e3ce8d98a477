package models

import (
	"powerdash/utility"
)

type Table struct {
	Columns []string      `json:"columns"`
	Rows    []*PowerPlant `json:"rows"`
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	return utility.Contains(t.Columns, name)
}

// Clone is a deep copy; the loader cache hands out shared tables
func (t *Table) Clone() *Table {
	clone := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]*PowerPlant, len(t.Rows)),
	}
	for i, row := range t.Rows {
		clone.Rows[i] = row.Clone()
	}
	return clone
}

// EnergyTypes returns the distinct level-2 energy sources, sorted
func (t *Table) EnergyTypes() []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.EnergySourceLevel2
	}
	return utility.SortedUnique(values)
}

// WhereEnergyType keeps the rows whose level-2 energy source equals value exactly.
// Rows are shared with t.
func (t *Table) WhereEnergyType(value string) *Table {
	filtered := &Table{
		Columns: t.Columns,
		Rows:    make([]*PowerPlant, 0),
	}
	for _, row := range t.Rows {
		if row.EnergySourceLevel2 == value {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}

func (t *Table) CountEnergyType(value string) int {
	count := 0
	for _, row := range t.Rows {
		if row.EnergySourceLevel2 == value {
			count++
		}
	}
	return count
}

// CantonNames returns the distinct joined names, sorted
func (t *Table) CantonNames() []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.CantonName
	}
	return utility.SortedUnique(values)
}

// Records renders the table as string cells in column order
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, column := range t.Columns {
			record[j] = row.Value(column)
		}
		records[i] = record
	}
	return records
}

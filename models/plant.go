package models

const (
	ColumnCanton             = "canton"
	ColumnCantonName         = "kan_name"
	ColumnEnergySourceLevel1 = "energy_source_level_1"
	ColumnEnergySourceLevel2 = "energy_source_level_2"
	ColumnEnergySourceLevel3 = "energy_source_level_3"
	ColumnElectricalCapacity = "electrical_capacity"
	ColumnTariff             = "tariff"
)

// RequiredColumns must be present in every plant dataset
var RequiredColumns = []string{
	ColumnCanton,
	ColumnEnergySourceLevel2,
	ColumnElectricalCapacity,
	ColumnTariff,
}

// PowerPlant is one row of the renewable power plant dataset
type PowerPlant struct {
	Canton             string            `json:"canton" bson:"canton"`
	CantonName         string            `json:"kan_name,omitempty" bson:"kan_name,omitempty"`
	EnergySourceLevel1 string            `json:"energy_source_level_1,omitempty" bson:"energy_source_level_1,omitempty"`
	EnergySourceLevel2 string            `json:"energy_source_level_2" bson:"energy_source_level_2"`
	EnergySourceLevel3 string            `json:"energy_source_level_3,omitempty" bson:"energy_source_level_3,omitempty"`
	ElectricalCapacity float64           `json:"electrical_capacity" bson:"electrical_capacity"`
	Tariff             *float64          `json:"tariff" bson:"tariff"`
	Fields             map[string]string `json:"-" bson:"fields"`
}

func (p *PowerPlant) HasTariff() bool {
	return p.Tariff != nil
}

func (p *PowerPlant) Clone() *PowerPlant {
	clone := *p
	if p.Tariff != nil {
		tariff := *p.Tariff
		clone.Tariff = &tariff
	}
	if p.Fields != nil {
		clone.Fields = make(map[string]string, len(p.Fields))
		for k, v := range p.Fields {
			clone.Fields[k] = v
		}
	}
	return &clone
}

// Value returns the cell for column as it should appear in the table view
func (p *PowerPlant) Value(column string) string {
	if column == ColumnCantonName {
		return p.CantonName
	}
	return p.Fields[column]
}

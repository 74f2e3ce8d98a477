package models

// UnknownCanton is the joined name for codes missing from the lookup table
const UnknownCanton = "nan"

var cantonNames = map[string]string{
	"TG": "Thurgau",
	"GR": "Graubünden",
	"LU": "Luzern",
	"BE": "Bern",
	"VS": "Valais",
	"BL": "Basel-Landschaft",
	"SO": "Solothurn",
	"VD": "Vaud",
	"SH": "Schaffhausen",
	"ZH": "Zürich",
	"AG": "Aargau",
	"UR": "Uri",
	"NE": "Neuchâtel",
	"TI": "Ticino",
	"SG": "St. Gallen",
	"GE": "Genève",
	"GL": "Glarus",
	"JU": "Jura",
	"ZG": "Zug",
	"OW": "Obwalden",
	"FR": "Fribourg",
	"SZ": "Schwyz",
	"AR": "Appenzell Ausserrhoden",
	"AI": "Appenzell Innerrhoden",
	"NW": "Nidwalden",
	"BS": "Basel-Stadt",
}

func CantonName(code string) string {
	if name, ok := cantonNames[code]; ok {
		return name
	}
	return UnknownCanton
}

// CantonCodes returns a copy of the lookup table
func CantonCodes() map[string]string {
	codes := make(map[string]string, len(cantonNames))
	for k, v := range cantonNames {
		codes[k] = v
	}
	return codes
}

// JoinCantonNames fills CantonName on every row and adds the kan_name column
func JoinCantonNames(table *Table) {
	for _, row := range table.Rows {
		row.CantonName = CantonName(row.Canton)
	}
	if !table.HasColumn(ColumnCantonName) {
		table.Columns = append(table.Columns, ColumnCantonName)
	}
}

package domain

// Sector column names in the sector table, in file order.
const (
	SectorCommercial     = "Commercial"
	SectorElectricPower  = "Electric power"
	SectorResidential    = "Residential"
	SectorIndustrial     = "Industrial"
	SectorTransportation = "Transportation"
)

// Fuel column names in the fuel table.
const (
	FuelCoal       = "Coal"
	FuelPetroleum  = "Petroleum"
	FuelNaturalGas = "Natural Gas"
)

// Sectors lists the sector categories in the order the dashboard offers them.
func Sectors() []string {
	return []string{SectorCommercial, SectorElectricPower, SectorResidential, SectorIndustrial, SectorTransportation}
}

// Fuels lists the fuel categories in the order the dashboard offers them.
func Fuels() []string {
	return []string{FuelCoal, FuelPetroleum, FuelNaturalGas}
}

// SectorShareColumns lists the percentage-of-total columns that accompany
// each sector. Values are raw percentage magnitudes (45.3 means 45.3%).
func SectorShareColumns() []string {
	sectors := Sectors()
	cols := make([]string, len(sectors))
	for i, s := range sectors {
		cols[i] = ShareColumn(s)
	}
	return cols
}

// ShareColumn names the percentage column paired with a category.
func ShareColumn(category string) string {
	return category + ".1"
}

// WideRow is one state's row in a wide table.
type WideRow struct {
	State  string
	Values map[string]float64
}

// WideTable has one row per state and one column per measurement.
// Row order is the source file order.
type WideTable struct {
	Columns []string
	Rows    []WideRow
}

// States returns the state of every row, in row order, without deduplication.
func (t WideTable) States() []string {
	states := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		states[i] = r.State
	}
	return states
}

// UniqueStates returns each state once, in order of first appearance.
func (t WideTable) UniqueStates() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	states := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if _, ok := seen[r.State]; ok {
			continue
		}
		seen[r.State] = struct{}{}
		states = append(states, r.State)
	}
	return states
}

// Row returns the first row for a state.
func (t WideTable) Row(state string) (WideRow, bool) {
	for _, r := range t.Rows {
		if r.State == state {
			return r, true
		}
	}
	return WideRow{}, false
}

// EmissionRecord is one (state, category) measurement in MMT of CO2.
type EmissionRecord struct {
	State    string  `json:"state"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// LongTable is the tidy form of a WideTable: one record per (state, category).
type LongTable []EmissionRecord

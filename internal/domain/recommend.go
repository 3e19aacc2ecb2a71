package domain

// CostTable maps a state code to the annual income needed to live there.
type CostTable map[string]int

// DefaultCosts is the fixed cost-of-living table used by the recommender.
// Callers must treat it as read-only.
var DefaultCosts = CostTable{
	"AL": 45000, "AK": 67000, "AZ": 55000, "AR": 42000, "CA": 78000, "CO": 60000, "CT": 72000, "DE": 56000, "DC": 75000,
	"FL": 54000, "GA": 50000, "HI": 75000, "ID": 48000, "IL": 61000, "IN": 46000, "IA": 44000, "KS": 45000, "KY": 43000,
	"LA": 46000, "ME": 50000, "MD": 70000, "MA": 75000, "MI": 50000, "MN": 58000, "MS": 42000, "MO": 46000, "MT": 47000,
	"NE": 45000, "NV": 56000, "NH": 60000, "NJ": 72000, "NM": 48000, "NY": 78000, "NC": 52000, "ND": 46000, "OH": 50000,
	"OK": 45000, "OR": 62000, "PA": 55000, "RI": 68000, "SC": 50000, "SD": 44000, "TN": 48000, "TX": 51000, "UT": 56000,
	"VT": 65000, "VA": 65000, "WA": 70000, "WV": 40000, "WI": 48000, "WY": 44000,
}

// Affordable reports whether the state's cost is at or below income.
// States missing from the table are never affordable.
func (c CostTable) Affordable(state string, income float64) bool {
	cost, ok := c[state]
	return ok && float64(cost) <= income
}

// Recommendation is the affordable state with the lowest total emissions.
type Recommendation struct {
	State          string  `json:"state"`
	TotalEmissions float64 `json:"total_emissions"`
	Cost           int     `json:"cost"`
}

// Recommend picks, among rows of the sector table whose state is affordable at
// income, the one with the smallest sum of the five sector columns. Ties keep
// the earliest row. ok is false when no state is affordable.
func Recommend(sectors WideTable, costs CostTable, income float64) (rec Recommendation, ok bool) {
	columns := Sectors()
	for _, row := range sectors.Rows {
		if !costs.Affordable(row.State, income) {
			continue
		}
		total := TotalEmissions(row, columns)
		if !ok || total < rec.TotalEmissions {
			rec = Recommendation{State: row.State, TotalEmissions: total, Cost: costs[row.State]}
			ok = true
		}
	}
	return rec, ok
}

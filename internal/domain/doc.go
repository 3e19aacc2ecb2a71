// Package domain models state-level energy-related CO2 emissions data and the
// pure transformations the dashboard performs on it.
//
// # Data Source
//
// Emissions tables come from the EIA "State energy-related carbon dioxide
// emissions" releases, published as two CSV files: one broken down by sector
// and one by fuel. Both carry a three-row preamble (title, subtitle, units)
// before the header row.
//
// # Table Conventions
//
// Sector file header (after comma removal and trimming):
//
//	State, Commercial, Electric power, Residential, Industrial, Transportation,
//	Total, Commercial.1, Electric power.1, ...
//
//	The second occurrence of each sector name holds that sector's share of the
//	state total as a percentage string ("45.3%"). Duplicate header names are
//	disambiguated with a ".N" suffix in order of appearance.
//
// Fuel file header:
//
//	State, Coal, Petroleum, Natural Gas, Total
//
//	Fuel cells may carry a trailing "%" and are parsed the same way.
//
// Percentages are kept as raw magnitudes: "45.3%" is stored as 45.3, never 0.453.
// All emissions values are in million metric tons (MMT) of CO2.
//
// # States
//
// Rows are keyed by two-letter USPS codes. Loaders accept full names or codes
// in any case and resolve them through [LookupState]. The vocabulary is the 50
// states plus DC; anything else (national totals, footnotes) is not a state.
//
// # Disaster Risk
//
// Risk flags are simulated: each state draws Flood ~ Bernoulli(0.3),
// Drought ~ Bernoulli(0.4) and Wildfire ~ Bernoulli(0.2) independently on
// every interaction. They are not derived from any hazard dataset and are not
// reproducible across runs unless a seeded [RiskModel] is injected.
//
//	Risk  = Flood + Drought + Wildfire   (0..3)
//	Level = High (Risk >= 2) | Mod (Risk == 1) | Low (Risk == 0)
//
// When the risk table is joined onto a filtered emissions subset, the join is
// a left join: states missing from the risk table get all flags false. See
// [Overlay].
//
// # Recommendation
//
// A state is affordable when its cost-of-living threshold is at or below the
// user's income. Among affordable states the one with the lowest sum of the
// five sector columns wins; ties go to the earlier row. See [Recommend].
package domain

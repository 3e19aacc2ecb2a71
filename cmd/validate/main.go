// Command validate performs integrity checks on the EIA emissions tables
// before they are deployed: both tables parse, cover the same states, every
// state has a cost-of-living entry, and each row's components add up to its
// published total.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -sector "data/State energy-related carbon dioxide emissions by sector.csv" \
//	  -fuel "data/State energy-related carbon dioxide emissions by fuel.csv"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/loader"
)

const (
	totalColumn = "Total"
	// Published totals and shares are rounded independently of their components.
	totalTolerance = 0.15
	shareTolerance = 0.5
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// tables holds both parsed tables including their Total columns.
type tables struct {
	sectors      domain.WideTable
	fuels        domain.WideTable
	sectorsStats loader.ReadStats
	fuelsStats   loader.ReadStats
}

func main() {
	sectorPath := flag.String("sector", "", "path to the sector emissions CSV")
	fuelPath := flag.String("fuel", "", "path to the fuel emissions CSV")
	headerRow := flag.Int("header-row", loader.DefaultHeaderRow, "preamble rows before the header")
	flag.Parse()

	if *sectorPath == "" || *fuelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *sectorPath, *fuelPath, *headerRow); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, sectorPath, fuelPath string, headerRow int) int {
	fmt.Fprintln(w, "=== Emissions Data Integrity Validation ===")
	fmt.Fprintln(w)

	t, err := loadTables(sectorPath, fuelPath, headerRow)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStateCoverage(t),
		validateCostCoverage(t.sectors),
		validateTotals("Sector totals", t.sectors, domain.Sectors()),
		validateTotals("Fuel totals", t.fuels, domain.Fuels()),
		validateShares(t.sectors),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d sector (%d skipped), %d fuel (%d skipped)\n",
		t.sectorsStats.Rows, t.sectorsStats.Skipped, t.fuelsStats.Rows, t.fuelsStats.Skipped)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadTables(sectorPath, fuelPath string, headerRow int) (tables, error) {
	var t tables

	sectorSpec := loader.SectorSpec(sectorPath, headerRow)
	sectorSpec.Categories = slices.Concat(sectorSpec.Categories, []string{totalColumn})
	fuelSpec := loader.FuelSpec(fuelPath, headerRow)
	fuelSpec.Categories = slices.Concat(fuelSpec.Categories, []string{totalColumn})

	var err error
	if t.sectors, t.sectorsStats, err = readTable(sectorSpec); err != nil {
		return t, err
	}
	if t.fuels, t.fuelsStats, err = readTable(fuelSpec); err != nil {
		return t, err
	}
	return t, nil
}

func readTable(spec loader.TableSpec) (domain.WideTable, loader.ReadStats, error) {
	rc, err := loader.FileSource{}.Open(context.Background(), spec.Object)
	if err != nil {
		return domain.WideTable{}, loader.ReadStats{}, fmt.Errorf("load %s table: %w", spec.Name, err)
	}
	defer rc.Close()

	table, stats, err := loader.ReadTable(rc, spec)
	if err != nil {
		return domain.WideTable{}, loader.ReadStats{}, fmt.Errorf("load %s table: %w", spec.Name, err)
	}
	return table, stats, nil
}

// ── Phases ──

func validateStateCoverage(t tables) *phase {
	p := &phase{name: "State coverage"}

	sectorStates := t.sectors.States()
	fuelStates := t.fuels.States()
	checkDuplicates(p, "sector", sectorStates)
	checkDuplicates(p, "fuel", fuelStates)

	for _, s := range t.sectors.UniqueStates() {
		if !slices.Contains(fuelStates, s) {
			p.errorf("%s in sector table but not in fuel table", s)
		}
	}
	for _, s := range t.fuels.UniqueStates() {
		if !slices.Contains(sectorStates, s) {
			p.errorf("%s in fuel table but not in sector table", s)
		}
	}
	return p
}

func checkDuplicates(p *phase, table string, states []string) {
	seen := make(map[string]bool, len(states))
	for _, s := range states {
		if seen[s] {
			p.errorf("%s appears more than once in %s table", s, table)
		}
		seen[s] = true
	}
}

func validateCostCoverage(sectors domain.WideTable) *phase {
	p := &phase{name: "Cost-of-living coverage"}
	for _, s := range sectors.UniqueStates() {
		if _, ok := domain.DefaultCosts[s]; !ok {
			p.errorf("%s (%s) has no cost-of-living entry and can never be recommended", s, domain.StateName(s))
		}
	}
	return p
}

func validateTotals(name string, table domain.WideTable, columns []string) *phase {
	p := &phase{name: name}
	for _, row := range table.Rows {
		sum := domain.TotalEmissions(row, columns)
		total := row.Values[totalColumn]
		if !floatNear(sum, total, totalTolerance) {
			p.errorf("%s: components sum to %.1f, published total %.1f", row.State, sum, total)
		}
	}
	return p
}

func validateShares(sectors domain.WideTable) *phase {
	p := &phase{name: "Sector shares"}
	shareColumns := domain.SectorShareColumns()
	for _, row := range sectors.Rows {
		var sum float64
		present := 0
		for _, c := range shareColumns {
			if v, ok := row.Values[c]; ok {
				sum += v
				present++
			}
		}
		if present == 0 {
			continue
		}
		if present != len(shareColumns) {
			p.errorf("%s: %d of %d share columns present", row.State, present, len(shareColumns))
			continue
		}
		if !floatNear(sum, 100, shareTolerance) {
			p.errorf("%s: sector shares sum to %.1f%%", row.State, sum)
		}
	}
	return p
}

func floatNear(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/loader"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "internal", "loader", "testdata", name)
}

func TestRun_Fixtures(t *testing.T) {
	var buf bytes.Buffer
	code := run(&buf, fixture("sector.csv"), fixture("fuel.csv"), loader.DefaultHeaderRow)

	assert.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "Rows: 3 sector (2 skipped), 3 fuel (0 skipped)")
	assert.Contains(t, buf.String(), "All validations passed.")
}

func TestRun_MissingTable(t *testing.T) {
	var buf bytes.Buffer
	code := run(&buf, fixture("nope.csv"), fixture("fuel.csv"), loader.DefaultHeaderRow)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "FATAL: load sector table")
}

func TestRun_ReportsMismatches(t *testing.T) {
	dir := t.TempDir()
	sector := filepath.Join(dir, "sector.csv")
	fuel := filepath.Join(dir, "fuel.csv")
	require.NoError(t, os.WriteFile(sector, []byte(
		"State,Commercial,Electric power,Residential,Industrial,Transportation,Total\n"+
			"Ohio,1,1,1,1,1,9\n"+
			"Iowa,1,1,1,1,1,5\n"), 0o600))
	require.NoError(t, os.WriteFile(fuel, []byte(
		"State,Coal,Petroleum,Natural Gas,Total\n"+
			"Ohio,1,1,1,3\n"), 0o600))

	var buf bytes.Buffer
	code := run(&buf, sector, fuel, 0)

	out := buf.String()
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "OH: components sum to 5.0, published total 9.0")
	assert.Contains(t, out, "IA in sector table but not in fuel table")
	assert.Contains(t, out, "Validation FAILED.")
}

func TestValidateShares(t *testing.T) {
	table := domain.WideTable{Rows: []domain.WideRow{
		{State: "OH", Values: map[string]float64{"Commercial.1": 50, "Electric power.1": 50, "Residential.1": 0, "Industrial.1": 0, "Transportation.1": 0}},
		{State: "IA", Values: map[string]float64{"Commercial.1": 50, "Electric power.1": 40, "Residential.1": 0, "Industrial.1": 0, "Transportation.1": 0}},
		{State: "UT", Values: map[string]float64{"Commercial": 1}},
	}}

	p := validateShares(table)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "IA: sector shares sum to 90.0%")
}

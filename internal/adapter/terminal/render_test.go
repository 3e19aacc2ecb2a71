package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/emissions-dashboard/internal/dashboard"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
)

func TestNewRenderer_BufferIsPlain(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	assert.False(t, r.styled)
}

func TestRenderFrame_Sector(t *testing.T) {
	var buf bytes.Buffer
	frame := domain.SectorFrame("Industrial", domain.LongTable{
		{State: "AL", Category: "Industrial", Value: 35.5},
		{State: "TX", Category: "Industrial", Value: 1120.5},
	})

	require.NoError(t, NewRenderer(&buf).RenderFrame(frame))

	want := "Industrial Sector CO2 Emissions\n" +
		"===============================\n" +
		"State  MMT of CO2\n" +
		"AL     35.5\n" +
		"TX     1,120.5\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderFrame_Empty(t *testing.T) {
	var buf bytes.Buffer
	frame := domain.FuelFrame("Uranium", domain.LongTable{})

	require.NoError(t, NewRenderer(&buf).RenderFrame(frame))

	assert.Contains(t, buf.String(), "Uranium Emissions by State")
	assert.Contains(t, buf.String(), `No data for fuel "Uranium".`)
}

func TestRenderFrame_Risk(t *testing.T) {
	var buf bytes.Buffer
	frame := domain.RiskFrame("Commercial", []domain.OverlayRow{
		{State: "AL", Category: "Commercial", Risk: 2, Level: domain.LevelHigh},
		{State: "VT", Category: "Commercial", Risk: 0, Level: domain.LevelLow},
	})

	require.NoError(t, NewRenderer(&buf).RenderFrame(frame))

	out := buf.String()
	assert.Contains(t, out, "Disaster Risk - Commercial Emissions")
	assert.Contains(t, out, "State  Risk  Level\n")
	assert.Contains(t, out, "AL     2     High\n")
	assert.Contains(t, out, "VT     0     Low\n")
}

func TestRenderStateRisk(t *testing.T) {
	var buf bytes.Buffer
	r := domain.RiskRecord{State: "TX", Drought: true}
	lvl := domain.Assess(r)

	err := NewRenderer(&buf).RenderStateRisk(dashboard.StateRisk{
		RiskRecord: r,
		Name:       "Texas",
		Risk:       lvl.Risk,
		Level:      lvl.Level,
		Labels:     domain.HazardLabels(r),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Risk Levels for Texas (TX)")
	assert.Contains(t, out, "Flood     Low\n")
	assert.Contains(t, out, "Drought   High\n")
	assert.Contains(t, out, "Wildfire  Low\n")
	assert.Contains(t, out, "Overall: Mod (1 of 3 hazards)")
}

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	p := domain.StateProfile{
		State:     "VT",
		Name:      "Vermont",
		Emissions: map[string]float64{"Commercial": 0.6, "Transportation": 3.1},
		Shares:    map[string]float64{"Transportation": 57.4},
		Total:     5.4,
	}

	require.NoError(t, NewRenderer(&buf).RenderProfile(p))

	out := buf.String()
	assert.Contains(t, out, "Sector Emissions for Vermont (VT)")
	assert.Contains(t, out, "57.4%")
	assert.Contains(t, out, "Total: 5.4 MMT of CO2")
}

func TestRenderRecommendation(t *testing.T) {
	var buf bytes.Buffer
	res := dashboard.RecommendResult{
		Income:         70000,
		Found:          true,
		Recommendation: &domain.Recommendation{State: "VT", TotalEmissions: 5.4, Cost: 65000},
	}

	require.NoError(t, NewRenderer(&buf).RenderRecommendation(res))

	out := buf.String()
	assert.Contains(t, out, "Recommended State: VT (Vermont)")
	assert.Contains(t, out, "Total Emissions: 5.4 MMT of CO2")
	assert.Contains(t, out, "Cost of Living: $65,000")
}

func TestRenderRecommendation_None(t *testing.T) {
	var buf bytes.Buffer
	res := dashboard.RecommendResult{Income: 35000, Message: dashboard.NoAffordableMessage}

	require.NoError(t, NewRenderer(&buf).RenderRecommendation(res))
	assert.Contains(t, buf.String(), "No states affordable based on income.")
}

func TestStyledRenderer(t *testing.T) {
	var buf bytes.Buffer
	frame := domain.RiskFrame("Commercial", []domain.OverlayRow{
		{State: "AL", Category: "Commercial", Risk: 3, Level: domain.LevelHigh},
	})

	require.NoError(t, NewStyledRenderer(&buf).RenderFrame(frame))

	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Disaster Risk - Commercial Emissions")
	assert.Contains(t, out, "High")
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, levelColor("High"), levelColor(string(domain.LevelHigh)))
	assert.NotEqual(t, levelColor("High"), levelColor("Low"))
	assert.Equal(t, levelColor("Low"), levelColor("unknown"))
}

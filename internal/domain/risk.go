package domain

import (
	"math/rand/v2"
	"sync"
)

// Hazard probabilities for the simulated risk model.
const (
	FloodProbability    = 0.3
	DroughtProbability  = 0.4
	WildfireProbability = 0.2
)

// Level is the three-step risk classification.
type Level string

const (
	LevelLow  Level = "Low"
	LevelMod  Level = "Mod"
	LevelHigh Level = "High"
)

// RiskColors maps each level to the color used on the risk overlay map.
var RiskColors = map[string]string{
	string(LevelHigh): "red",
	string(LevelMod):  "orange",
	string(LevelLow):  "green",
}

// RiskRecord holds one state's simulated hazard flags.
type RiskRecord struct {
	State    string `json:"state"`
	Flood    bool   `json:"flood"`
	Drought  bool   `json:"drought"`
	Wildfire bool   `json:"wildfire"`
}

// RiskLevel is the aggregate derived from a RiskRecord.
type RiskLevel struct {
	State string `json:"state"`
	Risk  int    `json:"risk"`
	Level Level  `json:"level"`
}

// RiskModel produces one RiskRecord per input state, in input order.
type RiskModel interface {
	Sample(states []string) []RiskRecord
}

// BernoulliRiskModel draws each hazard flag independently with fixed
// probabilities. It is a placeholder, not a hazard model.
type BernoulliRiskModel struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBernoulliRiskModel returns a model backed by an unseeded source.
// Draws differ between runs.
func NewBernoulliRiskModel() *BernoulliRiskModel {
	return &BernoulliRiskModel{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))} //nolint:gosec // simulated data
}

// NewSeededRiskModel returns a model whose draw sequence is fixed by seed.
func NewSeededRiskModel(seed uint64) *BernoulliRiskModel {
	return &BernoulliRiskModel{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // simulated data
}

// Sample draws flags for every state. Flood is drawn for all states first,
// then Drought, then Wildfire, so a seeded model is stable per column.
func (m *BernoulliRiskModel) Sample(states []string) []RiskRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RiskRecord, len(states))
	for i, s := range states {
		out[i].State = s
	}
	for i := range out {
		out[i].Flood = m.rng.Float64() < FloodProbability
	}
	for i := range out {
		out[i].Drought = m.rng.Float64() < DroughtProbability
	}
	for i := range out {
		out[i].Wildfire = m.rng.Float64() < WildfireProbability
	}
	return out
}

// Assess counts the raised flags and classifies the count.
func Assess(r RiskRecord) RiskLevel {
	risk := 0
	for _, f := range []bool{r.Flood, r.Drought, r.Wildfire} {
		if f {
			risk++
		}
	}
	return RiskLevel{State: r.State, Risk: risk, Level: classifyRisk(risk)}
}

func classifyRisk(risk int) Level {
	switch {
	case risk >= 2:
		return LevelHigh
	case risk == 1:
		return LevelMod
	default:
		return LevelLow
	}
}

// OverlayRow is one emissions record with its joined risk assessment.
type OverlayRow struct {
	State    string  `json:"state"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Flood    bool    `json:"flood"`
	Drought  bool    `json:"drought"`
	Wildfire bool    `json:"wildfire"`
	Risk     int     `json:"risk"`
	Level    Level   `json:"level"`
}

// Overlay left-joins risk records onto an emissions subset by state. A state
// with no risk record keeps its emissions row with every flag false, so it
// classifies as Low. When the risk table repeats a state, the first record wins.
func Overlay(emissions LongTable, risks []RiskRecord) []OverlayRow {
	byState := make(map[string]RiskRecord, len(risks))
	for _, r := range risks {
		if _, ok := byState[r.State]; !ok {
			byState[r.State] = r
		}
	}

	out := make([]OverlayRow, 0, len(emissions))
	for _, e := range emissions {
		r := byState[e.State] // zero value: all flags false
		lvl := Assess(r)
		out = append(out, OverlayRow{
			State:    e.State,
			Category: e.Category,
			Value:    e.Value,
			Flood:    r.Flood,
			Drought:  r.Drought,
			Wildfire: r.Wildfire,
			Risk:     lvl.Risk,
			Level:    lvl.Level,
		})
	}
	return out
}

// HazardLabels renders a state's flags as High/Low labels for the details panel.
func HazardLabels(r RiskRecord) map[string]string {
	label := func(b bool) string {
		if b {
			return string(LevelHigh)
		}
		return string(LevelLow)
	}
	return map[string]string{
		"Flood":    label(r.Flood),
		"Drought":  label(r.Drought),
		"Wildfire": label(r.Wildfire),
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the two source tables for the lifetime of a dashboard.
// It is built once after both tables load and never mutated afterwards;
// every pipeline stage receives it as a read-only input.
type Session struct {
	ID       string
	LoadedAt time.Time
	Sectors  WideTable
	Fuels    WideTable
}

// NewSession stamps freshly loaded tables with an ID and load time.
func NewSession(sectors, fuels WideTable) *Session {
	return &Session{
		ID:       uuid.NewString(),
		LoadedAt: clock.Now(),
		Sectors:  sectors,
		Fuels:    fuels,
	}
}

// StateProfile is one state's sector breakdown: emissions per sector and
// each sector's share of the state total as a raw percentage.
type StateProfile struct {
	State     string             `json:"state"`
	Name      string             `json:"name"`
	Emissions map[string]float64 `json:"emissions"`
	Shares    map[string]float64 `json:"shares"`
	Total     float64            `json:"total"`
}

// Profile assembles the sector breakdown for a state from the sector table.
func (s *Session) Profile(state string) (StateProfile, error) {
	row, ok := s.Sectors.Row(state)
	if !ok {
		return StateProfile{}, ErrUnknownState
	}
	sectors := Sectors()
	p := StateProfile{
		State:     state,
		Name:      StateName(state),
		Emissions: make(map[string]float64, len(sectors)),
		Shares:    make(map[string]float64, len(sectors)),
		Total:     TotalEmissions(row, sectors),
	}
	for _, sec := range sectors {
		p.Emissions[sec] = row.Values[sec]
		if v, ok := row.Values[ShareColumn(sec)]; ok {
			p.Shares[sec] = v
		}
	}
	return p, nil
}

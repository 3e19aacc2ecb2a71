package domain

import (
	"time"

	"github.com/google/uuid"
)

// Frame kinds, used as a metrics label and a sink header.
const (
	FrameSector = "sector"
	FrameFuel   = "fuel"
	FrameRisk   = "risk"
)

// EmissionsUnit labels every emissions value shown to users.
const EmissionsUnit = "MMT of CO2"

// MapPoint is one colored region of a choropleth.
type MapPoint struct {
	State    string  `json:"state"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label,omitempty"`
}

// MapFrame is everything a renderer needs to draw one choropleth of US states.
// Continuous frames set ColorScale; discrete frames set ColorMap and color by
// each point's Label.
type MapFrame struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Dimension   string            `json:"dimension"`
	Category    string            `json:"category"`
	ColorField  string            `json:"color_field"`
	ColorScale  string            `json:"color_scale,omitempty"`
	ColorMap    map[string]string `json:"color_map,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	Points      []MapPoint        `json:"points"`
	Empty       bool              `json:"empty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// SectorFrame builds the choropleth for one sector's filtered records.
func SectorFrame(sector string, records LongTable) MapFrame {
	return emissionsFrame(FrameSector, "Sector", sector, sector+" Sector CO2 Emissions", records)
}

// FuelFrame builds the choropleth for one fuel's filtered records.
func FuelFrame(fuel string, records LongTable) MapFrame {
	return emissionsFrame(FrameFuel, "Fuel", fuel, fuel+" Emissions by State", records)
}

func emissionsFrame(kind, dimension, category, title string, records LongTable) MapFrame {
	points := make([]MapPoint, len(records))
	for i, r := range records {
		points[i] = MapPoint{State: r.State, Category: r.Category, Value: r.Value}
	}
	return MapFrame{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Dimension:   dimension,
		Category:    category,
		ColorField:  "Emissions",
		ColorScale:  "solar",
		Unit:        EmissionsUnit,
		Points:      points,
		Empty:       len(points) == 0,
		GeneratedAt: clock.Now(),
	}
}

// RiskFrame builds the discrete risk-level choropleth for a sector overlay.
// Point values carry the raw risk count; labels carry the level.
func RiskFrame(sector string, rows []OverlayRow) MapFrame {
	points := make([]MapPoint, len(rows))
	for i, r := range rows {
		points[i] = MapPoint{State: r.State, Category: r.Category, Value: float64(r.Risk), Label: string(r.Level)}
	}
	return MapFrame{
		ID:          uuid.NewString(),
		Kind:        FrameRisk,
		Title:       "Disaster Risk - " + sector + " Emissions",
		Dimension:   "Sector",
		Category:    sector,
		ColorField:  "Level",
		ColorMap:    RiskColors,
		Points:      points,
		Empty:       len(points) == 0,
		GeneratedAt: clock.Now(),
	}
}

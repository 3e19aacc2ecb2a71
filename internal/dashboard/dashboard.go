package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/observability"
)

var (
	// ErrIncomeTooLow rejects recommender input below the configured minimum.
	ErrIncomeTooLow = errors.New("income below minimum")
	// ErrInvalidIncome rejects NaN and infinite incomes.
	ErrInvalidIncome = errors.New("income must be a finite number")
)

// NoAffordableMessage is shown when no state is affordable at the given income.
const NoAffordableMessage = "No states affordable based on income."

// FrameSink receives rendered map frames, e.g. a downstream map renderer.
type FrameSink interface {
	Publish(ctx context.Context, frames []domain.MapFrame) error
}

// Dashboard recomputes every view from the loaded session on demand.
// Nothing is cached between calls; risk flags are redrawn on each call.
type Dashboard struct {
	session   *domain.Session
	risk      domain.RiskModel
	costs     domain.CostTable
	sink      FrameSink
	logger    *slog.Logger
	metrics   *observability.Metrics
	minIncome float64
}

// New creates a Dashboard over a loaded session. Pass a nil sink to skip publishing.
func New(session *domain.Session, risk domain.RiskModel, sink FrameSink, logger *slog.Logger, metrics *observability.Metrics, minIncome float64) *Dashboard {
	return &Dashboard{
		session:   session,
		risk:      risk,
		costs:     domain.DefaultCosts,
		sink:      sink,
		logger:    logger,
		metrics:   metrics,
		minIncome: minIncome,
	}
}

// CheckReadiness returns nil once a session is attached.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if d.session == nil {
		return errors.New("emissions data not loaded")
	}
	return nil
}

// Sectors lists the selectable sectors.
func (d *Dashboard) Sectors() []string {
	return domain.Sectors()
}

// Fuels lists the selectable fuels.
func (d *Dashboard) Fuels() []string {
	return domain.Fuels()
}

// States lists the states present in the sector table, in file order.
func (d *Dashboard) States() []string {
	return d.session.Sectors.UniqueStates()
}

// SectorMap renders emissions for one sector. An unknown sector yields an
// empty frame, not an error.
func (d *Dashboard) SectorMap(ctx context.Context, sector string) domain.MapFrame {
	defer d.observe("sector_map", time.Now())

	long := domain.Melt(d.session.Sectors, domain.Sectors())
	frame := domain.SectorFrame(sector, domain.Select(long, sector))
	d.emit(ctx, frame)
	return frame
}

// FuelMap renders emissions for one fuel. An unknown fuel yields an empty frame.
func (d *Dashboard) FuelMap(ctx context.Context, fuel string) domain.MapFrame {
	defer d.observe("fuel_map", time.Now())

	long := domain.Melt(d.session.Fuels, domain.Fuels())
	frame := domain.FuelFrame(fuel, domain.Select(long, fuel))
	d.emit(ctx, frame)
	return frame
}

// RiskMap overlays freshly drawn risk flags on a sector's emissions subset.
func (d *Dashboard) RiskMap(ctx context.Context, sector string) domain.MapFrame {
	defer d.observe("risk_map", time.Now())

	long := domain.Melt(d.session.Sectors, domain.Sectors())
	filtered := domain.Select(long, sector)
	risks := d.sample(d.session.Sectors.UniqueStates())
	frame := domain.RiskFrame(sector, domain.Overlay(filtered, risks))
	d.emit(ctx, frame)
	return frame
}

// StateRisk is the details panel for one state.
type StateRisk struct {
	domain.RiskRecord
	Name   string            `json:"name"`
	Risk   int               `json:"risk"`
	Level  domain.Level      `json:"level"`
	Labels map[string]string `json:"labels"`
}

// StateRisk draws flags for a single state. The state may be a code or a
// full name but must appear in the loaded data.
func (d *Dashboard) StateRisk(_ context.Context, state string) (StateRisk, error) {
	defer d.observe("state_risk", time.Now())

	code, err := d.resolveState(state)
	if err != nil {
		return StateRisk{}, err
	}

	r := d.sample([]string{code})[0]
	lvl := domain.Assess(r)
	return StateRisk{
		RiskRecord: r,
		Name:       domain.StateName(code),
		Risk:       lvl.Risk,
		Level:      lvl.Level,
		Labels:     domain.HazardLabels(r),
	}, nil
}

// Profile returns a state's sector breakdown with percentage shares.
func (d *Dashboard) Profile(_ context.Context, state string) (domain.StateProfile, error) {
	code, err := d.resolveState(state)
	if err != nil {
		return domain.StateProfile{}, err
	}
	return d.session.Profile(code)
}

// RecommendResult distinguishes "no affordable state" from a recommendation.
type RecommendResult struct {
	Income         float64                `json:"income"`
	Found          bool                   `json:"found"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
	Message        string                 `json:"message,omitempty"`
}

// Recommend finds the lowest-emission affordable state for income.
func (d *Dashboard) Recommend(_ context.Context, income float64) (RecommendResult, error) {
	defer d.observe("recommend", time.Now())

	if math.IsNaN(income) || math.IsInf(income, 0) {
		d.metrics.Recommendations.WithLabelValues("invalid").Inc()
		return RecommendResult{}, fmt.Errorf("%w: %v", ErrInvalidIncome, income)
	}
	if income < d.minIncome {
		d.metrics.Recommendations.WithLabelValues("invalid").Inc()
		return RecommendResult{}, fmt.Errorf("%w: %.0f < %.0f", ErrIncomeTooLow, income, d.minIncome)
	}

	rec, ok := domain.Recommend(d.session.Sectors, d.costs, income)
	if !ok {
		d.metrics.Recommendations.WithLabelValues("none").Inc()
		return RecommendResult{Income: income, Message: NoAffordableMessage}, nil
	}

	d.metrics.Recommendations.WithLabelValues("found").Inc()
	d.logger.Debug("recommendation computed", "income", income, "state", rec.State, "total", rec.TotalEmissions)
	return RecommendResult{Income: income, Found: true, Recommendation: &rec}, nil
}

func (d *Dashboard) resolveState(state string) (string, error) {
	code, ok := domain.LookupState(state)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownState, state)
	}
	if _, ok := d.session.Sectors.Row(code); !ok {
		return "", fmt.Errorf("%w: %q not in loaded data", domain.ErrUnknownState, state)
	}
	return code, nil
}

func (d *Dashboard) sample(states []string) []domain.RiskRecord {
	risks := d.risk.Sample(states)
	d.metrics.RiskSamples.Add(float64(len(risks)))
	return risks
}

// emit records the frame and hands it to the sink. Sink failures are logged
// and counted; the frame is still returned to the caller.
func (d *Dashboard) emit(ctx context.Context, frame domain.MapFrame) {
	d.metrics.FramesRendered.WithLabelValues(frame.Kind).Inc()
	if frame.Empty {
		d.metrics.EmptyFrames.WithLabelValues(frame.Kind).Inc()
		d.logger.Info("no data for category", "kind", frame.Kind, "category", frame.Category)
	}

	if d.sink == nil {
		return
	}
	if err := d.sink.Publish(ctx, []domain.MapFrame{frame}); err != nil {
		d.metrics.SinkErrors.Inc()
		d.logger.Error("publish frame failed", "error", err, "kind", frame.Kind, "frame_id", frame.ID)
		return
	}
	d.metrics.SinkPublished.Inc()
}

func (d *Dashboard) observe(op string, start time.Time) {
	d.metrics.ComputeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

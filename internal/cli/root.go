package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/emissions-dashboard/internal/adapter/terminal"
	"github.com/couchcryptid/emissions-dashboard/internal/dashboard"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/loader"
	"github.com/couchcryptid/emissions-dashboard/internal/observability"
)

const (
	defaultSectorData = "data/State energy-related carbon dioxide emissions by sector.csv"
	defaultFuelData   = "data/State energy-related carbon dioxide emissions by fuel.csv"
	defaultMinIncome  = 30000
)

// options are the persistent flags shared by every subcommand.
type options struct {
	sectorData string
	fuelData   string
	headerRow  int
	seed       uint64
	minIncome  float64
	logLevel   string
	jsonOut    bool
}

// NewRootCmd creates the root Cobra command for the emissionsctl CLI.
func NewRootCmd(ver string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "emissionsctl",
		Short:         "Explore state CO2 emissions, simulated disaster risk, and affordable low-emission states",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: false,
		Example: `  # Electric power emissions by state
  emissionsctl map sector "Electric power"

  # Coal emissions by state
  emissionsctl map fuel Coal

  # Reproducible disaster-risk overlay for the industrial sector
  emissionsctl risk Industrial --seed 42

  # Risk details and sector profile for Texas
  emissionsctl state TX

  # Lowest-emission state affordable on $55,000
  emissionsctl recommend --income 55000`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.sectorData, "sector-data", defaultSectorData, "path to the sector emissions CSV")
	pf.StringVar(&opts.fuelData, "fuel-data", defaultFuelData, "path to the fuel emissions CSV")
	pf.IntVar(&opts.headerRow, "header-row", loader.DefaultHeaderRow, "preamble rows before the CSV header")
	pf.Uint64Var(&opts.seed, "seed", 0, "seed the risk model for reproducible draws")
	pf.Float64Var(&opts.minIncome, "min-income", defaultMinIncome, "lowest income the recommender accepts")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")

	cmd.AddCommand(
		newMapCmd(opts),
		newRiskCmd(opts),
		newStateCmd(opts),
		newRecommendCmd(opts),
	)
	return cmd
}

// open loads both tables and builds a dashboard. A missing table fails the
// command before anything is printed.
func (o *options) open(cmd *cobra.Command) (*dashboard.Dashboard, error) {
	if o.headerRow < 0 {
		return nil, fmt.Errorf("header-row must be >= 0, got %d", o.headerRow)
	}

	logger := newLogger(cmd.ErrOrStderr(), o.logLevel)
	metrics := observability.NewUnregisteredMetrics()

	l := loader.New(loader.FileSource{}, logger, metrics)
	session, err := l.LoadSession(cmd.Context(),
		loader.SectorSpec(o.sectorData, o.headerRow),
		loader.FuelSpec(o.fuelData, o.headerRow),
	)
	if err != nil {
		return nil, err
	}

	var risk domain.RiskModel = domain.NewBernoulliRiskModel()
	if cmd.Flags().Changed("seed") {
		risk = domain.NewSeededRiskModel(o.seed)
	}
	return dashboard.New(session, risk, nil, logger, metrics, o.minIncome), nil
}

func (o *options) renderer(cmd *cobra.Command) *terminal.Renderer {
	return terminal.NewRenderer(cmd.OutOrStdout())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

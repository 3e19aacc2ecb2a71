package cli

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
)

func newMapCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render an emissions choropleth by sector or fuel",
	}
	cmd.AddCommand(newMapSectorCmd(opts), newMapFuelCmd(opts))
	return cmd
}

func newMapSectorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "sector <name>",
		Short:     "Emissions by state for one sector",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.Sectors(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return opts.printFrame(cmd, d.SectorMap(cmd.Context(), args[0]))
		},
	}
}

func newMapFuelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "fuel <name>",
		Short:     "Emissions by state for one fuel",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.Fuels(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return opts.printFrame(cmd, d.FuelMap(cmd.Context(), args[0]))
		},
	}
}

func newRiskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "risk <sector>",
		Short:     "Overlay simulated disaster risk on a sector's emissions",
		Long:      "Draws fresh flood, drought and wildfire flags for every state on each run. Use --seed for reproducible output.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.Sectors(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return opts.printFrame(cmd, d.RiskMap(cmd.Context(), args[0]))
		},
	}
}

func (o *options) printFrame(cmd *cobra.Command, f domain.MapFrame) error {
	if o.jsonOut {
		return writeJSON(cmd.OutOrStdout(), f)
	}
	return o.renderer(cmd).RenderFrame(f)
}

package cli

import (
	"github.com/spf13/cobra"
)

func newRecommendCmd(opts *options) *cobra.Command {
	var income float64

	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Recommend the lowest-emission state affordable on an income",
		Example: `  emissionsctl recommend --income 55000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			res, err := d.Recommend(cmd.Context(), income)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return opts.renderer(cmd).RenderRecommendation(res)
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "annual income in dollars")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

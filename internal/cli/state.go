package cli

import (
	"github.com/spf13/cobra"
)

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state <code|name>",
		Short: "Show disaster risk levels and the sector profile for one state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			risk, err := d.StateRisk(ctx, args[0])
			if err != nil {
				return err
			}
			profile, err := d.Profile(ctx, args[0])
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"risk": risk, "profile": profile})
			}
			r := opts.renderer(cmd)
			if err := r.RenderStateRisk(risk); err != nil {
				return err
			}
			return r.RenderProfile(profile)
		},
	}
}

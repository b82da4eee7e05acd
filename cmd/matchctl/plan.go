package main

import (
	"fmt"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPlanCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Split the fixture announcement into relay segments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixtureFrom(v)
			if err != nil {
				return err
			}
			clk, err := nowClock(v)
			if err != nil {
				return err
			}

			announcement, err := f.announcement()
			if err != nil {
				return err
			}

			opts := partial.PlanOptions{
				MaxSegmentDistanceKm: v.GetFloat64("max-segment-km"),
				RelayTypes:           dto.ToRelayTypes(v.GetStringSlice("relay-types")),
			}

			planner := partial.NewPlanner(clk)
			var plan *entities.PartialDeliveryPlan
			if v.GetBool("fallback") {
				plan, err = planner.PlanWithFallback(announcement, f.relays(), opts)
			} else {
				plan, err = planner.Plan(announcement, f.relays(), opts)
			}
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), dto.FromPlan(*plan))
		},
	}

	cmd.Flags().Float64("max-segment-km", partial.DefaultMaxSegmentDistanceKm, "maximum segment length, km")
	cmd.Flags().StringSlice("relay-types", nil, "allowed relay types (WAREHOUSE, SHOP, LOCKER, PARTNER_STORE)")
	cmd.Flags().Bool("fallback", true, "retry with extended search when no relay fits")
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

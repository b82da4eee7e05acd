package main

import (
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSlotsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Expand the fixture availability rules into bookable slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixtureFrom(v)
			if err != nil {
				return err
			}
			loc, err := location(v)
			if err != nil {
				return err
			}
			clk, err := nowClock(v)
			if err != nil {
				return err
			}

			from, err := time.ParseInLocation(time.DateOnly, v.GetString("from"), loc)
			if err != nil {
				return fmt.Errorf("parse --from: %w", err)
			}
			to, err := time.ParseInLocation(time.DateOnly, v.GetString("to"), loc)
			if err != nil {
				return fmt.Errorf("parse --to: %w", err)
			}

			rules, err := f.rules(loc)
			if err != nil {
				return err
			}
			exceptions, err := f.exceptions(loc)
			if err != nil {
				return err
			}

			providerID := v.GetString("provider")
			slots, err := availability.NewExpander(clk, loc).Expand(availability.ExpandRequest{
				ProviderID:       providerID,
				From:             from,
				To:               to,
				ServiceID:        v.GetString("service"),
				OverrideDuration: time.Duration(v.GetInt("duration")) * time.Minute,
				Rules:            rules,
				Exceptions:       exceptions,
				Booked:           f.booked(),
			})
			if err != nil {
				return fmt.Errorf("expand: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), dto.FromSlots(providerID, slots))
		},
	}

	cmd.Flags().String("provider", "", "provider id")
	cmd.Flags().String("from", "", "first day, YYYY-MM-DD")
	cmd.Flags().String("to", "", "last day, YYYY-MM-DD")
	cmd.Flags().String("service", "", "limit to rules covering this service")
	cmd.Flags().Int("duration", 0, "override slot duration, minutes")
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

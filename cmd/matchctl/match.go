package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/compatibility"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/scoring"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// matchReport дополняет ответ API статистикой отсева.
type matchReport struct {
	dto.MatchesResponse
	Rejected   map[string]int  `json:"rejected,omitempty"`
	BelowScore int             `json:"below_score"`
	Failures   []failureReport `json:"failures,omitempty"`
}

type failureReport struct {
	RouteID string `json:"route_id"`
	Error   string `json:"error"`
}

func newMatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score the fixture routes against the fixture announcement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixtureFrom(v)
			if err != nil {
				return err
			}
			loc, err := location(v)
			if err != nil {
				return err
			}

			announcement, err := f.announcement()
			if err != nil {
				return err
			}
			routes, err := f.routes()
			if err != nil {
				return err
			}

			engine := matching.NewEngine(
				compatibility.NewEvaluator(loc),
				scoring.NewScorer(),
				v.GetInt("min-score"),
				v.GetInt("workers"),
			)

			evaluation, err := engine.EvaluateAndScoreMatches(cmd.Context(), announcement, routes)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}

			report := matchReport{
				MatchesResponse: dto.FromMatchResults(announcement.ID, evaluation.Results),
				Rejected:        make(map[string]int, len(evaluation.Rejected)),
				BelowScore:      evaluation.BelowScore,
			}
			for reason, n := range evaluation.Rejected {
				report.Rejected[reason.String()] = n
			}
			for _, failure := range evaluation.Failures {
				report.Failures = append(report.Failures, failureReport{
					RouteID: failure.RouteID,
					Error:   failure.Err.Error(),
				})
			}
			slices.SortFunc(report.Failures, func(a, b failureReport) int {
				return cmp.Compare(a.RouteID, b.RouteID)
			})

			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Int("min-score", matching.DefaultMinScore, "minimum score to keep a match")
	cmd.Flags().Int("workers", matching.DefaultWorkers, "parallel route evaluations")
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

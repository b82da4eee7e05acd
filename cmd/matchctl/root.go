package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/pkg/clock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "MATCHCTL"

var errFixtureRequired = errors.New("fixture file is required (-f)")

// currentClock - то, что нужно календарю и планировщику.
type currentClock interface {
	Now() time.Time
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Offline matching, availability and relay planning over a fixture file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with flag defaults (yaml)")
	root.PersistentFlags().StringP("fixture", "f", "", "fixture file (yaml)")
	root.PersistentFlags().String("timezone", "UTC", "calendar timezone")
	root.PersistentFlags().String("now", "", "fixed current time, RFC3339")
	_ = v.BindPFlags(root.PersistentFlags())

	root.AddCommand(
		newMatchCmd(v),
		newSlotsCmd(v),
		newPlanCmd(v),
	)

	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}

	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

func location(v *viper.Viper) (*time.Location, error) {
	name := v.GetString("timezone")
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// nowClock фиксирует время, если задан --now, иначе берет системное.
func nowClock(v *viper.Viper) (currentClock, error) {
	raw := v.GetString("now")
	if raw == "" {
		return clock.Real{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("parse --now: %w", err)
	}
	return clock.Fixed(t), nil
}

func fixtureFrom(v *viper.Viper) (*fixture, error) {
	path := v.GetString("fixture")
	if path == "" {
		return nil, errFixtureRequired
	}
	return loadFixture(path)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-artclock/internal/config"
	"github.com/tartampluch/go-artclock/internal/engine"
)

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           config.CmdRoot,
		Short:         config.CmdDescRoot,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runGUI(cmd.Context(), debug); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}
			return nil
		},
	}
	root.SetVersionTemplate(versionLine())
	root.Flags().BoolVar(&debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(phraseCmd(time.Now))
	return root
}

// phraseCmd prints the phrase for HH:MM, or for the current time in --tz.
func phraseCmd(now func() time.Time) *cobra.Command {
	var style, tz string

	cmd := &cobra.Command{
		Use:   config.CmdPhrase,
		Short: config.CmdDescPhrase,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := engine.PolicyForStyle(style)
			if err != nil {
				return err
			}

			hour, minute, err := resolveClock(args, tz, now())
			if err != nil {
				return err
			}

			p, err := engine.NewTimePhrase(hour, minute, policy)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Text)
			return err
		},
	}
	cmd.Flags().StringVar(&style, config.FlagStyle, config.DefaultStyle, config.FlagDescStyle)
	cmd.Flags().StringVar(&tz, config.FlagTZ, "", config.FlagDescTZ)
	return cmd
}

// resolveClock parses an optional HH:MM argument, falling back to now in zone tz
// (or the local zone when tz is empty).
func resolveClock(args []string, tz string, now time.Time) (int, int, error) {
	if len(args) == 1 {
		t, err := time.Parse(config.FormatClockArg, args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%s: %w", config.ErrInvalidClockArg, err)
		}
		return t.Hour(), t.Minute(), nil
	}

	loc := time.Local
	if tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return 0, 0, fmt.Errorf("%s: %w", config.ErrTimezone, err)
		}
	}
	local := now.In(loc)
	return local.Hour(), local.Minute(), nil
}

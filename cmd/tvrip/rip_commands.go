package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvrip/internal/database"
	"tvrip/internal/disc"
	"tvrip/internal/ripping"
)

func newRipCommand(ctx *commandContext) *cobra.Command {
	var ejectAfter bool
	cmd := &cobra.Command{
		Use:   "rip",
		Short: "Rip the pending mapping to per-episode files",
		Long: "Rip transcodes every mapped episode from the scanned disc into the " +
			"target directory, named from the configured template, and records " +
			"where each episode came from. The pending mapping is consumed on " +
			"success.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, session, episodes, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}
			d, err := requireDisc(session)
			if err != nil {
				return err
			}
			if len(session.Mapping) == 0 {
				return errors.New("no pending mapping; run `tvrip automap` or `tvrip map` first")
			}

			ripper, err := ripping.NewRipper(cfg, store, ctx.ensureLogger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ripping %d episodes from %q to %s\n",
				len(session.Mapping), d.Name, cfg.Paths.Target)
			if err := ripper.RipMapped(cmd.Context(), d, episodes, session.Mapping); err != nil {
				return err
			}

			session.Mapping = nil
			if ejectAfter {
				session.SetDisc(nil)
			}
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			if ejectAfter {
				if err := disc.Eject(cmd.Context(), cfg.Binaries.Eject, cfg.Paths.Source); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Done")
			return nil
		},
	}
	cmd.Flags().BoolVar(&ejectAfter, "eject", false, "Eject the disc when ripping finishes")
	return cmd
}

func newUnripCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unrip <episode>",
		Short: "Forget that an episode was ripped so it can be ripped again",
		Long: "Unrip clears the recorded disc provenance of one episode. The file " +
			"already written to the target directory is left alone.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid episode %q", args[0])
			}
			store, session, _, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Unrip(cmd.Context(), session.Program, session.Season, number); err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return fmt.Errorf("%s season %d has no episode %d", session.Program, session.Season, number)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s season %d episode %d marked unripped\n",
				session.Program, session.Season, number)
			return nil
		},
	}
}

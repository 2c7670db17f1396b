package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvrip/internal/database"
	"tvrip/internal/disc"
	"tvrip/internal/services/vlc"
)

// requireDisc returns the disc recorded by the last scan.
func requireDisc(session *database.Session) (*disc.Disc, error) {
	d := session.Disc()
	if d == nil {
		return nil, errors.New("no disc scanned; run `tvrip scan` first")
	}
	return d, nil
}

func newDiscCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "disc",
		Aliases: []string{"titles"},
		Short:   "Show the last scanned disc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			d, err := requireDisc(session)
			if err != nil {
				return err
			}
			printDisc(cmd.OutOrStdout(), d)
			if len(session.Mapping) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nPending mapping:")
				printMapping(cmd.OutOrStdout(), session.Mapping)
			}
			return nil
		},
	}
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play [title[.chapter]]",
		Short: "Play the disc, a title, or a chapter with VLC",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			_, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			d, err := requireDisc(session)
			if err != nil {
				return err
			}

			title, chapter := 0, 0
			if len(args) == 1 {
				if title, chapter, err = parseTitleChapter(args[0]); err != nil {
					return err
				}
				if _, ok := d.Title(title); !ok {
					return fmt.Errorf("disc has no title %d", title)
				}
			}

			player, err := vlc.New(cfg.Binaries.VLC)
			if err != nil {
				return err
			}
			return player.Play(cmd.Context(), d.MRL(cfg.Paths.Source, title, chapter))
		},
	}
}

func newEjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eject",
		Short: "Eject the disc and forget the scanned state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			if session.Disc() != nil {
				session.SetDisc(nil)
				session.Mapping = nil
				if err := store.SaveSession(cmd.Context(), session); err != nil {
					return err
				}
			}
			return disc.Eject(cmd.Context(), cfg.Binaries.Eject, cfg.Paths.Source)
		},
	}
}

func newDuplicateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <first-title> [<last-title>]",
		Short: "Manually mark a run of titles as duplicates of each other",
		Long: "Duplicate overrides the scanner's duration heuristic. Marking a " +
			"single title clears its duplicate state; marking a range tags the " +
			"whole run so the duplicates policy applies to it.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			d, err := requireDisc(session)
			if err != nil {
				return err
			}

			first, err := strconv.Atoi(args[0])
			if err != nil || first < 1 {
				return fmt.Errorf("invalid title %q", args[0])
			}
			last := first
			if len(args) == 2 {
				if last, err = strconv.Atoi(args[1]); err != nil || last < first {
					return fmt.Errorf("invalid title %q", args[1])
				}
			}
			for _, number := range []int{first, last} {
				if _, ok := d.Title(number); !ok {
					return fmt.Errorf("disc has no title %d", number)
				}
			}

			disc.MarkDuplicateRun(d.Titles, first, last)
			session.SetDisc(d)
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			printDisc(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

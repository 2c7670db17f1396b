package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"tvrip/internal/database"
	"tvrip/internal/episodemap"
	"tvrip/internal/ripping"
)

func printMapping(out io.Writer, mapping episodemap.Mapping) {
	rows := make([][]string, 0, len(mapping))
	for _, assignment := range mapping {
		rows = append(rows, []string{
			strconv.Itoa(assignment.Episode.Number),
			assignment.Episode.Name,
			assignment.Target.String(),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Episode", "Name", "Target"}, rows, 1))
}

func newAutomapCommand(ctx *commandContext) *cobra.Command {
	var (
		strict      bool
		noMultipart bool
	)
	cmd := &cobra.Command{
		Use:   "automap",
		Short: "Map the scanned disc's titles onto the season's unripped episodes",
		Long: "Automap first tries to line the disc's titles up with the remaining " +
			"episodes one to one, allowing a long title to absorb a multi-part " +
			"episode. Failing that it searches the longest title for chapter runs " +
			"matching the episode duration window, asking you to confirm chapter " +
			"starts when more than one arrangement fits. The resulting mapping is " +
			"kept for `tvrip rip`.",
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

			oracle, err := newOracle(cmd.Context(), cfg, d, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			mapping, err := episodemap.Automap(ripping.UnrippedTitles(d, episodes), database.Snapshot(episodes), cfg.Window(), episodemap.Options{
				Policy:           cfg.DuplicatePolicy(),
				Strict:           strict,
				DisableMultipart: noMultipart,
				Ask:              oracle,
			})
			switch {
			case errors.Is(err, episodemap.ErrNoEpisodes):
				return fmt.Errorf("nothing to map: every episode of %s season %d is already ripped",
					session.Program, session.Season)
			case errors.Is(err, episodemap.ErrOracleUnavailable):
				return errors.New("mapping is ambiguous; re-run automap from an interactive terminal to disambiguate")
			case err != nil:
				return err
			}

			session.Mapping = mapping
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %d episodes of %s season %d:\n",
				len(mapping), session.Program, session.Season)
			printMapping(cmd.OutOrStdout(), mapping)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail unless every unripped episode is mapped")
	cmd.Flags().BoolVar(&noMultipart, "no-multipart", false, "Never map one title to several episodes")
	return cmd
}

func newMapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "map <episode> <title[.start[-end]]>",
		Short: "Manually map one episode to a title or chapter range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid episode %q", args[0])
			}
			target, err := parseTarget(args[1])
			if err != nil {
				return err
			}

			store, session, _, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}
			d, err := requireDisc(session)
			if err != nil {
				return err
			}
			title, ok := d.Title(target.Title)
			if !ok {
				return fmt.Errorf("disc has no title %d", target.Title)
			}
			if !target.WholeTitle() && target.EndChapter > len(title.Chapters) {
				return fmt.Errorf("title %d has only %d chapters", title.Number, len(title.Chapters))
			}

			episode, err := store.Episode(cmd.Context(), session.Program, session.Season, number)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return fmt.Errorf("%s season %d has no episode %d", session.Program, session.Season, number)
				}
				return err
			}

			assignment := episodemap.Assignment{
				Episode: episodemap.Episode{Number: episode.Number, Name: episode.Name, Ripped: episode.Ripped()},
				Target:  target,
			}
			mapping := session.Mapping[:0]
			for _, existing := range session.Mapping {
				if existing.Episode.Number != number {
					mapping = append(mapping, existing)
				}
			}
			mapping = append(mapping, assignment)
			sort.Slice(mapping, func(i, j int) bool {
				return mapping[i].Episode.Number < mapping[j].Episode.Number
			})

			session.Mapping = mapping
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			printMapping(cmd.OutOrStdout(), session.Mapping)
			return nil
		},
	}
}

func newUnmapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmap [episode]",
		Short: "Drop the pending mapping, or one episode from it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			if len(session.Mapping) == 0 {
				return errors.New("no pending mapping")
			}

			if len(args) == 0 {
				session.Mapping = nil
			} else {
				number, err := strconv.Atoi(args[0])
				if err != nil || number < 1 {
					return fmt.Errorf("invalid episode %q", args[0])
				}
				mapping := session.Mapping[:0]
				found := false
				for _, assignment := range session.Mapping {
					if assignment.Episode.Number == number {
						found = true
						continue
					}
					mapping = append(mapping, assignment)
				}
				if !found {
					return fmt.Errorf("episode %d is not mapped", number)
				}
				session.Mapping = mapping
			}

			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			if len(session.Mapping) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Mapping cleared")
				return nil
			}
			printMapping(cmd.OutOrStdout(), session.Mapping)
			return nil
		},
	}
}

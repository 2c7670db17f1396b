package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tvrip/internal/tvdb"
)

func newProgramsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List all known programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			programs, err := store.Programs(cmd.Context())
			if err != nil {
				return err
			}
			if len(programs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No programs defined yet; run `tvrip program <name>` to add one.")
				return nil
			}
			rows := make([][]string, 0, len(programs))
			for _, p := range programs {
				rows = append(rows, []string{
					p.Name,
					strconv.Itoa(p.Seasons),
					strconv.Itoa(p.Episodes),
					strconv.Itoa(p.Ripped),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Program", "Seasons", "Episodes", "Ripped"}, rows, 2, 3, 4))
			return nil
		},
	}
}

func newProgramCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "program <name>",
		Short: "Select (creating if needed) the program to work on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := normalizeName(strings.Join(args, " "))
			if name == "" {
				return errors.New("program name must not be empty")
			}
			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.AddProgram(cmd.Context(), name); err != nil {
				return err
			}
			if err := store.AddSeason(cmd.Context(), name, 1); err != nil {
				return err
			}
			session.Program = name
			if session.Season < 1 {
				session.Season = 1
			}
			seasons, err := store.Seasons(cmd.Context(), name)
			if err != nil {
				return err
			}
			known := false
			for _, s := range seasons {
				if s.Number == session.Season {
					known = true
					break
				}
			}
			if !known {
				session.Season = 1
			}
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Working on %s season %d\n", session.Program, session.Season)
			return nil
		},
	}
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List the selected program's seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			if session.Program == "" {
				return errors.New("no program selected; run `tvrip program <name>` first")
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			seasons, err := store.Seasons(cmd.Context(), session.Program)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(seasons))
			for _, s := range seasons {
				marker := ""
				if s.Number == session.Season {
					marker = "*"
				}
				rows = append(rows, []string{
					marker,
					strconv.Itoa(s.Number),
					strconv.Itoa(s.Episodes),
					strconv.Itoa(s.Ripped),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Season", "Episodes", "Ripped"}, rows, 2, 3, 4))
			return nil
		},
	}
}

func newSeasonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "season <number>",
		Short: "Select (creating if needed) the season to work on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 0 {
				return fmt.Errorf("invalid season %q", args[0])
			}
			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			if session.Program == "" {
				return errors.New("no program selected; run `tvrip program <name>` first")
			}
			if err := store.AddSeason(cmd.Context(), session.Program, number); err != nil {
				return err
			}
			session.Season = number
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Working on %s season %d\n", session.Program, session.Season)
			return nil
		},
	}
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes",
		Short: "List the selected season's episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, episodes, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}
			if len(episodes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(),
					"No episodes for %s season %d; run `tvrip fetch` or `tvrip episode` to add them.\n",
					session.Program, session.Season)
				return nil
			}
			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				ripped := ""
				if ep.Ripped() {
					ripped = "✓"
				}
				rows = append(rows, []string{strconv.Itoa(ep.Number), ep.Name, ripped})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s season %d:\n", session.Program, session.Season)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Episode", "Name", "Ripped"}, rows, 1))
			return nil
		},
	}
}

func newEpisodeCommand(ctx *commandContext) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "episode <number> [name...]",
		Short: "Name a single episode in the selected season",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid episode %q", args[0])
			}
			store, session, _, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}
			if remove {
				if len(args) > 1 {
					return errors.New("--delete takes no episode name")
				}
				if err := store.ClearEpisodes(cmd.Context(), session.Program, session.Season); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared episodes of %s season %d\n",
					session.Program, session.Season)
				return nil
			}
			name := normalizeName(strings.Join(args[1:], " "))
			if name == "" {
				return errors.New("episode name must not be empty")
			}
			if err := store.SetEpisode(cmd.Context(), session.Program, session.Season, number, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s season %d episode %d is %q\n",
				session.Program, session.Season, number, name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete all episodes of the selected season instead")
	return cmd
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var seriesID int
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the selected season's episode names from TheTVDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.TVDB.APIKey == "" {
				return errors.New("no TVDB API key configured; set tvdb.api_key or TVDB_API_KEY")
			}
			store, session, _, err := ctx.currentSeason(cmd.Context())
			if err != nil {
				return err
			}

			client := tvdb.New(cfg.TVDB.APIKey,
				tvdb.WithBaseURL(cfg.TVDB.BaseURL),
				tvdb.WithLogger(ctx.ensureLogger()))

			if seriesID == 0 {
				results, err := client.Search(cmd.Context(), session.Program)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("no TVDB series found for %q", session.Program)
				}
				seriesID = results[0].ID
				if len(results) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "Multiple matches for %q; using %q (%d). Pass --series to override:\n",
						session.Program, results[0].Name, results[0].ID)
					for _, r := range results {
						fmt.Fprintf(cmd.OutOrStdout(), "  %7d  %s (%d)\n", r.ID, r.Name, r.Year)
					}
				}
			}

			names, err := client.SeasonEpisodeNames(cmd.Context(), seriesID, session.Season)
			if err != nil {
				if errors.Is(err, tvdb.ErrNotFound) {
					return fmt.Errorf("TVDB has no episodes for %s season %d", session.Program, session.Season)
				}
				return err
			}
			for i, name := range names {
				names[i] = normalizeName(name)
			}
			if err := store.ReplaceEpisodes(cmd.Context(), session.Program, session.Season, names); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d episodes for %s season %d:\n",
				len(names), session.Program, session.Season)
			rows := make([][]string, 0, len(names))
			for i, name := range names {
				rows = append(rows, []string{strconv.Itoa(i + 1), name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Episode", "Name"}, rows, 1))
			return nil
		},
	}
	cmd.Flags().IntVar(&seriesID, "series", 0, "TVDB series id (skips the name search)")
	return cmd
}

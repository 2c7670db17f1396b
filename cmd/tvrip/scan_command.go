package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tvrip/internal/disc"
	"tvrip/internal/episodemap"
	"tvrip/internal/ripping"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the disc in the configured drive",
		Long: "Scan reads the table of contents of the inserted disc, remembers it " +
			"for subsequent map and rip commands, and reports any episodes of the " +
			"current season that were already ripped from this disc.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			if wait {
				fmt.Fprintf(cmd.OutOrStdout(), "Waiting for a disc in %s...\n", cfg.Paths.Source)
				if err := disc.WaitForDisc(cmd.Context(), cfg.Paths.Source, logger); err != nil {
					return err
				}
			}

			opts := []disc.ScannerOption{disc.WithLogger(logger)}
			if !cfg.Ripping.DVDNav {
				opts = append(opts, disc.WithoutDVDNav())
			}
			scanner := disc.NewScanner(cfg.Binaries.HandBrake, cfg.Ripping.ScanMinDuration, opts...)

			scanned, err := scanner.Scan(cmd.Context(), cfg.Paths.Source)
			if err != nil {
				return err
			}

			store, session, err := ctx.session(cmd.Context())
			if err != nil {
				return err
			}
			session.SetDisc(scanned)
			session.Mapping = nil
			if err := store.SaveSession(cmd.Context(), session); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printDisc(out, scanned)

			// Report episodes already ripped from this disc so a re-inserted
			// disc shows where it left off.
			if session.Program != "" {
				episodes, err := store.Episodes(cmd.Context(), session.Program, session.Season)
				if err != nil {
					return err
				}
				if ripped := ripping.RippedMapping(scanned, episodes); len(ripped) > 0 {
					fmt.Fprintf(out, "\nAlready ripped from this disc (%s season %d):\n",
						session.Program, session.Season)
					printMapping(out, ripped)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for a disc to be inserted before scanning")
	return cmd
}

func printDisc(out io.Writer, d *disc.Disc) {
	fmt.Fprintf(out, "%s %q (serial %s, ident %s)\n", d.Type, d.Name, d.Serial, d.Ident)

	rows := make([][]string, 0, len(d.Titles))
	for _, title := range d.Titles {
		audio := ""
		for i, track := range title.AudioTracks {
			if i > 0 {
				audio += ", "
			}
			audio += track.Name
		}
		duplicate := ""
		if title.Duplicate != "" && title.Duplicate != episodemap.DuplicateNone {
			duplicate = string(title.Duplicate)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", title.Number),
			formatDuration(title.Duration),
			fmt.Sprintf("%d", len(title.Chapters)),
			audio,
			duplicate,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Title", "Duration", "Chapters", "Audio", "Duplicate"}, rows, 1, 2, 3))
}

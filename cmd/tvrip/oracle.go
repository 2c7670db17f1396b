package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"tvrip/internal/config"
	"tvrip/internal/disc"
	"tvrip/internal/episodemap"
	"tvrip/internal/services/vlc"
)

var errOracleAborted = errors.New("mapping aborted")

// newOracle builds the interactive disambiguation callback used when
// chapter matching finds more than one solution. Each question plays the
// chapter in VLC and asks whether it starts the named episode; the answer
// prunes the remaining solutions. Without a terminal on stdin there is
// nobody to ask, so a nil oracle is returned and ambiguity becomes an error
// instead of a guess.
func newOracle(ctx context.Context, cfg *config.Config, d *disc.Disc, in io.Reader, out io.Writer) (episodemap.AskFunc, error) {
	if file, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
			return nil, nil
		}
	}

	player, err := vlc.New(cfg.Binaries.VLC)
	if err != nil {
		return nil, err
	}
	reader := bufio.NewReader(in)

	return func(ref episodemap.ChapterRef, episode episodemap.Episode) (bool, error) {
		mrl := d.MRL(cfg.Paths.Source, ref.Title, ref.Chapter)
	replay:
		for {
			fmt.Fprintf(out, "Playing title %d chapter %d...\n", ref.Title, ref.Chapter)
			if err := player.Play(ctx, mrl); err != nil {
				return false, err
			}
			for {
				fmt.Fprintf(out, "Is this the start of episode %d %q? [y/n/r=replay/q=quit] ",
					episode.Number, episode.Name)
				line, err := reader.ReadString('\n')
				if err != nil {
					return false, err
				}
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
					return true, nil
				case "n", "no":
					return false, nil
				case "r", "replay":
					continue replay
				case "q", "quit":
					return false, errOracleAborted
				default:
					fmt.Fprintln(out, "Please answer y, n, r, or q.")
				}
			}
		}
	}, nil
}

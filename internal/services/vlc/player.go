// Package vlc plays disc titles and chapters so a mapping can be checked
// by eye before committing a rip.
package vlc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"tvrip/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Run()
}

// Option configures the player.
type Option func(*Player)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(p *Player) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// Player wraps a VLC binary for one-shot MRL playback.
type Player struct {
	binary string
	exec   Executor
}

// New constructs a player around the given VLC binary.
func New(binary string, opts ...Option) (*Player, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("vlc binary required")
	}
	player := &Player{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(player)
	}
	return player, nil
}

// Play opens the MRL in VLC and blocks until the player exits. Hardware
// decoding is disabled because it tends to stall on scratched discs.
func (p *Player) Play(ctx context.Context, mrl string) error {
	if mrl == "" {
		return services.Wrap(services.ErrValidation, "vlc", "play", "mrl required", nil)
	}
	args := []string{"--quiet", "--avcodec-hw", "none", "--play-and-exit", mrl}
	if err := p.exec.Run(ctx, p.binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "vlc", "play",
			fmt.Sprintf("playback of %s", mrl), err)
	}
	return nil
}

package disc

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Eject opens the drive tray by shelling out to the configured eject
// utility, typically after the last episode of a disc has been ripped.
func Eject(ctx context.Context, binary, device string) error {
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "eject"
	}
	args := []string{}
	if device = strings.TrimSpace(device); device != "" {
		args = append(args, device)
	}
	if err := exec.CommandContext(ctx, binary, args...).Run(); err != nil {
		return fmt.Errorf("eject %s: %w", device, err)
	}
	return nil
}

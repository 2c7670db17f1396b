// Package deps checks the external binaries the ripping workflow shells
// out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"tvrip/internal/config"
)

// Requirement defines an external binary tvrip relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries the given configuration would invoke.
// HandBrake is the only hard requirement; playback and eject degrade
// gracefully when their binaries are missing.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "HandBrake", Command: cfg.Binaries.HandBrake, Description: "scans discs and transcodes episodes"},
		{Name: "VLC", Command: cfg.Binaries.VLC, Description: "plays titles and chapters for preview and disambiguation", Optional: true},
		{Name: "eject", Command: cfg.Binaries.Eject, Description: "opens the drive tray", Optional: true},
	}
}

// Check evaluates the requirements and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional binaries.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}

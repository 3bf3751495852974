// Package deps checks the availability of the external binaries wavemill
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"wavemill/internal/config"
)

// Requirement defines an external dependency wavemill relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirements for the configured tool binaries. ffmpeg
// is mandatory for both passes; a missing ffprobe only disables metadata
// extraction.
func Default(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Transcodes audio and applies metadata directives",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Extracts tags and stream info for sidecars",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
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

// MissingRequired returns the first unavailable non-optional status, if any.
func MissingRequired(statuses []Status) (Status, bool) {
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			return status, true
		}
	}
	return Status{}, false
}

// Package pipeline adapts the externally-owned orthomosaic
// processing work to the runner's boundary. The gateway does not
// implement any mosaic computation itself; it invokes the configured
// pipeline command and interprets its exit status.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no pipeline command is set.
var ErrNotConfigured = errors.New("processing command not configured (PIPELINE_CMD)")

// ExecProcessor runs the pipeline command with the project and plot
// ids as arguments. Exit status zero means success.
type ExecProcessor struct {
	command string
	logger  zerolog.Logger
}

func NewExecProcessor(command string, logger zerolog.Logger) *ExecProcessor {
	return &ExecProcessor{command: command, logger: logger}
}

// Process blocks until the pipeline command finishes.
func (p *ExecProcessor) Process(ctx context.Context, projectID, plotID string) (bool, error) {
	if p.command == "" {
		return false, ErrNotConfigured
	}

	p.logger.Info().Str("command", p.command).Str("id_projeto", projectID).Str("id_talhao", plotID).Msg("invoking processing pipeline")

	cmd := exec.CommandContext(ctx, p.command, projectID, plotID)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		p.logger.Debug().Str("output", string(out)).Msg("pipeline output")
	}
	if err != nil {
		return false, fmt.Errorf("pipeline command failed: %w", err)
	}
	return true, nil
}

// Package runner owns the lifecycle of one processing attempt. Each
// accepted request gets exactly one run: a precondition check, a
// started event, the synchronous processing call, and one terminal
// event. Runs never interact with each other; concurrent runs for
// the same project and plot proceed independently.
package runner

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/agroxeque/ortho-gateway/internal/config"
	"github.com/agroxeque/ortho-gateway/internal/models"
	"github.com/agroxeque/ortho-gateway/internal/notify"
)

// ProcessFunc is the externally-owned processing work. The runner
// relies on nothing beyond this signature: any normal return
// completes the run, a returned error fails it.
type ProcessFunc func(ctx context.Context, projectID, plotID string) (bool, error)

// ErrStorageNotConfigured fails a run before any processing when the
// storage backend credentials are missing. The HTTP caller has long
// since received its acknowledgement, so this surfaces only through
// the webhook channel and the process log.
var ErrStorageNotConfigured = errors.New("storage credentials not configured")

type Runner struct {
	cfg      *config.Config
	notifier notify.Notifier
	process  ProcessFunc
	logger   zerolog.Logger
}

func New(cfg *config.Config, notifier notify.Notifier, process ProcessFunc, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		notifier: notifier,
		process:  process,
		logger:   logger,
	}
}

// Run executes one processing attempt to its terminal state. The
// returned error is the run's own failure, re-surfaced so the
// hosting execution context can log it; notification failures are
// never part of it.
func (r *Runner) Run(ctx context.Context, projectID, plotID string) error {
	logger := r.logger.With().Str("id_projeto", projectID).Str("id_talhao", plotID).Logger()
	logger.Info().Msg("starting background processing")

	// Check-then-notify: a run that cannot reach storage fails
	// terminally without ever reporting "iniciado".
	if !r.cfg.StorageConfigured() {
		err := ErrStorageNotConfigured
		logger.Error().Err(err).Msg("run preconditions failed")
		r.notifier.Notify(ctx, models.StatusEvent{
			IDProjeto: projectID,
			IDTalhao:  plotID,
			Status:    models.StatusFailed,
			Mensagem:  err.Error(),
		})
		return err
	}

	r.notifier.Notify(ctx, models.StatusEvent{
		IDProjeto: projectID,
		IDTalhao:  plotID,
		Status:    models.StatusStarted,
	})

	ok, err := r.process(ctx, projectID, plotID)
	if err != nil {
		logger.Error().Err(err).Msg("processing failed")
		r.notifier.Notify(ctx, models.StatusEvent{
			IDProjeto: projectID,
			IDTalhao:  plotID,
			Status:    models.StatusFailed,
			Mensagem:  err.Error(),
		})
		return err
	}

	// A false success flag without an error still completes the
	// run; only a returned error counts as a pipeline failure.
	logger.Info().Bool("sucesso", ok).Msg("processing finished")
	r.notifier.Notify(ctx, models.StatusEvent{
		IDProjeto: projectID,
		IDTalhao:  plotID,
		Status:    models.StatusCompleted,
	})
	return nil
}

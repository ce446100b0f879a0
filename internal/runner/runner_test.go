package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroxeque/ortho-gateway/internal/config"
	"github.com/agroxeque/ortho-gateway/internal/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.StatusEvent
}

func (r *recordingNotifier) Notify(_ context.Context, event models.StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Status
	}
	return out
}

func configuredCfg() *config.Config {
	cfg := config.NewConfig()
	cfg.StorageURL = "https://storage.test"
	cfg.StorageAccessKey = "access"
	cfg.StorageSecretKey = "secret"
	return cfg
}

func TestRunCompletesAndNotifiesInOrder(t *testing.T) {
	sink := &recordingNotifier{}
	r := New(configuredCfg(), sink, func(ctx context.Context, projectID, plotID string) (bool, error) {
		return true, nil
	}, zerolog.Nop())

	err := r.Run(context.Background(), "p1", "t1")
	require.NoError(t, err)

	assert.Equal(t, []string{models.StatusStarted, models.StatusCompleted}, sink.statuses())
	assert.Equal(t, "p1", sink.events[0].IDProjeto)
	assert.Equal(t, "t1", sink.events[0].IDTalhao)
}

func TestRunFailureCarriesErrorMessage(t *testing.T) {
	sink := &recordingNotifier{}
	processErr := errors.New("mosaic stitching blew up")
	r := New(configuredCfg(), sink, func(ctx context.Context, projectID, plotID string) (bool, error) {
		return false, processErr
	}, zerolog.Nop())

	err := r.Run(context.Background(), "p1", "t1")
	require.ErrorIs(t, err, processErr)

	require.Equal(t, []string{models.StatusStarted, models.StatusFailed}, sink.statuses())
	assert.Equal(t, "mosaic stitching blew up", sink.events[1].Mensagem)
}

func TestRunWithoutStorageConfigFailsBeforeStart(t *testing.T) {
	sink := &recordingNotifier{}
	called := false
	r := New(config.NewConfig(), sink, func(ctx context.Context, projectID, plotID string) (bool, error) {
		called = true
		return true, nil
	}, zerolog.Nop())

	err := r.Run(context.Background(), "p1", "t1")
	require.ErrorIs(t, err, ErrStorageNotConfigured)

	assert.False(t, called, "processing must not run without storage credentials")
	require.Equal(t, []string{models.StatusFailed}, sink.statuses(), "no started event on a config failure")
	assert.NotEmpty(t, sink.events[0].Mensagem)
}

func TestRunTreatsFalseReturnAsCompletion(t *testing.T) {
	sink := &recordingNotifier{}
	r := New(configuredCfg(), sink, func(ctx context.Context, projectID, plotID string) (bool, error) {
		return false, nil
	}, zerolog.Nop())

	err := r.Run(context.Background(), "p1", "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{models.StatusStarted, models.StatusCompleted}, sink.statuses())
}

func TestConcurrentRunsAreIndependent(t *testing.T) {
	sink := &recordingNotifier{}
	r := New(configuredCfg(), sink, func(ctx context.Context, projectID, plotID string) (bool, error) {
		return true, nil
	}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Run(context.Background(), "p1", "t1"))
		}()
	}
	wg.Wait()

	statuses := sink.statuses()
	require.Len(t, statuses, 4)

	var started, completed int
	for _, s := range statuses {
		switch s {
		case models.StatusStarted:
			started++
		case models.StatusCompleted:
			completed++
		}
	}
	assert.Equal(t, 2, started)
	assert.Equal(t, 2, completed)
}

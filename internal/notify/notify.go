// Package notify delivers lifecycle status events. Delivery is
// best-effort everywhere: a sink that fails logs the failure and
// must never abort or delay the processing pipeline.
package notify

import (
	"context"

	"github.com/agroxeque/ortho-gateway/internal/models"
)

// Notifier is one status sink. Notify never returns an error.
type Notifier interface {
	Notify(ctx context.Context, event models.StatusEvent)
}

// Fanout delivers each event to every sink in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, event models.StatusEvent) {
	for _, n := range f {
		n.Notify(ctx, event)
	}
}

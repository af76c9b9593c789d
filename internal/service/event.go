package service

import (
	"bytes"
	"context"
	"io"

	"github.com/kubev2v/profit-planner/internal/events"
	"go.uber.org/zap"
)

// EventWriter queues domain events. *events.EventProducer implements it.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

var _ EventWriter = (*events.EventProducer)(nil)

// pushEvent never fails the caller: a lost event is only logged.
func pushEvent(ctx context.Context, w EventWriter, e events.Event) {
	if w == nil {
		return
	}

	data, err := events.Marshal(e)
	if err != nil {
		zap.S().Named("service").Errorw("failed to marshal event", "error", err, "event_kind", e.Kind())
		return
	}

	if err := w.Write(ctx, e.Kind(), bytes.NewBuffer(data)); err != nil {
		zap.S().Named("service").Errorw("failed to write event", "error", err, "event_kind", e.Kind())
	}
}

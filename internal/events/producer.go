package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	EstimationMessageKind string = "profit.planner.events.estimation"
	DatasetMessageKind    string = "profit.planner.events.dataset"
	DefaultTopic          string = "profit.planner.events"
	DefaultSource         string = "profit.planner"
)

// ErrProducerClosed is returned by Write once Close has been called.
var ErrProducerClosed = errors.New("event producer is closed")

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer is a wrapper around a Writer with the buffer.
// Events are queued so the caller is never blocked by a slow writer.
type EventProducer struct {
	buffer *buffer
	wakeCh chan struct{}
	doneCh chan struct{}
	exitCh chan struct{}
	writer Writer
	topic  string
	source string

	// closed is held for reading by Write so no event is queued after Close starts draining
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer: newBuffer(defaultBufferCapacity),
		wakeCh: make(chan struct{}, 1),
		doneCh: make(chan struct{}),
		exitCh: make(chan struct{}),
		writer: w,
		topic:  DefaultTopic,
		source: DefaultSource,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

func (ep *EventProducer) Write(ctx context.Context, kind string, body io.Reader) error {
	d, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	ep.mu.RLock()
	defer ep.mu.RUnlock()
	if ep.closed {
		return ErrProducerClosed
	}

	if evicted := ep.buffer.PushBack(&message{Kind: kind, Data: d}); evicted {
		zap.S().Named("event_producer").Warnw("event buffer full, oldest event dropped", "dropped_total", ep.buffer.Dropped())
	}

	// wake the consumer; a pending signal is enough
	select {
	case ep.wakeCh <- struct{}{}:
	default:
	}

	return nil
}

// Close stops the producer after the queued events are written, then closes the writer.
// Only the first call does the work; later calls return its result.
func (ep *EventProducer) Close() error {
	ep.closeOnce.Do(func() {
		ep.mu.Lock()
		ep.closed = true
		ep.mu.Unlock()

		ep.closeErr = ep.shutdown()
	})
	return ep.closeErr
}

func (ep *EventProducer) shutdown() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		close(ep.doneCh)
		select {
		case <-ep.exitCh:
		case <-ctx.Done():
			return ctx.Err()
		}
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event_producer").Info("event producer closed")
	return nil
}

func (ep *EventProducer) run() {
	defer close(ep.exitCh)

	for {
		for msg := ep.buffer.Pop(); msg != nil; msg = ep.buffer.Pop() {
			ep.send(msg)
		}

		select {
		case <-ep.wakeCh:
		case <-ep.doneCh:
			for msg := ep.buffer.Pop(); msg != nil; msg = ep.buffer.Pop() {
				ep.send(msg)
			}
			return
		}
	}
}

func (ep *EventProducer) send(msg *message) {
	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetSource(ep.source)
	e.SetType(msg.Kind)
	e.SetTime(time.Now())
	_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

	if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
		zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event", e)
	}
}

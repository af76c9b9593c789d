package events

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// StdoutWriter prints every event as one structured-mode CloudEvents JSON line.
type StdoutWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdoutWriter writes to out, or to os.Stdout when out is nil.
func NewStdoutWriter(out io.Writer) *StdoutWriter {
	if out == nil {
		out = os.Stdout
	}
	return &StdoutWriter{out: out}
}

func (s *StdoutWriter) Write(_ context.Context, topic string, e cloudevents.Event) error {
	line, err := json.Marshal(struct {
		Topic string            `json:"topic"`
		Event cloudevents.Event `json:"event"`
	}{Topic: topic, Event: e})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(append(line, '\n'))
	return err
}

func (s *StdoutWriter) Close(_ context.Context) error {
	return nil
}

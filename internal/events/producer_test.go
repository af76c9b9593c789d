package events

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", func() {
	It("writes events in order", func() {
		w := newTestWriter()
		p := NewEventProducer(w, WithOutputTopic("profit"))

		Expect(p.Write(context.TODO(), EstimationMessageKind, bytes.NewReader([]byte(`{"mode":"pure_ml"}`)))).To(Succeed())
		Expect(p.Write(context.TODO(), DatasetMessageKind, bytes.NewReader([]byte(`{"records":3}`)))).To(Succeed())

		Eventually(w.Len).Should(Equal(2))

		events := w.Events()
		Expect(events[0].Type()).To(Equal(EstimationMessageKind))
		Expect(events[0].Source()).To(Equal("profit.planner"))
		Expect(string(events[0].Data())).To(Equal(`{"mode":"pure_ml"}`))
		Expect(events[1].Type()).To(Equal(DatasetMessageKind))
		Expect(w.Topics()).To(ConsistOf("profit", "profit"))

		Expect(p.Close()).To(Succeed())
		Expect(w.closed).To(BeTrue())
	})

	It("flushes queued events on close", func() {
		w := newTestWriter()
		p := NewEventProducer(w)

		for i := 0; i < 10; i++ {
			Expect(p.Write(context.TODO(), EstimationMessageKind, bytes.NewReader([]byte("{}")))).To(Succeed())
		}
		Expect(p.Close()).To(Succeed())

		Expect(w.Len()).To(Equal(10))
	})
})

var _ = Describe("producer lifecycle", func() {
	It("can be closed more than once", func() {
		w := newTestWriter()
		p := NewEventProducer(w)

		Expect(p.Write(context.TODO(), EstimationMessageKind, bytes.NewReader([]byte("{}")))).To(Succeed())
		Expect(p.Close()).To(Succeed())
		Expect(p.Close()).To(Succeed())
		Expect(w.Len()).To(Equal(1))
	})

	It("rejects writes after close", func() {
		w := newTestWriter()
		p := NewEventProducer(w)
		Expect(p.Close()).To(Succeed())

		err := p.Write(context.TODO(), DatasetMessageKind, bytes.NewReader([]byte(`{"records":1}`)))
		Expect(err).To(MatchError(ErrProducerClosed))
		Expect(p.buffer.Size()).To(Equal(0))
		Expect(w.Len()).To(Equal(0))
	})
})

var _ = Describe("stdout writer", func() {
	It("prints one json line per event", func() {
		out := &bytes.Buffer{}
		p := NewEventProducer(NewStdoutWriter(out), WithSource("profit.test"), WithBufferCapacity(8))

		Expect(p.Write(context.TODO(), DatasetMessageKind, bytes.NewReader([]byte(`{"records":3}`)))).To(Succeed())
		Expect(p.Close()).To(Succeed())

		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		Expect(lines).To(HaveLen(1))

		var line struct {
			Topic string            `json:"topic"`
			Event cloudevents.Event `json:"event"`
		}
		Expect(json.Unmarshal(lines[0], &line)).To(Succeed())
		Expect(line.Topic).To(Equal(DefaultTopic))
		Expect(line.Event.Source()).To(Equal("profit.test"))
		Expect(line.Event.Type()).To(Equal(DatasetMessageKind))
		Expect(string(line.Event.Data())).To(MatchJSON(`{"records":3}`))
	})
})

var _ = Describe("models", func() {
	It("marshals the dataset event", func() {
		e := DatasetEvent{Source: "sales.csv", Records: 3}
		Expect(e.Kind()).To(Equal(DatasetMessageKind))

		data, err := Marshal(e)
		Expect(err).To(BeNil())

		var decoded map[string]any
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded).To(HaveKeyWithValue("source", "sales.csv"))
		Expect(decoded).To(HaveKeyWithValue("records", BeNumerically("==", 3)))
	})
})

type testwriter struct {
	mu     sync.Mutex
	events []cloudevents.Event
	topics []string
	closed bool
}

func newTestWriter() *testwriter {
	return &testwriter{}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	t.closed = true
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

func (t *testwriter) Events() []cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]cloudevents.Event(nil), t.events...)
}

func (t *testwriter) Topics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.topics...)
}

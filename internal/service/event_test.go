package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/events"
	"github.com/kubev2v/profit-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordedEvent struct {
	kind string
	data []byte
}

type testEventWriter struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (t *testEventWriter) Write(ctx context.Context, kind string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, recordedEvent{kind: kind, data: data})
	return nil
}

var _ = Describe("events", func() {
	var (
		ctx    context.Context
		writer *testEventWriter
	)

	BeforeEach(func() {
		ctx = context.Background()
		writer = &testEventWriter{}
	})

	It("publishes an estimation event", func() {
		srv := service.NewProfitService(fixedPredictor(9000, nil)).WithEventWriter(writer)
		input := estimation.SimulatorInput{UnitsSold: 1000, SalePrice: 20, ManufacturingPrice: 12, Discount: 500, Month: 6}

		_, err := srv.Estimate(ctx, input, estimation.ModeBusinessAdjusted)
		Expect(err).To(BeNil())

		Expect(writer.events).To(HaveLen(1))
		Expect(writer.events[0].kind).To(Equal(events.EstimationMessageKind))

		var e events.EstimationEvent
		Expect(json.Unmarshal(writer.events[0].data, &e)).To(Succeed())
		Expect(e.Mode).To(Equal("business_adjusted"))
		Expect(e.Profit).To(Equal(7500.0))
		Expect(e.MLProfit).To(Equal(9000.0))
		Expect(e.Month).To(Equal(6))
	})

	It("publishes nothing when the estimation fails", func() {
		srv := service.NewProfitService(fixedPredictor(0, errors.New("down"))).WithEventWriter(writer)
		input := estimation.SimulatorInput{UnitsSold: 1, SalePrice: 2, ManufacturingPrice: 1, Month: 1}

		_, err := srv.Estimate(ctx, input, estimation.ModePureML)
		Expect(err).NotTo(BeNil())
		Expect(writer.events).To(BeEmpty())
	})

	It("publishes a dataset event after an import", func() {
		srv := service.NewDashboardService(NewMockStore()).WithEventWriter(writer)

		n, err := srv.UploadDataset(ctx, "upload.csv", strings.NewReader(salesCSV))
		Expect(err).To(BeNil())
		Expect(n).To(Equal(int64(2)))

		Expect(writer.events).To(HaveLen(1))
		Expect(writer.events[0].kind).To(Equal(events.DatasetMessageKind))

		var e events.DatasetEvent
		Expect(json.Unmarshal(writer.events[0].data, &e)).To(Succeed())
		Expect(e).To(Equal(events.DatasetEvent{Source: "upload.csv", Records: 2}))
	})

	It("works with the event producer", func() {
		out := &bytes.Buffer{}
		producer := events.NewEventProducer(events.NewStdoutWriter(out), events.WithOutputTopic("profit"))
		srv := service.NewProfitService(fixedPredictor(1, nil)).WithEventWriter(producer)
		input := estimation.SimulatorInput{UnitsSold: 1, SalePrice: 2, ManufacturingPrice: 1, Month: 1}

		_, err := srv.Estimate(ctx, input, estimation.ModePureML)
		Expect(err).To(BeNil())
		Expect(producer.Close()).To(Succeed())

		var line struct {
			Topic string         `json:"topic"`
			Event map[string]any `json:"event"`
		}
		Expect(json.Unmarshal(out.Bytes(), &line)).To(Succeed())
		Expect(line.Topic).To(Equal("profit"))
		Expect(line.Event).To(HaveKeyWithValue("type", events.EstimationMessageKind))
		Expect(line.Event).To(HaveKeyWithValue("source", events.DefaultSource))
	})
})

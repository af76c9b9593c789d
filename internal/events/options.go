package events

type ProducerOptions func(e *EventProducer)

// WithOutputTopic sets the topic handed to the Writer.
func WithOutputTopic(topic string) ProducerOptions {
	return func(e *EventProducer) {
		if topic != "" {
			e.topic = topic
		}
	}
}

// WithSource sets the CloudEvents source attribute.
func WithSource(source string) ProducerOptions {
	return func(e *EventProducer) {
		if source != "" {
			e.source = source
		}
	}
}

// WithBufferCapacity bounds the number of events waiting for the writer.
func WithBufferCapacity(capacity int) ProducerOptions {
	return func(e *EventProducer) {
		e.buffer = newBuffer(capacity)
	}
}

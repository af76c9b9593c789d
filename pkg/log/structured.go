package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/profit-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger logs the steps of a named operation with a consistent set of fields.
//
//	tracer := log.NewDebugLogger("profit_service").
//		WithContext(ctx).
//		Operation("estimate_profit").
//		WithString("mode", "pure_ml").
//		Build()
//	tracer.Step("derived_features").WithFloat("unit_margin", 8).Log()
//	tracer.Success().Log()
type StructuredLogger struct {
	name  string
	level zapcore.Level
	ctx   context.Context
}

// NewDebugLogger returns a StructuredLogger writing steps at debug level.
// The global zap logger is resolved at log time, so it may be created before zap.ReplaceGlobals.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel, ctx: context.Background()}
}

// WithContext returns a copy of the logger bound to ctx; the request id found in ctx is logged.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	cp := *l
	cp.ctx = ctx
	return &cp
}

func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{parent: l, operation: name}
}

func (l *StructuredLogger) base() *zap.Logger {
	return zap.L().Named(l.name)
}

type OperationBuilder struct {
	parent    *StructuredLogger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	fields := []zap.Field{zap.String("operation", b.operation)}
	if id := requestid.FromContext(b.parent.ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	fields = append(fields, b.fields...)

	return &OperationTracer{
		logger: b.parent.base(),
		level:  b.parent.level,
		fields: fields,
		start:  time.Now(),
	}
}

// OperationTracer emits the events of one operation.
type OperationTracer struct {
	logger *zap.Logger
	level  zapcore.Level
	fields []zap.Field
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Event {
	return t.event(t.level, "step", zap.String("step", name))
}

func (t *OperationTracer) Error(err error) *Event {
	return t.event(zapcore.ErrorLevel, "failed", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Success() *Event {
	return t.event(t.level, "completed", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) event(level zapcore.Level, msg string, extra ...zap.Field) *Event {
	fields := make([]zap.Field, 0, len(t.fields)+len(extra))
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return &Event{logger: t.logger, level: level, msg: msg, fields: fields}
}

type Event struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Event) WithString(key, value string) *Event {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Event) WithInt(key string, value int) *Event {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Event) WithFloat(key string, value float64) *Event {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Event) WithUUID(key string, value uuid.UUID) *Event {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Event) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}

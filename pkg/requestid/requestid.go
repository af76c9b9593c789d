package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"

	// Header carries the request id between the CLI, the API server and the model server.
	Header = "X-Request-Id"
)

// Generate creates a new unique request ID
func Generate() string {
	return uuid.New().String()
}

func ToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

// FromContextPtr is FromContext for optional API fields: nil when ctx has no request ID.
func FromContextPtr(ctx context.Context) *string {
	if requestID := FromContext(ctx); requestID != "" {
		return &requestID
	}
	return nil
}

func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}

// Propagate copies the request ID of ctx onto an outgoing request, generating one when ctx has none.
func Propagate(ctx context.Context, req *http.Request) {
	id := FromContext(ctx)
	if id == "" {
		id = Generate()
	}
	req.Header.Set(Header, id)
}

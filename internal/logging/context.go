package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext tags base with the request id carried by ctx, if any.
func FromContext(ctx context.Context, base logrus.FieldLogger) logrus.FieldLogger {
	if id := RequestID(ctx); id != "" {
		return base.WithField("request_id", id)
	}
	return base
}

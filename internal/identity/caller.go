package identity

import (
	"context"
	"slices"
)

// Caller is who is behind a request. The zero value is the anonymous caller.
type Caller struct {
	Subject     string
	Email       string
	Permissions []string
	Machine     bool
}

func Anonymous() Caller {
	return Caller{}
}

func (c Caller) Authenticated() bool {
	return c.Subject != ""
}

func (c Caller) HasPermission(scope string) bool {
	return c.Authenticated() && slices.Contains(c.Permissions, scope)
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext returns the caller stored by WithCaller, or the anonymous caller.
func FromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Anonymous()
}

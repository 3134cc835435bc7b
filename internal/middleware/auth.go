package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
)

const ContextCaller = "caller"

// CallerResolver turns an Authorization header into a caller.
type CallerResolver interface {
	Build(ctx context.Context, authorization string) identity.Caller
}

// CallerMiddleware attaches the caller to the request. It never rejects a
// request; protected fields and mutations refuse anonymous callers later.
func CallerMiddleware(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := resolver.Build(c.Request.Context(), c.GetHeader("Authorization"))

		c.Set(ContextCaller, caller)
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))

		c.Next()
	}
}

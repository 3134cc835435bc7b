package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tailor-inc/graphql"
	"github.com/tailor-inc/graphql/language/ast"
	"github.com/tailor-inc/graphql/language/parser"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/authz"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/metrics"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type GraphQLHandler struct {
	schema  graphql.Schema
	metrics metrics.GraphQLMetrics
	logger  logrus.FieldLogger

	// rootFields bounds the operation metric label to the schema's entry points.
	rootFields map[string]bool
}

func NewGraphQLHandler(
	schema graphql.Schema,
	m metrics.GraphQLMetrics,
	logger logrus.FieldLogger,
) *GraphQLHandler {
	rootFields := make(map[string]bool)
	for _, root := range []*graphql.Object{schema.QueryType(), schema.MutationType()} {
		if root == nil {
			continue
		}
		for name := range root.Fields() {
			rootFields[name] = true
		}
	}

	return &GraphQLHandler{
		schema:     schema,
		metrics:    m,
		logger:     logger,
		rootFields: rootFields,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

////////////////////////////////////////////////////////
// EXECUTE
////////////////////////////////////////////////////////

// Serve runs one GraphQL operation. Execution errors are reported inside the
// GraphQL response with status 200; only an unreadable body is a 400.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Body must be a JSON object with a query.")
		return
	}

	ctx := authz.WithOwnerMemo(c.Request.Context())

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	outcome := "ok"
	if result.HasErrors() {
		outcome = "error"
		logging.FromContext(ctx, h.logger).
			WithField("operation", req.OperationName).
			WithField("errors", len(result.Errors)).
			Debug("graphql operation returned errors")
	}
	h.metrics.ObserveOperation(h.operationLabel(req.Query, req.OperationName), outcome, time.Since(start))

	c.JSON(http.StatusOK, result)
}

// operationLabel names an operation by the first root field it selects.
// Client-chosen operation names never become label values.
func (h *GraphQLHandler) operationLabel(query, operationName string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return "other"
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.SelectionSet == nil {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		for _, sel := range op.SelectionSet.Selections {
			if field, ok := sel.(*ast.Field); ok && field.Name != nil && h.rootFields[field.Name.Value] {
				return field.Name.Value
			}
		}
		break
	}
	return "other"
}

package graph

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
)

// Argument maps come from the executor already coerced to the declared
// types, so the assertions below only distinguish present from absent.

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func optString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt(args map[string]interface{}, key string) *int {
	n, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func inputArg(args map[string]interface{}) map[string]interface{} {
	in, _ := args["input"].(map[string]interface{})
	if in == nil {
		return map[string]interface{}{}
	}
	return in
}

func nameArg(args map[string]interface{}) *models.Name {
	raw, ok := args["name"].(map[string]interface{})
	if !ok {
		return nil
	}
	return &models.Name{
		First: strings.TrimSpace(stringArg(raw, "first")),
		Last:  strings.TrimSpace(stringArg(raw, "last")),
	}
}

func instantArg(args map[string]interface{}, key string) (*time.Time, error) {
	s, ok := args[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := timezone.ParseInstant(s)
	if err != nil {
		return nil, httperr.ErrInvalidInput("%s must be an ISO-8601 timestamp", key)
	}
	return &t, nil
}

// objectIDs converts wire ids back to storage ids, skipping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

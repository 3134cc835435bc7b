package audit

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

// Logger writes events as rows of the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	return l.db.WithContext(ctx).Create(Row(ev)).Error
}

// Row converts an event into its table row. Metadata that cannot be encoded
// is left empty.
func Row(ev Event) *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		RequestID: ev.RequestID,
		Actor:     ev.Actor,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}
}

// LogSink writes events to the process log when no audit database is
// configured.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s LogSink) Write(_ context.Context, ev Event) error {
	s.Logger.WithFields(logrus.Fields{
		"request_id": ev.RequestID,
		"actor":      ev.Actor,
		"action":     ev.Action,
		"entity":     ev.Entity,
		"entity_id":  ev.EntityID,
	}).Info("audit")
	return nil
}

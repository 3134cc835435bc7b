package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
)

const queueSize = 100

type Event struct {
	RequestID string
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// NewEvent stamps an event with the request id and caller subject found in
// ctx.
func NewEvent(ctx context.Context, action, entity, entityID string, metadata any) Event {
	return Event{
		RequestID: logging.RequestID(ctx),
		Actor:     identity.FromContext(ctx).Subject,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metadata,
	}
}

// Sink persists one event.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher hands events to a single background worker. Auditing never
// blocks or fails a request: a full queue drops the event.
type Dispatcher struct {
	sink   Sink
	logger logrus.FieldLogger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sink Sink, logger logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, queueSize),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.sink.Write(context.Background(), ev); err != nil {
			d.logger.WithError(err).
				WithField("action", ev.Action).
				WithField("request_id", ev.RequestID).
				Error("audit write failed")
		}
	}
}

// Dispatch is a no-op on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/config"
)

const (
	BarbersCollection      = "barbers"
	AppointmentsCollection = "appointments"
)

// Handle owns the process-wide Mongo client. Only a successful connection is
// kept; after a failure the next caller of Database tries again.
type Handle struct {
	uri    string
	dbName string
	logger logrus.FieldLogger
	dial   func(ctx context.Context) (*mongo.Client, error)

	mu     sync.Mutex
	client *mongo.Client
}

func NewHandle(cfg *config.Config, logger logrus.FieldLogger) *Handle {
	h := &Handle{
		uri:    cfg.MongoURI,
		dbName: cfg.MongoDatabase,
		logger: logger,
	}
	h.dial = h.connect
	return h
}

func (h *Handle) Database(ctx context.Context) (*mongo.Database, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client == nil {
		client, err := h.dial(ctx)
		if err != nil {
			return nil, err
		}
		h.client = client
	}
	return h.client.Database(h.dbName), nil
}

func (h *Handle) connect(ctx context.Context) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(h.uri).
		SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		h.disconnect(client)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(h.dbName)); err != nil {
		h.disconnect(client)
		return nil, err
	}

	h.logger.WithField("database", h.dbName).Info("connected to mongo")
	return client, nil
}

func (h *Handle) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		h.logger.WithError(err).Warn("disconnect after failed mongo setup")
	}
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(BarbersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create barber email index: %w", err)
	}

	_, err = database.Collection(AppointmentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "barberID", Value: 1}, {Key: "time", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create appointment time index: %w", err)
	}
	return nil
}

// Ping connects if needed and checks the server answers.
func (h *Handle) Ping(ctx context.Context) error {
	database, err := h.Database(ctx)
	if err != nil {
		return err
	}
	return database.Client().Ping(ctx, nil)
}

func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client == nil {
		return nil
	}
	err := h.client.Disconnect(ctx)
	h.client = nil
	return err
}

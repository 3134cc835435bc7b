package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbpkg "github.com/BruksfildServices01/barber-booking-graphql/internal/db"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

// DatabaseProvider hands out the shared database, connecting on first use.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type MongoRepository struct {
	dbs DatabaseProvider
}

func NewMongoRepository(dbs DatabaseProvider) *MongoRepository {
	return &MongoRepository{dbs: dbs}
}

func (r *MongoRepository) barbers(ctx context.Context) (*mongo.Collection, error) {
	database, err := r.dbs.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Collection(dbpkg.BarbersCollection), nil
}

func (r *MongoRepository) appointments(ctx context.Context) (*mongo.Collection, error) {
	database, err := r.dbs.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Collection(dbpkg.AppointmentsCollection), nil
}

var byTime = options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *MongoRepository) ListAppointments(
	ctx context.Context,
	filter booking.AppointmentFilter,
) ([]models.Appointment, error) {

	query := bson.M{}

	if filter.BarberID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.BarberID)
		if err != nil {
			return nil, httperr.ErrInvalidInput("Barber ID is invalid")
		}
		query["barberID"] = oid
	}

	if filter.Date != "" {
		start, end, err := timezone.DayBounds(filter.Date)
		if err != nil {
			return nil, httperr.ErrInvalidInput("%v", err)
		}
		query["time"] = bson.M{"$gte": start, "$lt": end}
	}

	coll, err := r.appointments(ctx)
	if err != nil {
		return nil, err
	}

	return findAppointments(ctx, coll, query)
}

func (r *MongoRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Appointment not found")
	}

	coll, err := r.appointments(ctx)
	if err != nil {
		return nil, err
	}

	var ap models.Appointment
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.ErrNotFound("Appointment not found")
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return &ap, nil
}

func (r *MongoRepository) GetAppointmentsByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]models.Appointment, error) {

	if len(ids) == 0 {
		return []models.Appointment{}, nil
	}

	coll, err := r.appointments(ctx)
	if err != nil {
		return nil, err
	}

	return findAppointments(ctx, coll, bson.M{"_id": bson.M{"$in": ids}})
}

func findAppointments(ctx context.Context, coll *mongo.Collection, query bson.M) ([]models.Appointment, error) {
	cur, err := coll.Find(ctx, query, byTime)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}

	apps := make([]models.Appointment, 0)
	if err := cur.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}

func (r *MongoRepository) CreateAppointment(
	ctx context.Context,
	in booking.NewAppointment,
) (*models.Appointment, error) {

	barberID, err := primitive.ObjectIDFromHex(in.BarberID)
	if err != nil {
		return nil, httperr.ErrInvalidReference("Barber ID is invalid")
	}

	barbers, err := r.barbers(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := r.appointments(ctx)
	if err != nil {
		return nil, err
	}

	count, err := barbers.CountDocuments(ctx, bson.M{"_id": barberID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check barber %s: %w", in.BarberID, err)
	}
	if count == 0 {
		return nil, httperr.ErrInvalidReference("Barber ID is invalid")
	}

	ap := models.Appointment{
		ID:          primitive.NewObjectID(),
		Duration:    in.Duration,
		Email:       in.Email,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		ServiceName: string(in.ServiceName),
		Time:        timezone.Normalize(in.Time),
		BarberID:    barberID,
	}

	if _, err := appointments.InsertOne(ctx, ap); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	// $addToSet keeps concurrent creations for the same barber from
	// overwriting each other. The two writes are not atomic; a failure here
	// leaves an orphaned appointment and is reported, never swallowed.
	res, err := barbers.UpdateOne(ctx,
		bson.M{"_id": barberID},
		bson.M{"$addToSet": bson.M{"appointmentIDS": ap.ID}},
	)
	if err != nil {
		return nil, fmt.Errorf("append appointment %s to barber %s: %w", ap.ID.Hex(), in.BarberID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("append appointment %s to barber %s: barber disappeared", ap.ID.Hex(), in.BarberID)
	}

	return &ap, nil
}

func (r *MongoRepository) UpdateAppointment(
	ctx context.Context,
	id string,
	patch booking.AppointmentPatch,
) (*models.Appointment, error) {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Appointment not found")
	}

	set := bson.M{}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.PhoneNumber != nil {
		set["phoneNumber"] = *patch.PhoneNumber
	}
	if patch.ServiceName != nil {
		set["serviceName"] = string(*patch.ServiceName)
	}
	if patch.Time != nil {
		set["time"] = timezone.Normalize(*patch.Time)
	}
	if patch.BarberID != nil {
		// The new barber is not checked for existence.
		barberID, err := primitive.ObjectIDFromHex(*patch.BarberID)
		if err != nil {
			return nil, httperr.ErrInvalidInput("Barber ID is invalid")
		}
		set["barberID"] = barberID
	}

	if len(set) == 0 {
		return r.GetAppointment(ctx, id)
	}

	coll, err := r.appointments(ctx)
	if err != nil {
		return nil, err
	}

	var ap models.Appointment
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.ErrNotFound("Appointment not found")
		}
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return &ap, nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *MongoRepository) ListBarbers(
	ctx context.Context,
	onlyCompleted bool,
) ([]models.Barber, error) {

	query := bson.M{}
	if onlyCompleted {
		query["completed"] = true
	}

	coll, err := r.barbers(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find barbers: %w", err)
	}

	barbers := make([]models.Barber, 0)
	if err := cur.All(ctx, &barbers); err != nil {
		return nil, fmt.Errorf("decode barbers: %w", err)
	}
	if barbers == nil {
		barbers = []models.Barber{}
	}
	return barbers, nil
}

func (r *MongoRepository) GetBarber(
	ctx context.Context,
	lookup booking.BarberLookup,
) (*models.Barber, error) {

	var query bson.M
	switch {
	case lookup.ID != "":
		oid, err := primitive.ObjectIDFromHex(lookup.ID)
		if err != nil {
			return nil, httperr.ErrNotFound("Barber not found")
		}
		query = bson.M{"_id": oid}
	case strings.TrimSpace(lookup.Email) != "":
		query = bson.M{"email": validators.NormalizeEmail(lookup.Email)}
	default:
		return nil, httperr.ErrInvalidInput("No input provided")
	}

	coll, err := r.barbers(ctx)
	if err != nil {
		return nil, err
	}

	var b models.Barber
	if err := coll.FindOne(ctx, query).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.ErrNotFound("Barber not found")
		}
		return nil, fmt.Errorf("find barber: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) CreateBarber(
	ctx context.Context,
	in booking.NewBarber,
) (*models.Barber, error) {

	coll, err := r.barbers(ctx)
	if err != nil {
		return nil, err
	}

	b := models.Barber{
		ID:              primitive.NewObjectID(),
		Email:           validators.NormalizeEmail(in.Email),
		Name:            in.Name,
		ProfileImageURL: in.ProfileImageURL,
		Specialisation:  string(in.Specialisation),
		AppointmentIDs:  []primitive.ObjectID{},
	}

	if _, err := coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, httperr.ErrInvalidInput("email already exists")
		}
		return nil, fmt.Errorf("insert barber: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) UpdateBarber(
	ctx context.Context,
	id string,
	patch booking.BarberPatch,
) (*models.Barber, error) {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Barber not found")
	}

	set := bson.M{}
	if patch.Email != nil {
		set["email"] = validators.NormalizeEmail(*patch.Email)
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ProfileImageURL != nil {
		set["profileImageURL"] = *patch.ProfileImageURL
		set["completed"] = true
	}
	if patch.Specialisation != nil {
		set["specialisation"] = string(*patch.Specialisation)
	}

	if len(set) == 0 {
		return r.GetBarber(ctx, booking.BarberLookup{ID: id})
	}

	coll, err := r.barbers(ctx)
	if err != nil {
		return nil, err
	}

	var b models.Barber
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, httperr.ErrNotFound("Barber not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, httperr.ErrInvalidInput("email already exists")
		}
		return nil, fmt.Errorf("update barber %s: %w", id, err)
	}
	return &b, nil
}

// Compile-time check
var _ booking.Repository = (*MongoRepository)(nil)

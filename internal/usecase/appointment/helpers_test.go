package appointment

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
)

func bookingByID(id primitive.ObjectID) booking.BarberLookup {
	return booking.BarberLookup{ID: id.Hex()}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Duration    int                `bson:"duration" json:"duration"`
	Email       string             `bson:"email" json:"email"`
	Name        Name               `bson:"name" json:"name"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	ServiceName string             `bson:"serviceName" json:"serviceName"`
	Time        time.Time          `bson:"time" json:"time"`
	BarberID    primitive.ObjectID `bson:"barberID" json:"barberID"`
}

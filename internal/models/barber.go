package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Name struct {
	First string `bson:"first" json:"first" validate:"required"`
	Last  string `bson:"last" json:"last" validate:"required"`
}

func (n Name) Full() string {
	return n.First + " " + n.Last
}

type Barber struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email           string               `bson:"email" json:"email"`
	Name            Name                 `bson:"name" json:"name"`
	ProfileImageURL string               `bson:"profileImageURL" json:"profileImageURL"`
	Specialisation  string               `bson:"specialisation" json:"specialisation"`
	AppointmentIDs  []primitive.ObjectID `bson:"appointmentIDS" json:"appointmentIDS"`
	Completed       bool                 `bson:"completed" json:"completed"`
}

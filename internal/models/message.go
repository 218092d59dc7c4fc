package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContactMessage is a submission of the help form.
type ContactMessage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"Name" json:"name"`
	Email   string             `bson:"Email" json:"email"`
	Message string             `bson:"Message" json:"message"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Password and Password1 hold the same bcrypt
// hash; the confirmation is never stored in plain text.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullname" json:"fullname"`
	Phone     string             `bson:"phoneno" json:"phoneno"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Password1 string             `bson:"password1" json:"-"`
}

// LoginRecord is an append-only audit entry. It is only written when the
// login audit feature is enabled and is never read back.
type LoginRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	LoginPasswordHash string             `bson:"loginpassword" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

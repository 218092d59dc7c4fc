// Package store persists users, enrollments, contact messages, login audit
// records and sessions. Mongo is the production backend; Memory has the same
// semantics, including the unique constraints, and backs tests and local runs.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Collection names. They match the data already written by earlier
// deployments of the portal.
const (
	UsersCollection       = "Register"
	LoginsCollection      = "Login"
	MessagesCollection    = "MessageContainer"
	EnrollmentsCollection = "Student"
	SessionsCollection    = "sessions"
)

// parseID converts a hex id from a URL. A malformed id cannot match any
// document, so it is reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

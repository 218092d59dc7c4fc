// Package services holds the portal's business rules: account registration
// and login, the one-enrollment-per-student guard, and server-side sessions.
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/elearn-portal/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNoSession          = errors.New("no active session")
)

// FieldErrors maps a form field name to a message shown next to that field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type LoginAuditStore interface {
	Append(ctx context.Context, rec *models.LoginRecord) error
}

type EnrollmentStore interface {
	Create(ctx context.Context, e *models.Enrollment) error
	FindAll(ctx context.Context) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Enrollment, error)
	Update(ctx context.Context, e *models.Enrollment) error
	Delete(ctx context.Context, id string) error
}

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

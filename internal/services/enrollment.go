package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/models"
	"github.com/harentsoaR/elearn-portal/internal/store"
	"github.com/harentsoaR/elearn-portal/internal/utils"
)

// AllPrograms is the filter value that disables program filtering.
const AllPrograms = "all"

// ProgramFields is the raw enroll/edit form. Subjects is comma separated.
type ProgramFields struct {
	StudentName string
	Program     string
	Subjects    string
	TimeSlot    string
}

func (f ProgramFields) validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(f.StudentName) == "" {
		errs["studentName"] = "Student name is required."
	}
	if strings.TrimSpace(f.Program) == "" {
		errs["studentProgram"] = "Program is required."
	}
	if strings.TrimSpace(f.Subjects) == "" {
		errs["studentSubjects"] = "Enter at least one subject."
	}
	if strings.TrimSpace(f.TimeSlot) == "" {
		errs["studentTime"] = "Time slot is required."
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Listing is what the course page shows.
type Listing struct {
	All      []models.Enrollment
	Filtered []models.Enrollment
	Programs []string
}

// EnrollmentGuard manages enrollments and keeps at most one per student.
type EnrollmentGuard struct {
	enrollments EnrollmentStore
	log         *zap.Logger
}

func NewEnrollmentGuard(enrollments EnrollmentStore, log *zap.Logger) *EnrollmentGuard {
	return &EnrollmentGuard{enrollments: enrollments, log: log}
}

// Enroll creates the enrollment owned by ownerID. A second enrollment for the
// same owner is ErrAlreadyEnrolled, whether caught by the lookup here or by
// the store's unique owner constraint when two requests race.
func (g *EnrollmentGuard) Enroll(ctx context.Context, ownerID primitive.ObjectID, f ProgramFields) (*models.Enrollment, error) {
	if ownerID.IsZero() {
		return nil, ErrNoSession
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	_, err := g.enrollments.FindByOwner(ctx, ownerID)
	switch {
	case err == nil:
		return nil, ErrAlreadyEnrolled
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find enrollment by owner: %w", err)
	}

	e := &models.Enrollment{
		StudentName: f.StudentName,
		Program:     f.Program,
		Subjects:    utils.SplitSubjects(f.Subjects),
		TimeSlot:    f.TimeSlot,
		Status:      models.StatusEnrolled,
		OwnerID:     ownerID,
	}
	if err := g.enrollments.Create(ctx, e); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			g.log.Info("concurrent enrollment rejected by unique owner index",
				zap.String("owner", ownerID.Hex()))
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return e, nil
}

func (g *EnrollmentGuard) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	e, err := g.enrollments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return e, nil
}

// Edit overwrites name, program, subjects and time slot. Status is kept.
func (g *EnrollmentGuard) Edit(ctx context.Context, id string, f ProgramFields) (*models.Enrollment, error) {
	e, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return e, err
	}

	e.StudentName = f.StudentName
	e.Program = f.Program
	e.Subjects = utils.SplitSubjects(f.Subjects)
	e.TimeSlot = f.TimeSlot

	if err := g.enrollments.Update(ctx, e); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	return e, nil
}

// Delete removes the enrollment permanently.
func (g *EnrollmentGuard) Delete(ctx context.Context, id string) error {
	if err := g.enrollments.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// List returns every enrollment, the ones matching program exactly, and the
// distinct program names in first-seen order. An empty program or "all"
// disables the filter.
func (g *EnrollmentGuard) List(ctx context.Context, program string) (*Listing, error) {
	all, err := g.enrollments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	seen := make(map[string]struct{})
	programs := make([]string, 0)
	for _, e := range all {
		if _, ok := seen[e.Program]; !ok {
			seen[e.Program] = struct{}{}
			programs = append(programs, e.Program)
		}
	}

	filtered := all
	if program != "" && program != AllPrograms {
		filtered = make([]models.Enrollment, 0)
		for _, e := range all {
			if e.Program == program {
				filtered = append(filtered, e)
			}
		}
	}

	return &Listing{All: all, Filtered: filtered, Programs: programs}, nil
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/middleware"
	"github.com/harentsoaR/elearn-portal/internal/models"
	"github.com/harentsoaR/elearn-portal/internal/services"
	"github.com/harentsoaR/elearn-portal/internal/store"
)

type EnrollmentRequest struct {
	StudentName string `form:"studentName"`
	Program     string `form:"studentProgram"`
	Subjects    string `form:"studentSubjects"`
	TimeSlot    string `form:"studentTime"`
}

var enrollmentFields = []string{"studentName", "studentProgram", "studentSubjects", "studentTime"}

func (r EnrollmentRequest) fields() services.ProgramFields {
	return services.ProgramFields{
		StudentName: r.StudentName,
		Program:     r.Program,
		Subjects:    r.Subjects,
		TimeSlot:    r.TimeSlot,
	}
}

func formFromEnrollment(e *models.Enrollment) services.ProgramFields {
	return services.ProgramFields{
		StudentName: e.StudentName,
		Program:     e.Program,
		Subjects:    strings.Join(e.Subjects, ", "),
		TimeSlot:    e.TimeSlot,
	}
}

const msgNotFound = "Student not found."

// Course lists enrollments, optionally narrowed with ?program=.
func (h *Handler) Course(c *gin.Context) {
	h.renderCourse(c, http.StatusOK, services.FieldErrors{}, services.ProgramFields{})
}

func (h *Handler) renderCourse(c *gin.Context, status int, errs services.FieldErrors, form services.ProgramFields) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	program := c.Query("program")
	listing, err := h.Enrollments.List(ctx, program)
	if err != nil {
		h.serverError(c, "An error occurred while fetching student data.", err)
		return
	}

	fullname := "Unknown"
	if userID, ok := middleware.CurrentUserID(c); ok {
		user, err := h.Users.FindByID(ctx, userID)
		switch {
		case err == nil:
			fullname = user.FullName
		case !errors.Is(err, store.ErrNotFound):
			h.serverError(c, "An error occurred while fetching student data.", err)
			return
		}
	}

	h.render(c, status, "course.html", "course", gin.H{
		"students":         listing.All,
		"studentsFiltered": listing.Filtered,
		"uniquePrograms":   listing.Programs,
		"program":          program,
		"fullname":         fullname,
		"errors":           errs,
		"form":             form,
	})
}

// Enroll creates the session user's enrollment.
func (h *Handler) Enroll(c *gin.Context) {
	var req EnrollmentRequest
	if err := bindForm(c, &req, enrollmentFields...); err != nil {
		h.malformed(c, err)
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	ctx, cancel := h.ctx(c)
	defer cancel()

	e, err := h.Enrollments.Enroll(ctx, userID, req.fields())
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		h.renderCourse(c, http.StatusBadRequest, fieldErrs, req.fields())
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.String(http.StatusBadRequest, "You have already enrolled.")
	case errors.Is(err, services.ErrNoSession):
		c.Redirect(http.StatusFound, "/login")
	case err != nil:
		h.serverError(c, "An error occurred while enrolling the student.", err)
	default:
		logger.FromGin(c).Info("student enrolled",
			zap.String("enrollment_id", e.ID.Hex()), zap.String("user_id", userID.Hex()))
		c.Redirect(http.StatusFound, "/course")
	}
}

func (h *Handler) EditForm(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	e, err := h.Enrollments.Get(ctx, c.Param("id"))
	switch {
	case errors.Is(err, services.ErrEnrollmentNotFound):
		c.String(http.StatusNotFound, msgNotFound)
	case err != nil:
		h.serverError(c, "An error occurred while fetching student data for edit.", err)
	default:
		h.render(c, http.StatusOK, "edit.html", "course", gin.H{
			"student": e,
			"form":    formFromEnrollment(e),
		})
	}
}

func (h *Handler) UpdateEnrollment(c *gin.Context) {
	var req EnrollmentRequest
	if err := bindForm(c, &req, enrollmentFields...); err != nil {
		h.malformed(c, err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	current, err := h.Enrollments.Edit(ctx, c.Param("id"), req.fields())
	var fieldErrs services.FieldErrors
	switch {
	case errors.Is(err, services.ErrEnrollmentNotFound):
		c.String(http.StatusNotFound, msgNotFound)
	case errors.As(err, &fieldErrs):
		h.render(c, http.StatusBadRequest, "edit.html", "course", gin.H{
			"student": current,
			"form":    req.fields(),
			"errors":  fieldErrs,
		})
	case err != nil:
		h.serverError(c, "An error occurred while updating student data.", err)
	default:
		c.Redirect(http.StatusFound, "/course")
	}
}

func (h *Handler) DeleteEnrollment(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	err := h.Enrollments.Delete(ctx, c.Param("id"))
	switch {
	case errors.Is(err, services.ErrEnrollmentNotFound):
		c.String(http.StatusNotFound, msgNotFound)
	case err != nil:
		h.serverError(c, "An error occurred while deleting student data.", err)
	default:
		logger.FromGin(c).Info("enrollment deleted", zap.String("enrollment_id", c.Param("id")))
		c.Redirect(http.StatusFound, "/course")
	}
}

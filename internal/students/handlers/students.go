// Package handlers serves the student registration form and the student list.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	"github.com/Ultrahd-dev/student-portal/internal/students"
	"github.com/Ultrahd-dev/student-portal/internal/web"
	"github.com/Ultrahd-dev/student-portal/internal/web/views"
)

// Notices shown by the student handlers
const (
	NoticeStudentRegistered = "Student registered successfully."
	NoticeStudentFailed     = "Error while registering student."
	NoticeListFailed        = "Unable to fetch student list."
	NoticeLoginRequired     = "Please login to register a student."
)

// StudentService is the student logic used by the handlers
type StudentService interface {
	Register(ctx context.Context, ownerID uuid.UUID, input students.RegisterInput) (*students.Student, error)
	List(ctx context.Context) ([]students.Listing, error)
}

// StudentHandler handles the student routes
type StudentHandler struct {
	studentService StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Form renders the registration form. Requires a session.
// GET /student_register
func (h *StudentHandler) Form(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("Register a student", views.StudentForm()), nil
}

// Register stores a student owned by the current account. Requires a session.
// POST /student_register
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		return web.Result{}, web.Fail(auth.ErrUnauthenticated, NoticeLoginRequired, "/")
	}

	input := students.RegisterInput{
		Name:   r.PostFormValue("name"),
		Email:  r.PostFormValue("email"),
		Course: r.PostFormValue("course"),
		Phone:  r.PostFormValue("phone"),
	}

	student, err := h.studentService.Register(r.Context(), account.ID, input)
	if notice, ok := web.ValidationNotice(err); ok {
		return web.Redirect("/student_register", notice), nil
	}
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeStudentFailed, "/student_register")
	}

	slog.Info("student registered",
		slog.Int64("student_id", student.ID),
		slog.String("user_id", account.ID.String()))
	return web.Redirect("/students", NoticeStudentRegistered), nil
}

// List renders every student with the owning username
// GET /students
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	list, err := h.studentService.List(r.Context())
	if err != nil {
		return web.Result{}, web.Fail(err, NoticeListFailed, "/")
	}
	return web.Page("Students", views.Students(list)), nil
}

package server

import (
	"log/slog"
	"net/http"

	"github.com/Ultrahd-dev/student-portal/internal/web"
	"github.com/Ultrahd-dev/student-portal/internal/web/views"
)

// NoticeContactThanks is shown after the contact form is submitted
const NoticeContactThanks = "Thank you for reaching out. We'll get back to you soon."

func about(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("About", views.About()), nil
}

func college(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("College", views.College()), nil
}

func contactForm(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Page("Contact", views.Contact()), nil
}

// contact accepts the message without storing it.
func contact(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	slog.Info("contact message received",
		slog.String("subject", r.PostFormValue("subject")),
		slog.Int("message_length", len(r.PostFormValue("message"))))
	return web.Redirect("/contact", NoticeContactThanks), nil
}

func notFound(w http.ResponseWriter, r *http.Request) (web.Result, error) {
	return web.Result{Title: "Not found", Status: http.StatusNotFound, Page: views.NotFound()}, nil
}

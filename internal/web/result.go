// Package web holds the HTTP plumbing shared by the route handlers: the
// handler result contract, flash notices and request logging.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/Ultrahd-dev/student-portal/internal/auth"
	"github.com/Ultrahd-dev/student-portal/internal/web/views"
)

// GenericNotice is shown when a handler fails without a specific notice.
const GenericNotice = "Something went wrong. Please try again."

// Result is what a handler produces: either a page or a redirect.
// Notice, when set, is shown on the next rendered page.
type Result struct {
	Title    string
	Page     templ.Component
	Status   int
	Redirect string
	Notice   string
}

// Page returns a result rendering page under title.
func Page(title string, page templ.Component) Result {
	return Result{Title: title, Page: page}
}

// Redirect returns a result redirecting to path with an optional notice.
func Redirect(path, notice string) Result {
	return Result{Redirect: path, Notice: notice}
}

// HandlerFunc is a route handler under the Result contract.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) (Result, error)

// Failure is an error carrying the notice and the page the user is sent back to.
type Failure struct {
	Notice   string
	Redirect string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Notice, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Fail wraps err so the user is redirected to redirect with notice.
func Fail(err error, notice, redirect string) error {
	return &Failure{Notice: notice, Redirect: redirect, Err: err}
}

// Responder turns handler results into HTTP responses.
type Responder struct {
	flashes *Flashes
	log     *slog.Logger
}

// NewResponder creates a responder
func NewResponder(flashes *Flashes, log *slog.Logger) *Responder {
	return &Responder{flashes: flashes, log: log}
}

// Handle adapts h to an http.HandlerFunc. Errors never produce a bare error
// page: they become a notice plus a redirect.
func (rs *Responder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h(w, r)
		if err != nil {
			var failure *Failure
			if !errors.As(err, &failure) {
				failure = &Failure{Notice: GenericNotice, Redirect: "/", Err: err}
			}
			rs.log.Error("request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()))
			res = Redirect(failure.Redirect, failure.Notice)
		}

		if res.Redirect != "" {
			if res.Notice != "" {
				rs.flashes.AddNotice(w, r, res.Notice)
			}
			http.Redirect(w, r, res.Redirect, http.StatusFound)
			return
		}

		rs.render(w, r, res)
	}
}

func (rs *Responder) render(w http.ResponseWriter, r *http.Request, res Result) {
	meta := views.Meta{Title: res.Title}
	if account, ok := auth.AccountFromContext(r.Context()); ok {
		meta.Username = account.Username
	}
	meta.Notices = rs.flashes.Pop(w, r)
	if res.Notice != "" {
		meta.Notices = append(meta.Notices, res.Notice)
	}

	var buf bytes.Buffer
	if err := views.Layout(meta, res.Page).Render(r.Context(), &buf); err != nil {
		rs.log.Error("failed to render page", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		http.Error(w, GenericNotice, http.StatusInternalServerError)
		return
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rs.log.Debug("failed to write response", slog.String("error", err.Error()))
	}
}

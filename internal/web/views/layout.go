// Package views holds the HTML components of the portal.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Meta carries the per-request data shared by every page
type Meta struct {
	Title    string
	Username string
	Notices  []string
}

// html writes markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// Layout wraps content in the page shell with navigation and notices
func Layout(meta Meta, content templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(meta.Title)
		h.raw(` | Student Portal</title></head><body><nav>`)
		h.raw(`<a href="/">Home</a> <a href="/about">About</a> <a href="/college">College</a> `)
		h.raw(`<a href="/contact">Contact</a> <a href="/students">Students</a> <a href="/books">Books</a> `)
		h.raw(`<a href="/library">Library</a> `)
		if meta.Username != "" {
			h.raw(`<a href="/dashboard">Dashboard</a> <a href="/cart">Cart</a> <a href="/profile">`)
			h.text(meta.Username)
			h.raw(`</a> <a href="/logout">Logout</a>`)
		} else {
			h.raw(`<a href="/register">Register</a>`)
		}
		h.raw(`</nav>`)

		if len(meta.Notices) > 0 {
			h.raw(`<ul class="notices">`)
			for _, notice := range meta.Notices {
				h.raw(`<li>`)
				h.text(notice)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		h.raw(`<main><h1>`)
		h.text(meta.Title)
		h.raw(`</h1>`)
		h.component(ctx, content)
		h.raw(`</main></body></html>`)
	})
}

func field(h *html, label, name, kind string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(` <input type="` + kind + `" name="` + name + `" required></label><br>`)
}

package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Ultrahd-dev/student-portal/internal/catalog"
	"github.com/Ultrahd-dev/student-portal/internal/students"
	"github.com/Ultrahd-dev/student-portal/internal/users"
)

// Home is the landing page with the login form
func Home() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form method="post" action="/">`)
		field(h, "Username", "username", "text")
		field(h, "Password", "password", "password")
		h.raw(`<button type="submit">Login</button></form>`)
		h.raw(`<p>No account yet? <a href="/register">Register</a></p>`)
	})
}

// Register is the account registration form
func Register() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form method="post" action="/register">`)
		field(h, "Username", "username", "text")
		field(h, "Password", "password", "password")
		h.raw(`<button type="submit">Register</button></form>`)
	})
}

// Dashboard is the landing page after login
func Dashboard(username string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<p>Welcome, `)
		h.text(username)
		h.raw(`.</p><ul>`)
		h.raw(`<li><a href="/student_register">Register a student</a></li>`)
		h.raw(`<li><a href="/students">Registered students</a></li>`)
		h.raw(`<li><a href="/books">Browse books</a></li>`)
		h.raw(`<li><a href="/cart">Your cart</a></li>`)
		h.raw(`</ul>`)
	})
}

// StudentForm is the student registration form
func StudentForm() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form method="post" action="/student_register">`)
		field(h, "Name", "name", "text")
		field(h, "Email", "email", "email")
		field(h, "Course", "course", "text")
		field(h, "Phone", "phone", "tel")
		h.raw(`<button type="submit">Register student</button></form>`)
	})
}

// Students lists registered students with the account that registered them
func Students(list []students.Listing) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(list) == 0 {
			h.raw(`<p>No students registered yet.</p>`)
			return
		}
		h.raw(`<table><thead><tr><th>ID</th><th>Name</th><th>Email</th><th>Course</th><th>Phone</th><th>Registered by</th></tr></thead><tbody>`)
		for _, s := range list {
			h.raw(`<tr><td>`)
			h.text(strconv.FormatInt(s.ID, 10))
			h.raw(`</td><td>`)
			h.text(s.Name)
			h.raw(`</td><td>`)
			h.text(s.Email)
			h.raw(`</td><td>`)
			h.text(s.Course)
			h.raw(`</td><td>`)
			h.text(s.Phone)
			h.raw(`</td><td>`)
			h.text(s.OwnerUsername)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}

// Profile shows the current account
func Profile(user *users.User) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<dl><dt>Username</dt><dd>`)
		h.text(user.Username)
		h.raw(`</dd><dt>Account ID</dt><dd>`)
		h.text(user.ID.String())
		h.raw(`</dd><dt>Member since</dt><dd>`)
		h.text(user.CreatedAt.Format("2 January 2006"))
		h.raw(`</dd></dl>`)
	})
}

// Books lists the catalog. withCart adds an "Add to cart" link per book.
func Books(books []catalog.Book, withCart bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(books) == 0 {
			h.raw(`<p>No books available.</p>`)
			return
		}
		h.raw(`<ul class="books">`)
		for _, b := range books {
			bookItem(h, b)
			if withCart {
				h.raw(` <a href="/add_to_cart/` + strconv.FormatInt(b.ID, 10) + `">Add to cart</a>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

// Cart lists the books in the account's cart
func Cart(books []catalog.Book) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(books) == 0 {
			h.raw(`<p>Your cart is empty. <a href="/books">Browse books</a></p>`)
			return
		}
		h.raw(`<ul class="cart">`)
		for _, b := range books {
			bookItem(h, b)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

func bookItem(h *html, b catalog.Book) {
	h.raw(`<li data-book-id="` + strconv.FormatInt(b.ID, 10) + `"><strong>`)
	h.text(b.Name)
	h.raw(`</strong> by `)
	h.text(b.Author)
	if b.About != "" {
		h.raw(`<p>`)
		h.text(b.About)
		h.raw(`</p>`)
	}
}

// About describes the portal
func About() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<p>The student portal lets staff register students and browse the college library.</p>`)
	})
}

// College shows information about the college
func College() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<p>Our college offers courses in computer science, mathematics and the humanities.</p>`)
	})
}

// Contact is the contact form
func Contact() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form method="post" action="/contact">`)
		field(h, "Name", "name", "text")
		field(h, "Email", "email", "email")
		field(h, "Subject", "subject", "text")
		h.raw(`<label>Message <textarea name="message" required></textarea></label><br>`)
		h.raw(`<button type="submit">Send</button></form>`)
	})
}

// NotFound is shown for unknown resources
func NotFound() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<p>The page you asked for does not exist. <a href="/">Back home</a></p>`)
	})
}

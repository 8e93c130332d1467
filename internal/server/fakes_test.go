package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ultrahd-dev/student-portal/internal/catalog"
	"github.com/Ultrahd-dev/student-portal/internal/students"
	"github.com/Ultrahd-dev/student-portal/internal/users"
	"github.com/Ultrahd-dev/student-portal/internal/validation"
)

type fakeUsers struct {
	mu        sync.Mutex
	byName    map[string]*users.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byName:    make(map[string]*users.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeUsers) Register(ctx context.Context, input users.RegisterInput) (*users.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[input.Username]; ok {
		return nil, users.ErrDuplicateUsername
	}
	user := &users.User{ID: uuid.New(), Username: input.Username, CreatedAt: time.Now()}
	f.byName[input.Username] = user
	f.passwords[input.Username] = input.Password
	return user, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byName[username]
	if !ok || f.passwords[username] != password {
		return nil, users.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byName)
}

type fakeStudents struct {
	mu      sync.Mutex
	users   *fakeUsers
	rows    []students.Listing
	calls   int
	listErr error
}

func (f *fakeStudents) Register(ctx context.Context, ownerID uuid.UUID, input students.RegisterInput) (*students.Student, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	owner, err := f.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	student := &students.Student{
		ID:     int64(len(f.rows) + 1),
		Name:   input.Name,
		Email:  input.Email,
		Course: input.Course,
		Phone:  input.Phone,
		UserID: ownerID,
	}
	f.rows = append(f.rows, students.Listing{
		ID:            student.ID,
		Name:          student.Name,
		Email:         student.Email,
		Course:        student.Course,
		Phone:         student.Phone,
		OwnerUsername: owner.Username,
	})
	return student, nil
}

func (f *fakeStudents) List(ctx context.Context) ([]students.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]students.Listing(nil), f.rows...), nil
}

func (f *fakeStudents) registerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCatalog struct {
	mu    sync.Mutex
	books []catalog.Book
	carts map[uuid.UUID][]int64
	calls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		books: []catalog.Book{
			{ID: 1, Name: "The Pragmatic Programmer", Author: "Andrew Hunt"},
			{ID: 2, Name: "Clean Code", Author: "Robert C. Martin"},
			{ID: 3, Name: "Introduction to Algorithms", Author: "Thomas H. Cormen"},
		},
		carts: make(map[uuid.UUID][]int64),
	}
}

func (f *fakeCatalog) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Book(nil), f.books...), nil
}

func (f *fakeCatalog) AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if _, ok := f.book(bookID); !ok {
		return catalog.ErrBookNotFound
	}
	for _, id := range f.carts[userID] {
		if id == bookID {
			return catalog.ErrAlreadyInCart
		}
	}
	f.carts[userID] = append(f.carts[userID], bookID)
	return nil
}

func (f *fakeCatalog) Cart(ctx context.Context, userID uuid.UUID) ([]catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	var out []catalog.Book
	for _, id := range f.carts[userID] {
		if b, ok := f.book(id); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeCatalog) book(id int64) (catalog.Book, bool) {
	for _, b := range f.books {
		if b.ID == id {
			return b, true
		}
	}
	return catalog.Book{}, false
}

func (f *fakeCatalog) cartCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errDatabaseDown = errors.New("database is down")

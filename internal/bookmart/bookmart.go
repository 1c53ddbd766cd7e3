// Package bookmart is a small in-memory shop: a stock of priced books, a
// customer register and a sales ledger.
package bookmart

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("already exists")
)

type Book struct {
	Title    string  `validate:"required,max=150"`
	Author   string  `validate:"required,max=100"`
	Price    float64 `validate:"gt=0"`
	Quantity int     `validate:"gte=0"`
}

type Customer struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,e164|numeric"`
}

type Sale struct {
	ID       uuid.UUID
	Customer string
	Title    string
	Quantity int
	Total    float64
	SoldAt   time.Time
}

var validate = validator.New()

// InputError describes the first field that failed validation.
type InputError struct {
	Field string
	Rule  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s (%s)", strings.ToLower(e.Field), e.Rule)
}

func check(v any) error {
	err := validate.Struct(v)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &InputError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return err
}

// Shop is safe for concurrent use.
type Shop struct {
	mu        sync.Mutex
	books     []Book
	customers []Customer
	sales     []Sale
	now       func() time.Time
}

func NewShop() *Shop {
	return &Shop{now: time.Now}
}

// AddBook adds a title to the stock. Titles are unique, ignoring case.
func (s *Shop) AddBook(b Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	if math.IsInf(b.Price, 0) || math.IsNaN(b.Price) {
		return &InputError{Field: "Price", Rule: "finite"}
	}
	if err := check(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findBook(b.Title) >= 0 {
		return fmt.Errorf("book %q: %w", b.Title, ErrDuplicate)
	}
	s.books = append(s.books, b)
	return nil
}

func (s *Shop) Books() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Book(nil), s.books...)
}

// SearchBooks matches term against title and author, ignoring case.
func (s *Shop) SearchBooks(term string) []Book {
	term = strings.ToLower(strings.TrimSpace(term))

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), term) || strings.Contains(strings.ToLower(b.Author), term) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Shop) AddCustomer(c Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if err := check(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCustomer(c.Name) >= 0 {
		return fmt.Errorf("customer %q: %w", c.Name, ErrDuplicate)
	}
	s.customers = append(s.customers, c)
	return nil
}

func (s *Shop) Customers() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Customer(nil), s.customers...)
}

// Sell records a sale and takes quantity copies out of stock.
func (s *Shop) Sell(customerName, title string, quantity int) (Sale, error) {
	if quantity <= 0 {
		return Sale{}, &InputError{Field: "Quantity", Rule: "gt=0"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ci := s.findCustomer(customerName)
	if ci < 0 {
		return Sale{}, fmt.Errorf("%q: %w", customerName, ErrCustomerNotFound)
	}
	bi := s.findBook(title)
	if bi < 0 {
		return Sale{}, fmt.Errorf("%q: %w", title, ErrBookNotFound)
	}
	b := &s.books[bi]
	if b.Quantity < quantity {
		return Sale{}, fmt.Errorf("%q has %d left: %w", b.Title, b.Quantity, ErrInsufficientStock)
	}

	b.Quantity -= quantity
	sale := Sale{
		ID:       uuid.New(),
		Customer: s.customers[ci].Name,
		Title:    b.Title,
		Quantity: quantity,
		Total:    float64(quantity) * b.Price,
		SoldAt:   s.now(),
	}
	s.sales = append(s.sales, sale)
	return sale, nil
}

func (s *Shop) Sales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sale(nil), s.sales...)
}

func (s *Shop) findBook(title string) int {
	title = strings.TrimSpace(title)
	for i, b := range s.books {
		if strings.EqualFold(b.Title, title) {
			return i
		}
	}
	return -1
}

func (s *Shop) findCustomer(name string) int {
	name = strings.TrimSpace(name)
	for i, c := range s.customers {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

package bookmart

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	s := NewShop()
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, s.AddBook(Book{Title: "Dune", Author: "Frank Herbert", Price: 9.5, Quantity: 5}))
	require.NoError(t, s.AddBook(Book{Title: "Emma", Author: "Jane Austen", Price: 4, Quantity: 1}))
	require.NoError(t, s.AddCustomer(Customer{Name: "Ada", Email: "ada@example.com", Phone: "5551234"}))
	return s
}

func TestAddBook_Validation(t *testing.T) {
	s := NewShop()

	tests := []struct {
		name  string
		book  Book
		field string
	}{
		{"blank title", Book{Title: "  ", Author: "A", Price: 1}, "Title"},
		{"no author", Book{Title: "T", Price: 1}, "Author"},
		{"free book", Book{Title: "T", Author: "A", Price: 0}, "Price"},
		{"negative stock", Book{Title: "T", Author: "A", Price: 1, Quantity: -1}, "Quantity"},
		{"infinite price", Book{Title: "T", Author: "A", Price: math.Inf(1)}, "Price"},
		{"NaN price", Book{Title: "T", Author: "A", Price: math.NaN()}, "Price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddBook(tt.book)
			var ierr *InputError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, tt.field, ierr.Field)
		})
	}
	assert.Empty(t, s.Books())
}

func TestAddBook_DuplicateTitle(t *testing.T) {
	s := newTestShop(t)
	err := s.AddBook(Book{Title: "dune", Author: "X", Price: 1})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, s.Books(), 2)
}

func TestSearchBooks_IgnoresCase(t *testing.T) {
	s := newTestShop(t)

	assert.Len(t, s.SearchBooks("DUNE"), 1)
	assert.Len(t, s.SearchBooks("austen"), 1)
	assert.Empty(t, s.SearchBooks("tolkien"))
	assert.Len(t, s.SearchBooks(""), 2)
}

func TestAddCustomer_Validation(t *testing.T) {
	s := NewShop()

	err := s.AddCustomer(Customer{Name: "Bob", Email: "not-an-email", Phone: "5551234"})
	var ierr *InputError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "Email", ierr.Field)
	assert.Equal(t, "invalid email (email)", err.Error())

	assert.NoError(t, s.AddCustomer(Customer{Name: "Bob", Email: "bob@example.com", Phone: "+14155550100"}))
	assert.ErrorIs(t, s.AddCustomer(Customer{Name: "bob", Email: "b@example.com", Phone: "1"}), ErrDuplicate)
}

func TestSell(t *testing.T) {
	s := newTestShop(t)

	sale, err := s.Sell("ada", "Dune", 2)
	require.NoError(t, err)
	assert.Equal(t, "Ada", sale.Customer)
	assert.Equal(t, "Dune", sale.Title)
	assert.Equal(t, 19.0, sale.Total)
	assert.NotEqual(t, [16]byte{}, [16]byte(sale.ID))
	assert.Equal(t, 3, s.Books()[0].Quantity)
	assert.Equal(t, []Sale{sale}, s.Sales())
}

func TestSell_Failures(t *testing.T) {
	s := newTestShop(t)

	_, err := s.Sell("Nobody", "Dune", 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	_, err = s.Sell("Ada", "Ulysses", 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
	_, err = s.Sell("Ada", "Emma", 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, err = s.Sell("Ada", "Emma", 0)
	var ierr *InputError
	assert.ErrorAs(t, err, &ierr)

	assert.Empty(t, s.Sales())
	assert.Equal(t, 1, s.Books()[1].Quantity)
}

func TestSell_ConcurrentNeverOversells(t *testing.T) {
	s := newTestShop(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Sell("Ada", "Dune", 1); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, sold)
	assert.Zero(t, s.Books()[0].Quantity)
}

package bookmart

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	msgInvalidChoice = "Invalid choice. Please try again."
	msgExit          = "Exiting the system."
)

// Menu drives a Shop from line-oriented text input.
type Menu struct {
	shop *Shop
	in   *bufio.Scanner
	out  io.Writer
}

func NewMenu(shop *Shop, in io.Reader, out io.Writer) *Menu {
	return &Menu{shop: shop, in: bufio.NewScanner(in), out: out}
}

// Run loops over the main menu until the user exits or input ends.
func (m *Menu) Run() error {
	for {
		m.println("\nWelcome to BookMart!")
		m.println("1. Book Management")
		m.println("2. Customer Management")
		m.println("3. Sales Management")
		m.println("4. Exit")

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.in.Err()
		}

		switch choice {
		case "1":
			ok = m.bookMenu()
		case "2":
			ok = m.customerMenu()
		case "3":
			ok = m.salesMenu()
		case "4":
			m.println(msgExit)
			return nil
		default:
			m.println(msgInvalidChoice)
		}
		if !ok {
			return m.in.Err()
		}
	}
}

// bookMenu, like the other sub-menus, falls back to the main menu on an
// unknown choice without a message.
func (m *Menu) bookMenu() bool {
	m.println("\n1. Add Book\n2. View Books\n3. Search Book")
	choice, ok := m.prompt("Enter your choice: ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		fields, ok := m.prompts("Title: ", "Author: ", "Price: ", "Quantity: ")
		if !ok {
			return false
		}
		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			m.println("Error: price must be a number.")
			return true
		}
		qty, err := strconv.Atoi(fields[3])
		if err != nil {
			m.println("Error: quantity must be a whole number.")
			return true
		}
		if err := m.shop.AddBook(Book{Title: fields[0], Author: fields[1], Price: price, Quantity: qty}); err != nil {
			m.printf("Error: %v\n", err)
			return true
		}
		m.println("Book added successfully!")
	case "2":
		m.printBooks(m.shop.Books(), "No books available.")
	case "3":
		term, ok := m.prompt("Enter title or author to search: ")
		if !ok {
			return false
		}
		m.printBooks(m.shop.SearchBooks(term), "No matching books found.")
	}
	return true
}

func (m *Menu) customerMenu() bool {
	m.println("\n1. Add Customer\n2. View Customers")
	choice, ok := m.prompt("Enter your choice: ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		fields, ok := m.prompts("Name: ", "Email: ", "Phone: ")
		if !ok {
			return false
		}
		if err := m.shop.AddCustomer(Customer{Name: fields[0], Email: fields[1], Phone: fields[2]}); err != nil {
			m.printf("Error: %v\n", err)
			return true
		}
		m.println("Customer added successfully!")
	case "2":
		customers := m.shop.Customers()
		if len(customers) == 0 {
			m.println("No customers found.")
		}
		for _, c := range customers {
			m.printf("Name: %s, Email: %s, Phone: %s\n", c.Name, c.Email, c.Phone)
		}
	}
	return true
}

func (m *Menu) salesMenu() bool {
	m.println("\n1. Sell Book\n2. View Sales Records")
	choice, ok := m.prompt("Enter your choice: ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		fields, ok := m.prompts("Customer Name: ", "Book Title: ", "Quantity: ")
		if !ok {
			return false
		}
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			m.println("Error: quantity must be a whole number.")
			return true
		}
		sale, err := m.shop.Sell(fields[0], fields[1], qty)
		if err != nil {
			m.printf("Error: %v\n", err)
			return true
		}
		m.printf("Sale successful! Total: $%.2f\n", sale.Total)
	case "2":
		sales := m.shop.Sales()
		if len(sales) == 0 {
			m.println("No sales recorded.")
		}
		for _, s := range sales {
			m.printf("%s | %s | %s | %d | $%.2f | %s\n",
				s.ID, s.Customer, s.Title, s.Quantity, s.Total, s.SoldAt.Format(time.DateTime))
		}
	}
	return true
}

func (m *Menu) printBooks(books []Book, empty string) {
	if len(books) == 0 {
		m.println(empty)
	}
	for _, b := range books {
		m.printf("Title: %s, Author: %s, Price: $%.2f, Quantity: %d\n", b.Title, b.Author, b.Price, b.Quantity)
	}
}

// prompt writes label and reads one trimmed line. ok is false once input ends.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) prompts(labels ...string) ([]string, bool) {
	out := make([]string, len(labels))
	for i, l := range labels {
		v, ok := m.prompt(l)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/order-desk/internal/models"
)

// CustomerForm is the new-customer form
type CustomerForm struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Directory is the in-memory set of known customers plus the creation form.
// New customers are prepended; nothing is deduplicated or removed.
type Directory struct {
	api CustomerAPI

	mu        sync.Mutex
	customers []models.Customer
	form      CustomerForm
	saving    bool
	errMsg    string
}

// NewDirectory creates an empty directory backed by api
func NewDirectory(api CustomerAPI) *Directory {
	return &Directory{api: api}
}

// Load seeds the directory with one retrieval request
func (d *Directory) Load(ctx context.Context) error {
	customers, err := d.api.ListCustomers(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers = customers
	return nil
}

// Customers returns a copy of the directory, newest first
func (d *Directory) Customers() []models.Customer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Customer(nil), d.customers...)
}

// Add puts c at the front of the directory
func (d *Directory) Add(c models.Customer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prepend(c)
}

// prepend requires d.mu
func (d *Directory) prepend(c models.Customer) {
	d.customers = append([]models.Customer{c}, d.customers...)
}

// Lookup finds a customer by id
func (d *Directory) Lookup(id string) (models.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// SetForm replaces the form contents
func (d *Directory) SetForm(f CustomerForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = f
}

// Form returns the current form contents
func (d *Directory) Form() CustomerForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Saving reports whether a creation request is in flight
func (d *Directory) Saving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saving
}

// Err returns the inline error message of the last creation, if any
func (d *Directory) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// Create submits the form. On success the returned record is prepended as is
// and the form is cleared. On failure the form stays populated and Err holds
// the message.
func (d *Directory) Create(ctx context.Context) (*models.Customer, error) {
	d.mu.Lock()
	if d.saving {
		d.mu.Unlock()
		return nil, ErrSubmitting
	}
	form := d.form
	if err := requireFields(form); err != nil {
		d.errMsg = err.Error()
		d.mu.Unlock()
		return nil, err
	}
	d.saving = true
	d.errMsg = ""
	d.mu.Unlock()

	customer, err := d.api.CreateCustomer(ctx, models.CustomerRequest{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.saving = false

	if err != nil {
		d.errMsg = err.Error()
		return nil, err
	}

	d.prepend(*customer)
	d.form = CustomerForm{}
	return customer, nil
}

// Render writes the directory as name / email lines
func (d *Directory) Render(w io.Writer) error {
	customers := d.Customers()
	if len(customers) == 0 {
		_, err := fmt.Fprintln(w, "No customers yet.")
		return err
	}
	for _, c := range customers {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Email); err != nil {
			return err
		}
	}
	return nil
}

func requireFields(f CustomerForm) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(f.Email) == "" {
		return ErrEmailRequired
	}
	return nil
}

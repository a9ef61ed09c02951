package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
)

// CustomerService handles customer business logic.
// Duplicate emails are accepted.
type CustomerService struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateCustomer validates the request and stores a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	customer := &models.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// ListCustomers returns all customers, newest first
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}

package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/order-desk/internal/cache"
	"github.com/Lixing-Zhang/order-desk/internal/models"
)

// CachedCustomerRepository serves GetByID from a cache in front of another
// CustomerRepository. Customers are immutable so entries never go stale;
// the TTL only bounds memory.
type CachedCustomerRepository struct {
	CustomerRepository
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedCustomerRepository wraps next with cache
func NewCachedCustomerRepository(next CustomerRepository, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedCustomerRepository {
	return &CachedCustomerRepository{
		CustomerRepository: next,
		cache:              c,
		ttl:                ttl,
		log:                log,
	}
}

// Create stores the customer and primes the cache
func (r *CachedCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.CustomerRepository.Create(ctx, customer); err != nil {
		return err
	}
	r.store(ctx, customer)
	return nil
}

// GetByID checks the cache before the wrapped repository.
// Cache failures are logged and fall through.
func (r *CachedCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	key := r.cache.GenerateKey("customer", id)

	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn("customer cache read failed", "customer_id", id, "error", err)
	} else if raw != "" {
		var c models.Customer
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			return &c, nil
		}
		r.log.Warn("discarding malformed cached customer", "customer_id", id)
	}

	customer, err := r.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, customer)
	return customer, nil
}

func (r *CachedCustomerRepository) store(ctx context.Context, customer *models.Customer) {
	data, err := json.Marshal(customer)
	if err != nil {
		return
	}
	key := r.cache.GenerateKey("customer", customer.ID)
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.log.Warn("customer cache write failed", "customer_id", customer.ID, "error", err)
	}
}

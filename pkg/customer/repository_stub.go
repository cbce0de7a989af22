package customer

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	customers map[string]Customer
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{customers: make(map[string]Customer)}
}

func (r *RepositoryStub) Store(ctx context.Context, customer Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.Ref] = customer
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	var result []Customer
	for _, customer := range r.customers {
		if search == "" ||
			strings.Contains(strings.ToLower(customer.Name), needle) ||
			strings.Contains(strings.ToLower(customer.LastName), needle) ||
			strings.Contains(strings.ToLower(customer.Email), needle) {
			result = append(result, customer)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Ref < result[j].Ref })

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *RepositoryStub) Get(ctx context.Context, ref string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[ref]
	if !ok {
		return Customer{}, ErrCustomerNotFound
	}
	return customer, nil
}

func (r *RepositoryStub) Update(ctx context.Context, customer Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[customer.Ref]
	if !ok {
		return ErrCustomerNotFound
	}
	customer.Created = existing.Created
	r.customers[customer.Ref] = customer
	return nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[ref]; !ok {
		return false, nil
	}
	delete(r.customers, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.customers {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = make(map[string]Customer)
}

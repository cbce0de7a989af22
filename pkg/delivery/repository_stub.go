package delivery

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	options map[string]DeliveryOption
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{options: make(map[string]DeliveryOption)}
}

func (r *RepositoryStub) Store(ctx context.Context, option DeliveryOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[option.Ref] = option
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]DeliveryOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []DeliveryOption
	for _, option := range r.options {
		if search == "" || strings.Contains(strings.ToLower(option.Name), strings.ToLower(search)) {
			result = append(result, option)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *RepositoryStub) Get(ctx context.Context, ref string) (DeliveryOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	option, ok := r.options[ref]
	if !ok {
		return DeliveryOption{}, ErrDeliveryOptionNotFound
	}
	return option, nil
}

func (r *RepositoryStub) Update(ctx context.Context, option DeliveryOption) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.options[option.Ref]
	if !ok {
		return false, nil
	}
	option.Created = existing.Created
	r.options[option.Ref] = option
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.options[ref]; !ok {
		return false, nil
	}
	delete(r.options, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.options {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options = make(map[string]DeliveryOption)
}

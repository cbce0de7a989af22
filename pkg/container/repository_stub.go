package container

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu         sync.RWMutex
	containers map[string]FoodContainer
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{containers: make(map[string]FoodContainer)}
}

func (r *RepositoryStub) Store(ctx context.Context, container FoodContainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.containers[container.Ref] = container
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]FoodContainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []FoodContainer
	for _, container := range r.containers {
		if search == "" || strings.Contains(strings.ToLower(container.Name), strings.ToLower(search)) {
			result = append(result, container)
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

func (r *RepositoryStub) Get(ctx context.Context, ref string) (FoodContainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	container, ok := r.containers[ref]
	if !ok {
		return FoodContainer{}, ErrContainerNotFound
	}
	return container, nil
}

func (r *RepositoryStub) Update(ctx context.Context, container FoodContainer) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.containers[container.Ref]
	if !ok {
		return false, nil
	}
	container.Created = existing.Created
	r.containers[container.Ref] = container
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.containers[ref]; !ok {
		return false, nil
	}
	delete(r.containers, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.containers {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.containers = make(map[string]FoodContainer)
}

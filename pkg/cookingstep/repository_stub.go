package cookingstep

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	steps map[string]CookingStep
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{steps: make(map[string]CookingStep)}
}

func (r *RepositoryStub) Store(ctx context.Context, step CookingStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[step.Ref] = step
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]CookingStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []CookingStep
	for _, step := range r.steps {
		if search == "" || strings.Contains(strings.ToLower(step.Name), strings.ToLower(search)) {
			result = append(result, step)
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

func (r *RepositoryStub) Get(ctx context.Context, ref string) (CookingStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	step, ok := r.steps[ref]
	if !ok {
		return CookingStep{}, ErrCookingStepNotFound
	}
	return step, nil
}

func (r *RepositoryStub) Update(ctx context.Context, step CookingStep) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.steps[step.Ref]
	if !ok {
		return false, nil
	}
	step.Created = existing.Created
	r.steps[step.Ref] = step
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.steps[ref]; !ok {
		return false, nil
	}
	delete(r.steps, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.steps {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = make(map[string]CookingStep)
}

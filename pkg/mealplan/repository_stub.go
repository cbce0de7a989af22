package mealplan

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	plans map[string]MealPlan
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{plans: make(map[string]MealPlan)}
}

func (r *RepositoryStub) Store(ctx context.Context, plan MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.Ref] = plan
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]MealPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []MealPlan
	for _, plan := range r.plans {
		if search == "" || strings.Contains(strings.ToLower(plan.Name), strings.ToLower(search)) {
			result = append(result, plan)
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

func (r *RepositoryStub) Get(ctx context.Context, ref string) (MealPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[ref]
	if !ok {
		return MealPlan{}, ErrMealPlanNotFound
	}
	return plan, nil
}

func (r *RepositoryStub) Update(ctx context.Context, plan MealPlan) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.plans[plan.Ref]
	if !ok {
		return false, nil
	}
	plan.Created = existing.Created
	r.plans[plan.Ref] = plan
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[ref]; !ok {
		return false, nil
	}
	delete(r.plans, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.plans {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = make(map[string]MealPlan)
}

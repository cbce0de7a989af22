package ingredient

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu          sync.RWMutex
	ingredients map[string]Ingredient
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{ingredients: make(map[string]Ingredient)}
}

func (r *RepositoryStub) Store(ctx context.Context, ingredient Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredients[ingredient.Ref] = ingredient
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Ingredient
	for _, ingredient := range r.ingredients {
		if search == "" || strings.Contains(strings.ToLower(ingredient.Name), strings.ToLower(search)) {
			result = append(result, ingredient)
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

func (r *RepositoryStub) Get(ctx context.Context, ref string) (Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ingredient, ok := r.ingredients[ref]
	if !ok {
		return Ingredient{}, ErrIngredientNotFound
	}
	return ingredient, nil
}

func (r *RepositoryStub) GetByRefs(ctx context.Context, refs []string) ([]Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Ingredient
	for _, ref := range refs {
		if ingredient, ok := r.ingredients[ref]; ok {
			result = append(result, ingredient)
		}
	}
	return result, nil
}

func (r *RepositoryStub) Update(ctx context.Context, ingredient Ingredient) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ingredients[ingredient.Ref]
	if !ok {
		return false, nil
	}
	ingredient.Created = existing.Created
	r.ingredients[ingredient.Ref] = ingredient
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ingredients[ref]; !ok {
		return false, nil
	}
	delete(r.ingredients, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.ingredients {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

// Reset clears the stub between tests.
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredients = make(map[string]Ingredient)
}

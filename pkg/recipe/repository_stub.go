package recipe

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{recipes: make(map[string]Recipe)}
}

func (r *RepositoryStub) Store(ctx context.Context, recipe Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.Ref] = recipe
	return nil
}

func (r *RepositoryStub) Get(ctx context.Context, ref string) (Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[ref]
	if !ok {
		return Recipe{}, ErrRecipeNotFound
	}
	return recipe, nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Recipe
	for _, recipe := range r.recipes {
		if search == "" || strings.Contains(strings.ToLower(recipe.Name), strings.ToLower(search)) {
			result = append(result, recipe)
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

func (r *RepositoryStub) Update(ctx context.Context, recipe Recipe) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.recipes[recipe.Ref]
	if !ok {
		return false, nil
	}
	recipe.Created = existing.Created
	r.recipes[recipe.Ref] = recipe
	return true, nil
}

func (r *RepositoryStub) UpdateImageURL(ctx context.Context, ref string, imageURL string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe, ok := r.recipes[ref]
	if !ok {
		return false, nil
	}
	recipe.ImageURL = imageURL
	r.recipes[ref] = recipe
	return true, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[ref]; !ok {
		return false, nil
	}
	delete(r.recipes, ref)
	return true, nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.recipes {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]nutrition.Totals)
	for _, ref := range refs {
		if recipe, ok := r.recipes[ref]; ok {
			result[ref] = recipe.Totals
		}
	}
	return result, nil
}

func (r *RepositoryStub) RefsUsingIngredient(ctx context.Context, ingredientRef string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var refs []string
	for ref, recipe := range r.recipes {
		for _, entry := range recipe.Ingredients {
			if entry.IngredientRef == ingredientRef {
				refs = append(refs, ref)
				break
			}
		}
	}
	sort.Strings(refs)
	return refs, nil
}

// Reset clears the stub between tests.
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes = make(map[string]Recipe)
}

package weeklymenu

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	menus map[string]WeeklyMenu

	// MaxCellRefSuffixCalls counts seeding queries so tests can assert the
	// allocator is seeded once per batch.
	MaxCellRefSuffixCalls int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{menus: make(map[string]WeeklyMenu)}
}

func (r *RepositoryStub) Store(ctx context.Context, menu WeeklyMenu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[menu.Ref] = menu
	return nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, search string, limit, offset int) ([]WeeklyMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []WeeklyMenu
	for _, menu := range r.menus {
		if search == "" || strings.Contains(strings.ToLower(menu.Name), strings.ToLower(search)) {
			result = append(result, menu)
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

func (r *RepositoryStub) Get(ctx context.Context, ref string) (WeeklyMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu, ok := r.menus[ref]
	if !ok {
		return WeeklyMenu{}, ErrWeeklyMenuNotFound
	}
	return menu, nil
}

func (r *RepositoryStub) Update(ctx context.Context, menu WeeklyMenu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.menus[menu.Ref]
	if !ok {
		return ErrWeeklyMenuNotFound
	}
	menu.Created = existing.Created
	r.menus[menu.Ref] = menu
	return nil
}

func (r *RepositoryStub) Delete(ctx context.Context, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.menus[ref]; !ok {
		return ErrWeeklyMenuNotFound
	}
	delete(r.menus, ref)
	return nil
}

func (r *RepositoryStub) MaxRefSuffix(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for ref := range r.menus {
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *RepositoryStub) MaxCellRefSuffix(ctx context.Context) (int, error) {
	r.mu.Lock()
	r.MaxCellRefSuffixCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for _, menu := range r.menus {
		for _, cell := range menu.Cells {
			if n, ok := ids.Suffix(CellRefPrefix, cell.Ref); ok && n > max {
				max = n
			}
		}
	}
	return max, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus = make(map[string]WeeklyMenu)
	r.MaxCellRefSuffixCalls = 0
}

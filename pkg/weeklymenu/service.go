package weeklymenu

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/utils"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

// RecipeTotalsReader provides the stored per-recipe totals the cell roll-up
// reads. Implemented by the recipe service.
type RecipeTotalsReader interface {
	TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error)
}

type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]WeeklyMenu, error)
	Get(ctx context.Context, ref string) (WeeklyMenu, error)
	Create(ctx context.Context, menu WeeklyMenu) (WeeklyMenu, error)
	// Update recomputes every cell's totals and reassigns cell references;
	// the previous cell set is discarded wholesale.
	Update(ctx context.Context, menu WeeklyMenu) (WeeklyMenu, error)
	Delete(ctx context.Context, ref string) error
}

type ServiceImpl struct {
	repo    Repository
	recipes RecipeTotalsReader
	clock   utils.Clock
}

func NewService(repo Repository, recipes RecipeTotalsReader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, recipes: recipes, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context, search string, limit, offset int) ([]WeeklyMenu, error) {
	return s.repo.GetAll(ctx, search, limit, offset)
}

func (s *ServiceImpl) Get(ctx context.Context, ref string) (WeeklyMenu, error) {
	return s.repo.Get(ctx, ref)
}

func (s *ServiceImpl) Create(ctx context.Context, menu WeeklyMenu) (WeeklyMenu, error) {
	if err := s.computeCells(ctx, &menu); err != nil {
		return WeeklyMenu{}, err
	}
	maxRef, err := s.repo.MaxRefSuffix(ctx)
	if err != nil {
		return WeeklyMenu{}, err
	}
	menu.Ref = ids.Format(RefPrefix, maxRef+1)
	if err = s.assignCellRefs(ctx, &menu); err != nil {
		return WeeklyMenu{}, err
	}
	menu.Created = s.clock.Now()
	if err = s.repo.Store(ctx, menu); err != nil {
		return WeeklyMenu{}, err
	}
	log.Infof("Created weekly menu %s with %d cells", menu.Ref, len(menu.Cells))
	return menu, nil
}

func (s *ServiceImpl) Update(ctx context.Context, menu WeeklyMenu) (WeeklyMenu, error) {
	current, err := s.repo.Get(ctx, menu.Ref)
	if err != nil {
		return WeeklyMenu{}, err
	}
	menu.Created = current.Created
	if err = s.computeCells(ctx, &menu); err != nil {
		return WeeklyMenu{}, err
	}
	if err = s.assignCellRefs(ctx, &menu); err != nil {
		return WeeklyMenu{}, err
	}
	if err = s.repo.Update(ctx, menu); err != nil {
		return WeeklyMenu{}, err
	}
	return menu, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ref string) error {
	return s.repo.Delete(ctx, ref)
}

// computeCells fills in each cell's cost and calories from the referenced
// recipes' stored totals. Recipe references that no longer resolve contribute
// zero and are logged, never rejected.
func (s *ServiceImpl) computeCells(ctx context.Context, menu *WeeklyMenu) error {
	refSet := map[string]struct{}{}
	for _, cell := range menu.Cells {
		for _, ref := range cell.Slots.Refs() {
			if ref != "" {
				refSet[ref] = struct{}{}
			}
		}
	}
	refs := make([]string, 0, len(refSet))
	for ref := range refSet {
		refs = append(refs, ref)
	}
	totalsByRecipe, err := s.recipes.TotalsByRefs(ctx, refs)
	if err != nil {
		return fmt.Errorf("loading recipe totals: %w", err)
	}

	for i := range menu.Cells {
		cell := &menu.Cells[i]
		raw, unresolved := nutrition.SumCell(cell.Slots.Refs(), totalsByRecipe)
		if len(unresolved) > 0 {
			log.Warnf("Weekly menu cell %s/%s references unknown recipes %v",
				cell.MealPlanRef, cell.Day, unresolved)
		}
		cell.Cost = nutrition.Round2(raw.Cost)
		cell.Calories = nutrition.Round2(raw.Calories)
	}
	return nil
}

// assignCellRefs gives every cell a fresh reference from a single allocator
// seeded once for the whole batch.
func (s *ServiceImpl) assignCellRefs(ctx context.Context, menu *WeeklyMenu) error {
	maxCell, err := s.repo.MaxCellRefSuffix(ctx)
	if err != nil {
		return err
	}
	alloc := ids.NewAllocator(CellRefPrefix, maxCell)
	for i := range menu.Cells {
		menu.Cells[i].Ref = alloc.Next()
	}
	return nil
}

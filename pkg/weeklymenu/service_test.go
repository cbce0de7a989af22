package weeklymenu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/utils"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var ctx = context.Background()

// recipeTotalsStub stands in for the recipe service, serving stored totals.
type recipeTotalsStub struct {
	totals map[string]nutrition.Totals
}

func (r *recipeTotalsStub) TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error) {
	result := make(map[string]nutrition.Totals)
	for _, ref := range refs {
		if totals, ok := r.totals[ref]; ok {
			result[ref] = totals
		}
	}
	return result, nil
}

var repoStub = NewRepositoryStub()
var recipes = &recipeTotalsStub{}
var clock = &utils.MockClock{}

var service Service

func setup(t *testing.T) func() {
	recipes.totals = map[string]nutrition.Totals{
		"RE1": {Cost: 12.5, Calories: 50},
		"RE2": {Cost: 30, Calories: 120},
		"RE3": {Cost: 8.25, Calories: 410.5},
	}
	clock.SetNow(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	service = NewService(repoStub, recipes, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func cellFor(day Weekday, slots SlotRecipes) PlanCell {
	return PlanCell{MealPlanRef: "MP1", Day: day, Slots: slots}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("computes cell totals from stored recipe totals", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{
			Name: "Semana 12",
			Cells: []PlanCell{
				cellFor(Monday, SlotRecipes{Breakfast: "RE1", Lunch: "RE2"}),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "WM1", menu.Ref)
		assert.Equal(t, 42.5, menu.Cells[0].Cost)
		assert.Equal(t, 170.0, menu.Cells[0].Calories)
		assert.Equal(t, clock.Now(), menu.Created)
	})

	t.Run("repeating a recipe in several slots counts it each time", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{
			Name: "Repetida",
			Cells: []PlanCell{
				cellFor(Monday, SlotRecipes{Breakfast: "RE1", MorningSnack: "RE1", Dinner: "RE1"}),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 37.5, menu.Cells[0].Cost)
		assert.Equal(t, 150.0, menu.Cells[0].Calories)
	})

	t.Run("cell with no recipes gets zero totals", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{
			Name:  "Vacía",
			Cells: []PlanCell{cellFor(Tuesday, SlotRecipes{})},
		})

		require.NoError(t, err)
		assert.Equal(t, 0.0, menu.Cells[0].Cost)
		assert.Equal(t, 0.0, menu.Cells[0].Calories)
	})

	t.Run("unknown recipe refs contribute zero instead of failing", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{
			Name: "Huérfana",
			Cells: []PlanCell{
				cellFor(Wednesday, SlotRecipes{Breakfast: "RE1", Lunch: "RE999"}),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 12.5, menu.Cells[0].Cost)
		assert.Equal(t, 50.0, menu.Cells[0].Calories)
	})

	t.Run("cell totals are rounded to 2 decimals", func(t *testing.T) {
		defer setup(t)()
		recipes.totals["RE4"] = nutrition.Totals{Cost: 1.006, Calories: 100.004}

		menu, err := service.Create(ctx, WeeklyMenu{
			Name:  "Redondeo",
			Cells: []PlanCell{cellFor(Thursday, SlotRecipes{Breakfast: "RE4"})},
		})

		require.NoError(t, err)
		assert.Equal(t, 1.01, menu.Cells[0].Cost)
		assert.Equal(t, 100.0, menu.Cells[0].Calories)
	})

	t.Run("assigns sequential cell refs from one allocator per batch", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Create(ctx, WeeklyMenu{
			Name: "Anterior",
			Cells: []PlanCell{
				cellFor(Monday, SlotRecipes{Breakfast: "RE1"}),
				cellFor(Tuesday, SlotRecipes{Breakfast: "RE1"}),
			},
		})
		require.NoError(t, err)
		repoStub.MaxCellRefSuffixCalls = 0

		menu, err := service.Create(ctx, WeeklyMenu{
			Name: "Siguiente",
			Cells: []PlanCell{
				cellFor(Monday, SlotRecipes{Breakfast: "RE2"}),
				cellFor(Tuesday, SlotRecipes{Breakfast: "RE2"}),
				cellFor(Wednesday, SlotRecipes{Breakfast: "RE2"}),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "WP3", menu.Cells[0].Ref)
		assert.Equal(t, "WP4", menu.Cells[1].Ref)
		assert.Equal(t, "WP5", menu.Cells[2].Ref)
		assert.Equal(t, 1, repoStub.MaxCellRefSuffixCalls)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("recomputes totals and reassigns cell refs", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{
			Name:  "Semana 13",
			Cells: []PlanCell{cellFor(Monday, SlotRecipes{Breakfast: "RE1"})},
		})
		require.NoError(t, err)
		require.Equal(t, "WP1", menu.Cells[0].Ref)

		menu.Cells[0].Slots.Lunch = "RE2"
		updated, err := service.Update(ctx, menu)

		require.NoError(t, err)
		assert.Equal(t, 42.5, updated.Cells[0].Cost)
		assert.Equal(t, "WP2", updated.Cells[0].Ref, "replaced cells get fresh refs")

		stored, err := service.Get(ctx, menu.Ref)
		require.NoError(t, err)
		assert.Equal(t, updated.Cells, stored.Cells)
	})

	t.Run("keeps the original creation time", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{Name: "Original"})
		require.NoError(t, err)

		clock.SetNow(clock.Now().Add(48 * time.Hour))
		updated, err := service.Update(ctx, menu)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), updated.Created)
	})

	t.Run("returns not found for an unknown menu", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Update(ctx, WeeklyMenu{Ref: "WM99", Name: "Fantasma"})
		assert.ErrorIs(t, err, ErrWeeklyMenuNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the menu", func(t *testing.T) {
		defer setup(t)()

		menu, err := service.Create(ctx, WeeklyMenu{Name: "Borrable"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, menu.Ref))
		_, err = service.Get(ctx, menu.Ref)
		assert.ErrorIs(t, err, ErrWeeklyMenuNotFound)
	})

	t.Run("returns not found for an unknown menu", func(t *testing.T) {
		defer setup(t)()

		assert.ErrorIs(t, service.Delete(ctx, "WM42"), ErrWeeklyMenuNotFound)
	})
}

func TestWeeklyMenu_Totals(t *testing.T) {
	t.Run("sums stored cell totals across the week", func(t *testing.T) {
		defer setup(t)()

		cells := make([]PlanCell, 0, 5)
		for _, day := range Weekdays() {
			cells = append(cells, cellFor(day, SlotRecipes{Breakfast: "RE1", Lunch: "RE2"}))
		}
		menu, err := service.Create(ctx, WeeklyMenu{Name: "Semana completa", Cells: cells})
		require.NoError(t, err)

		totals := menu.Totals()
		assert.Equal(t, 212.5, totals.Cost)
		assert.Equal(t, 850.0, totals.Calories)
	})

	t.Run("empty menu sums to zero", func(t *testing.T) {
		totals := WeeklyMenu{}.Totals()
		assert.Equal(t, nutrition.CellTotals{}, totals)
	})
}

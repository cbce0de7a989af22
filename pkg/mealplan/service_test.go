package mealplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewRepositoryStub()
var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns sequential refs", func(t *testing.T) {
		defer setup(t)()

		first, err := service.Create(ctx, MealPlan{Name: "Plan 1500 kcal"})
		require.NoError(t, err)
		second, err := service.Create(ctx, MealPlan{Name: "Plan Keto"})
		require.NoError(t, err)

		assert.Equal(t, "MP1", first.Ref)
		assert.Equal(t, "MP2", second.Ref)
		assert.False(t, first.Created.IsZero())
	})

	t.Run("continues numbering after existing refs", func(t *testing.T) {
		defer setup(t)()
		require.NoError(t, repoStub.Store(ctx, MealPlan{Ref: "MP17", Name: "Legacy"}))

		plan, err := service.Create(ctx, MealPlan{Name: "Nuevo"})
		require.NoError(t, err)
		assert.Equal(t, "MP18", plan.Ref)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("updates an existing plan", func(t *testing.T) {
		defer setup(t)()

		plan, err := service.Create(ctx, MealPlan{Name: "Original", Description: "antes"})
		require.NoError(t, err)

		plan.Description = "después"
		updated, err := service.Update(ctx, plan)
		require.NoError(t, err)
		assert.Equal(t, "después", updated.Description)
	})

	t.Run("returns not found for an unknown plan", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Update(ctx, MealPlan{Ref: "MP99", Name: "Fantasma"})
		assert.ErrorIs(t, err, ErrMealPlanNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the plan", func(t *testing.T) {
		defer setup(t)()

		plan, err := service.Create(ctx, MealPlan{Name: "Borrable"})
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, plan.Ref)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = service.Get(ctx, plan.Ref)
		assert.ErrorIs(t, err, ErrMealPlanNotFound)
	})

	t.Run("reports false for an unknown plan", func(t *testing.T) {
		defer setup(t)()

		deleted, err := service.Delete(ctx, "MP42")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

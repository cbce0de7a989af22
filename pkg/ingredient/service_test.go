package ingredient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var ctx = context.Background()

var repoStub = NewRepositoryStub()
var eventBus = event_bus.NewEventBus()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, eventBus)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns sequential references with the IG prefix", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		first, err := service.Create(ctx, Ingredient{Name: "Pollo", Facts: nutrition.Facts{Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 80}})
		require.NoError(t, err)
		second, err := service.Create(ctx, Ingredient{Name: "Arroz", Facts: nutrition.Facts{Calories: 130, Carbs: 28, CostPerKilo: 25}})
		require.NoError(t, err)

		assert.Equal(t, "IG1", first.Ref)
		assert.Equal(t, "IG2", second.Ref)
		assert.False(t, first.Created.IsZero())
	})

	t.Run("continues the sequence after the highest stored suffix", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, repoStub.Store(ctx, Ingredient{Ref: "IG41", Name: "Tomate"}))

		created, err := service.Create(ctx, Ingredient{Name: "Cebolla", Facts: nutrition.Facts{Calories: 40, Carbs: 9, CostPerKilo: 18}})

		require.NoError(t, err)
		assert.Equal(t, "IG42", created.Ref)
	})

	t.Run("rejects negative nutritional values", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Ingredient{Name: "Bad", Facts: nutrition.Facts{Calories: -5}})

		require.ErrorIs(t, err, ErrInvalidFacts)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("publishes an ingredient.updated event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, repoStub.Store(ctx, Ingredient{Ref: "IG1", Name: "Pollo"}))

		var received *event_bus.IngredientUpdated
		unsubscribe := event_bus.SubscribeTyped[event_bus.IngredientUpdated](
			eventBus, "ingredient.updated",
			func(e event_bus.EventT[event_bus.IngredientUpdated]) error {
				received = &e.Data
				return nil
			},
		)
		defer unsubscribe()

		_, err := service.Update(ctx, Ingredient{Ref: "IG1", Name: "Pollo deshuesado", Facts: nutrition.Facts{Calories: 165, CostPerKilo: 85}})

		require.NoError(t, err)
		require.NotNil(t, received)
		assert.Equal(t, "IG1", received.Ref)
		assert.Equal(t, "Pollo deshuesado", received.Name)
	})

	t.Run("returns not found for an unknown reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Update(ctx, Ingredient{Ref: "IG99", Name: "Fantasma"})

		require.ErrorIs(t, err, ErrIngredientNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("publishes an ingredient.deleted event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, repoStub.Store(ctx, Ingredient{Ref: "IG1", Name: "Pollo"}))

		var received *event_bus.IngredientDeleted
		unsubscribe := event_bus.SubscribeTyped[event_bus.IngredientDeleted](
			eventBus, "ingredient.deleted",
			func(e event_bus.EventT[event_bus.IngredientDeleted]) error {
				received = &e.Data
				return nil
			},
		)
		defer unsubscribe()

		deleted, err := service.Delete(ctx, "IG1")

		require.NoError(t, err)
		assert.True(t, deleted)
		require.NotNil(t, received)
		assert.Equal(t, "IG1", received.Ref)
	})
}

func TestServiceImpl_Catalog(t *testing.T) {
	t.Run("missing references are absent from the snapshot", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, repoStub.Store(ctx, Ingredient{
			Ref:   "IG1",
			Name:  "Pollo",
			Facts: nutrition.Facts{Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 80},
		}))

		catalog, err := service.Catalog(ctx, []string{"IG1", "IG404"})

		require.NoError(t, err)
		require.Len(t, catalog, 1)
		assert.Equal(t, 165.0, catalog["IG1"].Calories)
		_, ok := catalog["IG404"]
		assert.False(t, ok)
	})
}

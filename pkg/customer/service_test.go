package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
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
	t.Run("assigns sequential refs and stores restrictions", func(t *testing.T) {
		defer setup(t)()

		customer, err := service.Create(ctx, Customer{
			Name:                  "Ana",
			LastName:              "García",
			Email:                 "ana@example.com",
			MealPlanRef:           "MP2",
			RestrictedIngredients: []string{"IG3", "IG7"},
		})

		require.NoError(t, err)
		assert.Equal(t, "CU1", customer.Ref)

		stored, err := service.Get(ctx, customer.Ref)
		require.NoError(t, err)
		assert.Equal(t, []string{"IG3", "IG7"}, stored.RestrictedIngredients)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Create(ctx, Customer{Name: "Ana", Email: "no-es-correo"})
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("allows an empty email", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Create(ctx, Customer{Name: "Sin correo"})
		assert.NoError(t, err)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("replaces the restriction list", func(t *testing.T) {
		defer setup(t)()

		customer, err := service.Create(ctx, Customer{
			Name:                  "Ana",
			RestrictedIngredients: []string{"IG3"},
		})
		require.NoError(t, err)

		customer.RestrictedIngredients = []string{"IG9"}
		updated, err := service.Update(ctx, customer)
		require.NoError(t, err)
		assert.Equal(t, []string{"IG9"}, updated.RestrictedIngredients)
	})

	t.Run("returns not found for an unknown customer", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Update(ctx, Customer{Ref: "CU99", Name: "Fantasma"})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the customer", func(t *testing.T) {
		defer setup(t)()

		customer, err := service.Create(ctx, Customer{Name: "Borrable"})
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, customer.Ref)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = service.Get(ctx, customer.Ref)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

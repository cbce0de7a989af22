package delivery

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

		first, err := service.Create(ctx, DeliveryOption{Name: "Entrega a domicilio", Cost: 35})
		require.NoError(t, err)
		second, err := service.Create(ctx, DeliveryOption{Name: "Recoger en tienda"})
		require.NoError(t, err)

		assert.Equal(t, "DO1", first.Ref)
		assert.Equal(t, "DO2", second.Ref)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Create(ctx, DeliveryOption{Name: "Inválido", Cost: -5})
		assert.ErrorIs(t, err, ErrInvalidCost)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("updates an existing option", func(t *testing.T) {
		defer setup(t)()

		option, err := service.Create(ctx, DeliveryOption{Name: "Entrega a domicilio", Cost: 35})
		require.NoError(t, err)

		option.Cost = 40
		updated, err := service.Update(ctx, option)
		require.NoError(t, err)
		assert.Equal(t, 40.0, updated.Cost)
	})

	t.Run("returns not found for an unknown option", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Update(ctx, DeliveryOption{Ref: "DO99", Name: "Fantasma"})
		assert.ErrorIs(t, err, ErrDeliveryOptionNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the option", func(t *testing.T) {
		defer setup(t)()

		option, err := service.Create(ctx, DeliveryOption{Name: "Borrable"})
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, option.Ref)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

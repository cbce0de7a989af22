package cookingstep

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

		first, err := service.Create(ctx, CookingStep{Name: "Hervir", Description: "Hervir en agua con sal"})
		require.NoError(t, err)
		second, err := service.Create(ctx, CookingStep{Name: "Sellar"})
		require.NoError(t, err)

		assert.Equal(t, "CS1", first.Ref)
		assert.Equal(t, "CS2", second.Ref)
	})

	t.Run("continues numbering after existing refs", func(t *testing.T) {
		defer setup(t)()
		require.NoError(t, repoStub.Store(ctx, CookingStep{Ref: "CS9", Name: "Legacy"}))

		step, err := service.Create(ctx, CookingStep{Name: "Hornear"})
		require.NoError(t, err)
		assert.Equal(t, "CS10", step.Ref)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("updates an existing step", func(t *testing.T) {
		defer setup(t)()

		step, err := service.Create(ctx, CookingStep{Name: "Hervir", Description: "10 min"})
		require.NoError(t, err)

		step.Description = "12 min"
		updated, err := service.Update(ctx, step)
		require.NoError(t, err)
		assert.Equal(t, "12 min", updated.Description)
	})

	t.Run("returns not found for an unknown step", func(t *testing.T) {
		defer setup(t)()

		_, err := service.Update(ctx, CookingStep{Ref: "CS99", Name: "Fantasma"})
		assert.ErrorIs(t, err, ErrCookingStepNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the step", func(t *testing.T) {
		defer setup(t)()

		step, err := service.Create(ctx, CookingStep{Name: "Borrable"})
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, step.Ref)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("reports false for an unknown step", func(t *testing.T) {
		defer setup(t)()

		deleted, err := service.Delete(ctx, "CS42")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

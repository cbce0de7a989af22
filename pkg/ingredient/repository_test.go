package ingredient

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/test_utils"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	container, openDB := test_utils.TestWithDB()
	testDB = openDB()
	code := m.Run()
	testDB.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	t.Cleanup(func() {
		_, err := testDB.Exec(context.Background(), "DELETE FROM ingredients")
		require.NoError(t, err)
	})
	return context.Background(), NewRepository(testDB)
}

func TestRepositoryImpl_Store(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	err := repo.Store(ctx, Ingredient{
		Ref:   "IG1",
		Name:  "Pechuga de pollo",
		Facts: nutrition.Facts{Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 80},
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, "IG1")
	require.NoError(t, err)
	assert.Equal(t, "Pechuga de pollo", stored.Name)
	assert.Equal(t, 165.0, stored.Facts.Calories)
	assert.Equal(t, 80.0, stored.Facts.CostPerKilo)
}

func TestRepositoryImpl_Get_NotFound(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	_, err := repo.Get(ctx, "IG404")
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestRepositoryImpl_GetByRefs(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG1", Name: "Arroz"}))
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG2", Name: "Frijol"}))

	// when
	ingredients, err := repo.GetByRefs(ctx, []string{"IG1", "IG2", "IG999"})

	// then missing refs are simply absent
	require.NoError(t, err)
	assert.Len(t, ingredients, 2)
}

func TestRepositoryImpl_GetAll_SearchAndPagination(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG1", Name: "Tomate bola"}))
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG2", Name: "Tomate cherry"}))
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG3", Name: "Cebolla"}))

	// when
	matches, err := repo.GetAll(ctx, "tomate", 0, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// then pagination applies on top of the filter
	page, err := repo.GetAll(ctx, "tomate", 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestRepositoryImpl_MaxRefSuffix(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	empty, err := repo.MaxRefSuffix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty)

	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG3", Name: "Arroz"}))
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG41", Name: "Frijol"}))

	// when
	max, err := repo.MaxRefSuffix(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, 41, max)
}

func TestRepositoryImpl_UpdateAndDelete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, Ingredient{Ref: "IG1", Name: "Arroz"}))

	// when
	updated, err := repo.Update(ctx, Ingredient{
		Ref:   "IG1",
		Name:  "Arroz integral",
		Facts: nutrition.Facts{Calories: 130, CostPerKilo: 25},
	})
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err := repo.Get(ctx, "IG1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz integral", stored.Name)

	// then
	deleted, err := repo.Delete(ctx, "IG1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(ctx, "IG1")
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}
